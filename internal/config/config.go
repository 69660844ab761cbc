// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"coup/internal/engine"
	"coup/internal/lobby"
)

type Config struct {
	Seats            string        `env:"COUP_SEATS" envDefault:"human:You,bot:Bot 1,bot:Bot 2"`
	Seed             uint64        `env:"COUP_SEED"`
	DecisionTimeout  time.Duration `env:"COUP_DECISION_TIMEOUT" envDefault:"30s"`
	HumanTimeout     time.Duration `env:"COUP_HUMAN_TIMEOUT" envDefault:"5m"`
	MaxSolicitations int           `env:"COUP_MAX_SOLICITATIONS" envDefault:"5"`
	PublicLogWindow  int           `env:"COUP_PUBLIC_LOG_WINDOW" envDefault:"7"`
	Port             int           `env:"COUP_PORT"`  // 0 disables the spectator server
	Games            int           `env:"COUP_GAMES"` // 0 asks after each game
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"pretty"`
	OpenAIKey        string        `env:"OPENAI_API_KEY"`
	LLMModel         string        `env:"COUP_LLM_MODEL" envDefault:"gpt-4o-mini"`
}

// Load reads the given .env files, or ".env" when none are named, then
// parses the environment. Missing files are ignored. Variables already set
// in the environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// GameConfig returns the engine settings.
func (c Config) GameConfig() engine.GameConfig {
	gc := engine.DefaultConfig()
	gc.Seed = c.Seed
	gc.DecisionTimeout = c.DecisionTimeout
	if c.MaxSolicitations > 0 {
		gc.MaxSolicitations = c.MaxSolicitations
	}
	if c.PublicLogWindow > 0 {
		gc.PublicLogWindow = c.PublicLogWindow
	}
	return gc
}

// SeatSpec is one entry of the seat list.
type SeatSpec struct {
	Kind lobby.Kind
	Name string
}

// ParseSeats reads a comma separated "kind:name" list. A bare kind gets a
// numbered default name.
func ParseSeats(s string) ([]SeatSpec, error) {
	var out []SeatSpec
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kindStr, name, _ := strings.Cut(part, ":")
		kind, err := lobby.ParseKind(kindStr)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", i+1, err)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("%s %d", kind, i+1)
		}
		out = append(out, SeatSpec{Kind: kind, Name: name})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no seats", lobby.ErrNotEnough)
	}
	return out, nil
}
