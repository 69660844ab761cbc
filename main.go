package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"coup/internal/agent"
	"coup/internal/config"
	"coup/internal/console"
	"coup/internal/engine"
	"coup/internal/engine/actions"
	"coup/internal/lobby"
	"coup/internal/logger"
	"coup/internal/metrics"
	qr "coup/internal/qrcode"
	"coup/internal/random"
	"coup/internal/server"
)

//go:embed web/static
var static embed.FS

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	port := flag.Int("port", -1, "spectator server port, 0 disables (overrides COUP_PORT)")
	seats := flag.String("seats", "", "seat list such as human:You,bot:Ann (overrides COUP_SEATS)")
	seed := flag.Uint64("seed", 0, "shuffle seed (overrides COUP_SEED)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *port >= 0 {
		cfg.Port = *port
	}
	if *seats != "" {
		cfg.Seats = *seats
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("coup failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	specs, err := config.ParseSeats(cfg.Seats)
	if err != nil {
		return err
	}
	lobbies := lobby.NewManager()
	infos, lob, err := seatLobby(lobbies, specs)
	if err != nil {
		return err
	}

	botSeed := cfg.Seed
	if botSeed == 0 {
		if botSeed, err = random.NewSeed(); err != nil {
			return err
		}
	}
	seats, hasHuman := buildSeats(infos, cfg, botSeed, log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)
	handlers := server.NewHandlers(reg, log)
	spectators := &relay{}

	if cfg.Port > 0 {
		sub, err := fs.Sub(static, "web/static")
		if err != nil {
			return fmt.Errorf("static fs: %w", err)
		}
		srv := server.New(cfg.Port, sub, handlers, log)
		go func() {
			if err := srv.Start(ctx); err != nil {
				log.Error("spectator server", "error", err)
			}
		}()
	}

	game, err := engine.NewGame(seats, cfg.GameConfig(), actions.Registry())
	if err != nil {
		return err
	}
	game.Logger = log
	game.AddObserver(m)
	game.AddObserver(spectators)
	game.OnFallback(m.Fallback)
	if hasHuman {
		game.AddObserver(console.Narrator{Out: os.Stdout})
	}

	names := make([]string, len(infos))
	for i, s := range infos {
		names[i] = s.Name
	}

	// Finished games stay listed and watchable until the process exits.
	var hubs []*server.Hub
	defer func() {
		for _, h := range hubs {
			h.Stop()
		}
	}()

	for played := 1; ; played++ {
		hub := server.NewHub(lob.ID, names, log)
		handlers.Register(hub)
		go hub.Run()
		hubs = append(hubs, hub)
		spectators.set(hub)
		if cfg.Port > 0 {
			log.Info("spectate", "url", qr.SpectateURL(fmt.Sprintf("localhost:%d", cfg.Port), lob.ID))
		}

		winner, err := game.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}
		log.Info("game finished", "game", lob.ID, "winner", winner, "turns", game.Turns)

		if !again(cfg, played, hasHuman, log) {
			break
		}
		if game, err = game.Restart(); err != nil {
			return err
		}
		if _, lob, err = seatLobby(lobbies, specs); err != nil {
			return err
		}
	}

	if cfg.Port > 0 {
		log.Info("games over, spectator server still up; interrupt to exit")
		<-ctx.Done()
	}
	return nil
}

// seatLobby opens a lobby for specs and starts it.
func seatLobby(m *lobby.Manager, specs []config.SeatSpec) ([]lobby.SeatInfo, *lobby.Lobby, error) {
	lob := m.Create()
	for _, s := range specs {
		if err := lob.Join(s.Name, s.Kind); err != nil {
			return nil, nil, fmt.Errorf("seat %s: %w", s.Name, err)
		}
		if s.Kind == lobby.KindHuman {
			lob.SetReady(s.Name, true)
		}
	}
	infos, err := lob.Start()
	if err != nil {
		return nil, nil, err
	}
	return infos, lob, nil
}

func buildSeats(infos []lobby.SeatInfo, cfg config.Config, botSeed uint64, log *slog.Logger) ([]engine.Seat, bool) {
	var (
		seats    []engine.Seat
		hasHuman bool
	)
	for i, info := range infos {
		seat := engine.Seat{Name: info.Name}
		bot := agent.NewBot(botSeed + uint64(i) + 1)
		switch info.Kind {
		case lobby.KindHuman:
			seat.Decider = console.NewHuman(console.PTerm{}, os.Stdout)
			seat.Timeout = cfg.HumanTimeout
			hasHuman = true
		case lobby.KindLLM:
			if cfg.OpenAIKey == "" {
				log.Warn("OPENAI_API_KEY not set, seat plays as a bot", "seat", info.Name)
				seat.Decider = bot
				break
			}
			completer := agent.NewOpenAICompleter(cfg.OpenAIKey, cfg.LLMModel)
			seat.Decider = agent.NewLLM(completer, bot, log.With("seat", info.Name))
		default:
			seat.Decider = bot
		}
		seats = append(seats, seat)
	}
	return seats, hasHuman
}

// again reports whether to play another game: COUP_GAMES games when set,
// otherwise ask a human, otherwise stop after one.
func again(cfg config.Config, played int, hasHuman bool, log *slog.Logger) bool {
	if cfg.Games > 0 {
		return played < cfg.Games
	}
	if !hasHuman {
		return false
	}
	yes, err := console.AskRestart(console.PTerm{})
	if err != nil {
		log.Warn("restart prompt", "error", err)
		return false
	}
	return yes
}

// relay forwards entries to the hub of the game in progress. Restarted games
// keep their observers, so the hub is swapped here instead.
type relay struct {
	mu  sync.Mutex
	hub *server.Hub
}

func (r *relay) set(h *server.Hub) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hub = h
}

func (r *relay) Observe(e engine.Entry, view engine.PublicView) {
	r.mu.Lock()
	h := r.hub
	r.mu.Unlock()
	if h != nil {
		h.Observe(e, view)
	}
}
