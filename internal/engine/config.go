package engine

import "time"

const (
	StartingCoins = 2
	HandSize      = 2
	MinSeats      = 2
	MaxSeats      = 6
)

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	Seed             uint64        // shuffle seed; 0 draws a random one
	DecisionTimeout  time.Duration // per decider call; 0 disables
	MaxSolicitations int           // rejected attempts before income is forced
	PublicLogWindow  int           // entries carried by public views
}

func DefaultConfig() GameConfig {
	return GameConfig{
		DecisionTimeout:  30 * time.Second,
		MaxSolicitations: 5,
		PublicLogWindow:  DefaultPublicLogWindow,
	}
}
