package engine

import "errors"

var (
	ErrInvalidAction      = errors.New("invalid action")
	ErrInsufficientCoins  = errors.New("insufficient coins")
	ErrNoTarget           = errors.New("no valid target")
	ErrDeckExhausted      = errors.New("deck exhausted")
	ErrDecisionTimeout    = errors.New("decision timed out")
	ErrIntegrity          = errors.New("game state integrity violated")
	ErrGameOver           = errors.New("game is over")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrDuplicatePlayer    = errors.New("duplicate player name")
	ErrInvalidParticipant = errors.New("invalid participant")
	ErrSeatCount          = errors.New("unsupported number of seats")
	ErrNoEffect           = errors.New("no effect registered")
)
