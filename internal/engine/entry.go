package engine

import "fmt"

// EntryKind tags each record of the game log.
type EntryKind string

const (
	EntryTurn      EntryKind = "turn"
	EntryAction    EntryKind = "action"
	EntryChallenge EntryKind = "challenge"
	EntryBlock     EntryKind = "block"
	EntryInfluence EntryKind = "influence"
	EntryGameOver  EntryKind = "game_over"
)

// Outcome is the final result of one attempted action.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeBlocked           Outcome = "blocked"
	OutcomeChallengeFailed   Outcome = "challenge_failed"
	OutcomeInsufficientCoins Outcome = "insufficient_coins"
	OutcomeNoTarget          Outcome = "no_target"
	OutcomeInvalid           Outcome = "invalid"
)

// Rejected reports whether the action was refused before any state changed.
func (o Outcome) Rejected() bool {
	switch o {
	case OutcomeInsufficientCoins, OutcomeNoTarget, OutcomeInvalid:
		return true
	}
	return false
}

// Challenge and block results.
const (
	ResultBluff        = "bluff"
	ResultTruth        = "truth"
	ResultChallenged   = "challenged"
	ResultUnchallenged = "unchallenged"
)

// Entry is one append-only record of the game log. Which fields are set
// depends on Kind.
type Entry struct {
	Seq  int       `json:"seq"`
	Kind EntryKind `json:"kind"`

	// turn, action
	Actor   string     `json:"actor,omitempty"`
	Action  ActionKind `json:"action,omitempty"`
	Target  string     `json:"target,omitempty"`
	Outcome Outcome    `json:"outcome,omitempty"`

	// challenge
	Challenger string `json:"challenger,omitempty"`
	Challenged string `json:"challenged,omitempty"`

	// block
	Blocker string `json:"blocker,omitempty"`
	Blocked string `json:"blocked,omitempty"`

	// challenge, block
	Result  string `json:"result,omitempty"`
	Success bool   `json:"success,omitempty"`

	// influence
	Player string    `json:"player,omitempty"`
	Delta  int       `json:"delta,omitempty"`
	Card   Character `json:"card,omitempty"`

	// game_over
	Winner string `json:"winner,omitempty"`
}

// Observer receives every log entry in order, together with the spectator
// view computed right after the entry was appended.
type Observer interface {
	Observe(e Entry, view PublicView)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e Entry, view PublicView)

func (f ObserverFunc) Observe(e Entry, view PublicView) { f(e, view) }

// String renders the entry as one line of game narration.
func (e Entry) String() string {
	switch e.Kind {
	case EntryTurn:
		return e.Actor + "'s turn"
	case EntryAction:
		if e.Target != "" {
			return fmt.Sprintf("%s %s on %s: %s", e.Actor, e.Action, e.Target, e.Outcome)
		}
		return fmt.Sprintf("%s %s: %s", e.Actor, e.Action, e.Outcome)
	case EntryChallenge:
		return fmt.Sprintf("%s challenged %s's %s: %s", e.Challenger, e.Challenged, e.Action, e.Result)
	case EntryBlock:
		return fmt.Sprintf("%s blocked %s's %s (%s)", e.Blocker, e.Blocked, e.Action, e.Result)
	case EntryInfluence:
		return fmt.Sprintf("%s lost a %s", e.Player, e.Card)
	case EntryGameOver:
		if e.Winner == "" {
			return "game over, no winner"
		}
		return "game over, winner " + e.Winner
	}
	return string(e.Kind)
}
