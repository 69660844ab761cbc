package engine

// GamePhase represents the current phase of the turn state machine.
type GamePhase int

const (
	PhaseSetup          GamePhase = iota // seated, cards not dealt
	PhaseAwaitingAction                  // current participant choosing an action
	PhaseResolving                       // block and challenge sub-protocols running
	PhaseTurnComplete                    // effects applied, turn about to advance
	PhaseGameOver                        // at most one participant holds cards
	PhaseCorrupted                       // an integrity check failed
)

var phaseNames = map[GamePhase]string{
	PhaseSetup:          "Setup",
	PhaseAwaitingAction: "AwaitingAction",
	PhaseResolving:      "Resolving",
	PhaseTurnComplete:   "TurnComplete",
	PhaseGameOver:       "GameOver",
	PhaseCorrupted:      "Corrupted",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}
