package engine

import (
	"context"
	"errors"
	"fmt"
)

// IsOver reports whether at most one participant still holds cards.
func (g *Game) IsOver() bool {
	alive := 0
	for _, name := range g.State.Order() {
		if p, _ := g.State.Participant(name); p.HasCards() {
			alive++
		}
	}
	return alive <= 1
}

// PlayTurn runs one full turn for the next participant with influence.
// Rejected actions are re-solicited; after MaxSolicitations rejections the
// participant takes income.
func (g *Game) PlayTurn(ctx context.Context) error {
	switch g.Phase {
	case PhaseSetup:
		return fmt.Errorf("%w: game not started", ErrInvalidAction)
	case PhaseGameOver:
		return ErrGameOver
	case PhaseCorrupted:
		return ErrIntegrity
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.IsOver() {
		g.finish()
		return ErrGameOver
	}

	g.skipEliminated()
	actor := g.CurrentPlayer()
	g.Phase = PhaseAwaitingAction
	g.State.LogTurn(actor)
	g.Logger.Debug("turn started", "player", actor, "turn", g.Turns+1)

	limit := g.Config.MaxSolicitations
	if limit <= 0 {
		limit = DefaultConfig().MaxSolicitations
	}
	for attempt := 0; ; attempt++ {
		kind := ActionIncome
		if attempt < limit {
			kind = g.askAction(ctx, actor)
		} else {
			g.Logger.Warn("too many rejected actions, forcing income", "player", actor, "attempts", attempt)
		}
		outcome, err := g.Perform(ctx, actor, kind)
		if err != nil {
			return err
		}
		if !outcome.Rejected() {
			break
		}
		g.Phase = PhaseAwaitingAction
	}

	g.Phase = PhaseTurnComplete
	if err := g.CheckIntegrity(); err != nil {
		return err
	}
	g.Turns++

	if g.IsOver() {
		g.finish()
		return nil
	}
	g.Current = (g.Current + 1) % len(g.seatList)
	g.skipEliminated()
	g.Phase = PhaseAwaitingAction
	return nil
}

// skipEliminated moves Current forward to the next seat that still holds
// cards. Skipped seats do not count as turns.
func (g *Game) skipEliminated() {
	order := g.State.Order()
	for range order {
		if p, _ := g.State.Participant(order[g.Current]); p.HasCards() {
			return
		}
		g.Current = (g.Current + 1) % len(order)
	}
}

func (g *Game) finish() {
	winner := ""
	for _, name := range g.State.Order() {
		if p, _ := g.State.Participant(name); p.HasCards() {
			winner = name
		}
	}
	g.State.SetWinner(winner)
	g.Phase = PhaseGameOver
	g.State.LogGameOver(winner)
	g.Logger.Info("game over", "winner", winner, "turns", g.Turns)
}

// Run plays turns until the game ends or ctx is cancelled and returns the
// winner. An empty winner with a nil error means nobody kept influence.
func (g *Game) Run(ctx context.Context) (string, error) {
	if g.Phase == PhaseSetup {
		if err := g.Start(); err != nil {
			return "", err
		}
	}
	for {
		if err := g.PlayTurn(ctx); err != nil && !errors.Is(err, ErrGameOver) {
			return "", err
		}
		if winner, over := g.State.Winner(); over {
			return winner, nil
		}
	}
}
