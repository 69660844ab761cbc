package engine

import (
	"context"
	"fmt"
	"time"
)

// Decider is the decision source for one seat: a human at the console, a
// scripted bot or a language-model agent. Every call receives the seat's own
// public view and must not retain it.
type Decider interface {
	ChooseAction(ctx context.Context, view PublicView) (ActionKind, error)
	// ChooseTarget returns one of candidates, or "" for none.
	ChooseTarget(ctx context.Context, view PublicView, action ActionKind, candidates []string) (string, error)
	// WantsToChallenge asks whether to call claimant's claim a bluff. claim is
	// an action or a block kind.
	WantsToChallenge(ctx context.Context, view PublicView, claimant string, claim ActionKind) (bool, error)
	WantsToBlock(ctx context.Context, view PublicView, actor string, action ActionKind) (bool, error)
	// ChooseExchangeCards picks count cards of hand to return to the deck.
	ChooseExchangeCards(ctx context.Context, hand []Character, count int) ([]Character, error)
}

// Seat binds a participant name to its decider.
type Seat struct {
	Name    string
	Decider Decider
	Timeout time.Duration // overrides GameConfig.DecisionTimeout when > 0
}

// decide runs fn under the timeout and returns fallback if it times out or
// fails. Late answers are dropped.
func decide[T any](ctx context.Context, timeout time.Duration, fallback T, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type answer struct {
		v   T
		err error
	}
	ch := make(chan answer, 1)
	go func() {
		v, err := fn(ctx)
		ch <- answer{v, err}
	}()

	select {
	case a := <-ch:
		if a.err != nil {
			if ctx.Err() != nil {
				return fallback, fmt.Errorf("%w: %v", ErrDecisionTimeout, a.err)
			}
			return fallback, a.err
		}
		return a.v, nil
	case <-ctx.Done():
		return fallback, fmt.Errorf("%w: %v", ErrDecisionTimeout, ctx.Err())
	}
}

func (g *Game) timeoutFor(name string) time.Duration {
	if s, ok := g.seats[name]; ok && s.Timeout > 0 {
		return s.Timeout
	}
	return g.Config.DecisionTimeout
}

func (g *Game) decisionFailed(name, decision string, err error) {
	g.Logger.Warn("decision fell back to default",
		"player", name, "decision", decision, "error", err)
	for _, fn := range g.onFallback {
		fn(name, decision, err)
	}
}

func (g *Game) askAction(ctx context.Context, name string) ActionKind {
	view := g.ViewFor(name)
	kind, err := decide(ctx, g.timeoutFor(name), ActionIncome, func(ctx context.Context) (ActionKind, error) {
		return g.seats[name].Decider.ChooseAction(ctx, view)
	})
	if err != nil {
		g.decisionFailed(name, "action", err)
	}
	return kind
}

func (g *Game) askTarget(ctx context.Context, name string, action ActionKind, candidates []string) string {
	view := g.ViewFor(name)
	cands := append([]string(nil), candidates...)
	target, err := decide(ctx, g.timeoutFor(name), "", func(ctx context.Context) (string, error) {
		return g.seats[name].Decider.ChooseTarget(ctx, view, action, cands)
	})
	if err != nil {
		g.decisionFailed(name, "target", err)
	}
	return target
}

func (g *Game) askChallenge(ctx context.Context, name, claimant string, claim ActionKind) bool {
	view := g.ViewFor(name)
	yes, err := decide(ctx, g.timeoutFor(name), false, func(ctx context.Context) (bool, error) {
		return g.seats[name].Decider.WantsToChallenge(ctx, view, claimant, claim)
	})
	if err != nil {
		g.decisionFailed(name, "challenge", err)
	}
	return yes
}

func (g *Game) askBlock(ctx context.Context, name, actor string, action ActionKind) bool {
	view := g.ViewFor(name)
	yes, err := decide(ctx, g.timeoutFor(name), false, func(ctx context.Context) (bool, error) {
		return g.seats[name].Decider.WantsToBlock(ctx, view, actor, action)
	})
	if err != nil {
		g.decisionFailed(name, "block", err)
	}
	return yes
}

func (g *Game) askExchange(ctx context.Context, name string, hand []Character, count int, fallback []Character) []Character {
	offered := append([]Character(nil), hand...)
	chosen, err := decide(ctx, g.timeoutFor(name), fallback, func(ctx context.Context) ([]Character, error) {
		return g.seats[name].Decider.ChooseExchangeCards(ctx, offered, count)
	})
	if err != nil {
		g.decisionFailed(name, "exchange", err)
	}
	return chosen
}
