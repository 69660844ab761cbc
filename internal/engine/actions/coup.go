package actions

import (
	"context"

	"coup/internal/engine"
)

// Coup: pay 7 coins, the target loses one influence. Unstoppable.
type Coup struct{}

func (Coup) Kind() engine.ActionKind { return engine.ActionCoup }

func (Coup) Apply(ctx context.Context, g *engine.Game, t engine.Turn) error {
	return g.LoseInfluence(t.Target)
}
