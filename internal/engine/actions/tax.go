package actions

import (
	"context"

	"coup/internal/engine"
)

// Tax (Duke): take 3 coins.
type Tax struct{}

func (Tax) Kind() engine.ActionKind { return engine.ActionTax }

func (Tax) Apply(ctx context.Context, g *engine.Game, t engine.Turn) error {
	return g.GainCoins(t.Actor, 3)
}
