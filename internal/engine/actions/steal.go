package actions

import (
	"context"

	"coup/internal/engine"
)

// Steal (Captain): take up to 2 coins from the target. The target may block
// with a Captain or an Ambassador.
type Steal struct{}

func (Steal) Kind() engine.ActionKind { return engine.ActionSteal }

func (Steal) Apply(ctx context.Context, g *engine.Game, t engine.Turn) error {
	_, err := g.TransferCoins(t.Target, t.Actor, 2)
	return err
}
