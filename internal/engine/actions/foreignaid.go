package actions

import (
	"context"

	"coup/internal/engine"
)

// ForeignAid: take 2 coins. Any Duke may block it.
type ForeignAid struct{}

func (ForeignAid) Kind() engine.ActionKind { return engine.ActionForeignAid }

func (ForeignAid) Apply(ctx context.Context, g *engine.Game, t engine.Turn) error {
	return g.GainCoins(t.Actor, 2)
}
