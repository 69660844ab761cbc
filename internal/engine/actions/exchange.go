package actions

import (
	"context"

	"coup/internal/engine"
)

// Exchange (Ambassador): draw 2, then return 2 of the combined hand.
type Exchange struct{}

func (Exchange) Kind() engine.ActionKind { return engine.ActionExchange }

func (Exchange) Apply(ctx context.Context, g *engine.Game, t engine.Turn) error {
	return g.ExchangeCards(ctx, t.Actor)
}
