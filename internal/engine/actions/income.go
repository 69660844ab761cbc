// Package actions holds the effect of each action once it survives block and
// challenge resolution.
package actions

import (
	"context"

	"coup/internal/engine"
)

// Income: take 1 coin. Cannot be blocked or challenged.
type Income struct{}

func (Income) Kind() engine.ActionKind { return engine.ActionIncome }

func (Income) Apply(ctx context.Context, g *engine.Game, t engine.Turn) error {
	return g.GainCoins(t.Actor, 1)
}
