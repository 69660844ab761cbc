package actions

import (
	"context"

	"coup/internal/engine"
)

// Assassinate (Assassin): pay 3 coins, the target loses one influence. The
// target may block with a Contessa. The coins stay spent either way.
type Assassinate struct{}

func (Assassinate) Kind() engine.ActionKind { return engine.ActionAssassinate }

func (Assassinate) Apply(ctx context.Context, g *engine.Game, t engine.Turn) error {
	return g.LoseInfluence(t.Target)
}
