package engine

import (
	"context"
	"fmt"
)

// Turn is the in-flight action being resolved.
type Turn struct {
	Actor  string
	Kind   ActionKind
	Target string
}

// Effect applies an action's result once it has survived block and
// challenge resolution.
type Effect interface {
	Kind() ActionKind
	Apply(ctx context.Context, g *Game, t Turn) error
}

// EffectRegistry maps action kinds to their effects.
type EffectRegistry struct {
	effects map[ActionKind]Effect
}

func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{effects: make(map[ActionKind]Effect)}
}

func (r *EffectRegistry) Register(e Effect) {
	r.effects[e.Kind()] = e
}

func (r *EffectRegistry) Get(kind ActionKind) (Effect, error) {
	e, ok := r.effects[kind]
	if !ok {
		return nil, fmt.Errorf("%w for action %s", ErrNoEffect, kind)
	}
	return e, nil
}
