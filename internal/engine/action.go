package engine

import (
	"context"
	"fmt"
	"slices"
)

// Perform validates and executes one action for actor. Rejected actions
// (unknown kind, unaffordable, bad target) are logged and leave coins and
// cards untouched. An actor without cards gets ErrInvalidAction and nothing
// is logged; otherwise the returned error is only set for integrity failures.
func (g *Game) Perform(ctx context.Context, actor string, kind ActionKind) (Outcome, error) {
	if g.Phase == PhaseGameOver {
		return "", ErrGameOver
	}
	if g.Phase == PhaseCorrupted {
		return "", ErrIntegrity
	}
	p, ok := g.State.Participant(actor)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPlayerNotFound, actor)
	}

	// Eliminated participants take no further part in the log.
	if !p.HasCards() {
		return "", fmt.Errorf("%w: %s is out of the game", ErrInvalidAction, actor)
	}
	rule, known := LookupRule(kind)
	if !known {
		return g.reject(actor, kind, "", OutcomeInvalid), nil
	}
	effect, err := g.Effects.Get(kind)
	if err != nil {
		return "", err
	}
	if p.Coins < rule.Cost {
		return g.reject(actor, kind, "", OutcomeInsufficientCoins), nil
	}

	var target string
	if rule.NeedsTarget {
		candidates := g.Targets(actor)
		target = g.askTarget(ctx, actor, kind, candidates)
		if !slices.Contains(candidates, target) {
			return g.reject(actor, kind, target, OutcomeNoTarget), nil
		}
	}

	g.Phase = PhaseResolving
	t := Turn{Actor: actor, Kind: kind, Target: target}
	g.Logger.Info("action declared", "actor", actor, "action", kind, "target", target)

	// Costs are paid up front and kept even if the action is blocked.
	if rule.Cost > 0 {
		if err := g.SpendCoins(actor, rule.Cost); err != nil {
			return "", err
		}
	}

	blocked, err := g.resolveBlock(ctx, t, rule)
	if err != nil {
		return "", err
	}
	if blocked {
		return g.record(t, OutcomeBlocked), nil
	}

	if rule.Challengeable {
		exposed, err := g.resolveChallenge(ctx, t)
		if err != nil {
			return "", err
		}
		if exposed {
			return g.record(t, OutcomeChallengeFailed), nil
		}
	}

	if err := effect.Apply(ctx, g, t); err != nil {
		if g.Phase == PhaseCorrupted {
			return "", err
		}
		return "", g.corrupt(fmt.Errorf("apply %s: %w", kind, err))
	}
	return g.record(t, OutcomeSuccess), nil
}

func (g *Game) reject(actor string, kind ActionKind, target string, outcome Outcome) Outcome {
	g.Logger.Info("action rejected", "actor", actor, "action", kind, "outcome", outcome)
	g.State.LogAction(actor, kind, target, outcome)
	return outcome
}

func (g *Game) record(t Turn, outcome Outcome) Outcome {
	g.Logger.Info("action resolved", "actor", t.Actor, "action", t.Kind, "target", t.Target, "outcome", outcome)
	g.State.LogAction(t.Actor, t.Kind, t.Target, outcome)
	return outcome
}
