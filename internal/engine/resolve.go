package engine

import "context"

// blockersFor returns who may block t, in the order they are asked. Only the
// target may block an assassination; anyone else still holding cards may
// block foreign aid or a steal.
func (g *Game) blockersFor(t Turn) []string {
	if t.Kind == ActionAssassinate {
		if p, ok := g.State.Participant(t.Target); ok && p.HasCards() {
			return []string{t.Target}
		}
		return nil
	}
	return g.others(t.Actor)
}

// resolveBlock runs the block phase and, if someone blocks, the actor's
// chance to challenge the block. It reports whether the action is blocked.
func (g *Game) resolveBlock(ctx context.Context, t Turn, rule Rule) (bool, error) {
	if !rule.Blockable {
		return false, nil
	}

	blocker := ""
	for _, name := range g.blockersFor(t) {
		if g.askBlock(ctx, name, t.Actor, t.Kind) {
			blocker = name
			break
		}
	}
	if blocker == "" {
		return false, nil
	}

	claim := BlockKindFor(t.Kind)
	g.Logger.Info("block declared", "blocker", blocker, "actor", t.Actor, "action", t.Kind)

	if !g.askChallenge(ctx, t.Actor, blocker, claim) {
		g.State.LogBlock(blocker, t.Actor, t.Kind, ResultUnchallenged, true)
		return true, nil
	}

	bluff, err := g.verifyClaim(t.Actor, blocker, claim)
	if err != nil {
		return false, err
	}
	g.State.LogBlock(blocker, t.Actor, t.Kind, ResultChallenged, !bluff)
	return !bluff, nil
}

// resolveChallenge asks every other participant in turn whether to challenge
// the actor's claim. It reports whether a challenge exposed a bluff.
func (g *Game) resolveChallenge(ctx context.Context, t Turn) (bool, error) {
	for _, name := range g.others(t.Actor) {
		if !g.askChallenge(ctx, name, t.Actor, t.Kind) {
			continue
		}
		g.Logger.Info("challenge declared", "challenger", name, "actor", t.Actor, "action", t.Kind)
		return g.verifyClaim(name, t.Actor, t.Kind)
	}
	return false, nil
}

// verifyClaim reveals whether claimant holds a character qualified for claim.
// The loser of the challenge loses one influence; a proven claimant swaps the
// revealed card for a fresh one.
func (g *Game) verifyClaim(challenger, claimant string, claim ActionKind) (bool, error) {
	p, ok := g.State.Participant(claimant)
	if !ok {
		return false, ErrPlayerNotFound
	}
	qualifiers := ClaimQualifiers(claim)
	truthful := len(qualifiers) == 0 || p.HoldsAny(qualifiers)

	if !truthful {
		g.Logger.Info("bluff exposed", "claimant", claimant, "claim", claim, "challenger", challenger)
		g.State.LogChallenge(challenger, claimant, claim, ResultBluff, true)
		return true, g.LoseInfluence(claimant)
	}

	g.Logger.Info("claim proven", "claimant", claimant, "claim", claim, "challenger", challenger)
	g.State.LogChallenge(challenger, claimant, claim, ResultTruth, false)
	if err := g.LoseInfluence(challenger); err != nil {
		return false, err
	}
	if len(qualifiers) > 0 {
		if err := g.replaceProvenCard(claimant, qualifiers); err != nil {
			return false, err
		}
	}
	return false, nil
}
