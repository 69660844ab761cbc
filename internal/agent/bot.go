// Package agent provides computer-controlled deciders: a seeded heuristic
// Bot and an LLM-backed agent that falls back to it.
package agent

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"

	"coup/internal/engine"
)

const (
	DefaultBluffRate     = 0.15
	DefaultChallengeRate = 0.10
	coupThreshold        = 7
)

// cardValue ranks characters for keep/return decisions. Higher is kept.
var cardValue = map[engine.Character]int{
	engine.CharDuke:       5,
	engine.CharCaptain:    4,
	engine.CharAssassin:   3,
	engine.CharContessa:   2,
	engine.CharAmbassador: 1,
}

// Bot is a seeded heuristic decider. It plays its own cards honestly, bluffs
// at BluffRate and challenges at ChallengeRate, more often when it holds
// copies of the claimed character itself.
type Bot struct {
	BluffRate     float64
	ChallengeRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewBot returns a bot with the default rates whose dice are seeded by seed.
func NewBot(seed uint64) *Bot {
	return &Bot{
		BluffRate:     DefaultBluffRate,
		ChallengeRate: DefaultChallengeRate,
		rng:           rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

func (b *Bot) roll(p float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rng.Float64() < p
}

func (b *Bot) pick(n int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rng.IntN(n)
}

func (b *Bot) ChooseAction(ctx context.Context, view engine.PublicView) (engine.ActionKind, error) {
	me, ok := view.Self()
	if !ok {
		return engine.ActionIncome, nil
	}
	holds := func(c engine.Character) bool { return slices.Contains(me.Cards, c) }
	richest := richestOpponent(view)
	// Repeating an action that was just blocked gets nowhere.
	blocked := lastBlocked(view)

	switch {
	case me.Coins >= coupThreshold:
		return engine.ActionCoup, nil
	case holds(engine.CharAssassin) && me.Coins >= 3 && blocked != engine.ActionAssassinate:
		return engine.ActionAssassinate, nil
	case holds(engine.CharDuke):
		return engine.ActionTax, nil
	case holds(engine.CharCaptain) && richest.Coins > 0 && blocked != engine.ActionSteal:
		return engine.ActionSteal, nil
	case holds(engine.CharAmbassador):
		return engine.ActionExchange, nil
	}

	if b.roll(b.BluffRate) {
		bluffs := []engine.ActionKind{engine.ActionTax}
		if richest.Coins >= 2 && blocked != engine.ActionSteal {
			bluffs = append(bluffs, engine.ActionSteal)
		}
		return bluffs[b.pick(len(bluffs))], nil
	}
	if blocked != engine.ActionForeignAid && b.roll(0.5) {
		return engine.ActionForeignAid, nil
	}
	return engine.ActionIncome, nil
}

// ChooseTarget goes after the strongest opponent: most influence for
// attacks, most coins for steals.
func (b *Bot) ChooseTarget(ctx context.Context, view engine.PublicView, action engine.ActionKind, candidates []string) (string, error) {
	best, bestScore := "", -1
	for _, name := range candidates {
		p, ok := view.Find(name)
		if !ok {
			continue
		}
		score := p.Influence*100 + p.Coins
		if action == engine.ActionSteal {
			score = min(p.Coins, 2)*100 + p.Influence
		}
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	return best, nil
}

func (b *Bot) WantsToChallenge(ctx context.Context, view engine.PublicView, claimant string, claim engine.ActionKind) (bool, error) {
	quals := engine.ClaimQualifiers(claim)
	if len(quals) == 0 {
		return false, nil
	}
	me, _ := view.Self()
	held := 0
	for _, c := range quals {
		held += heldCopies(me, c)
	}
	// Every copy in our own hand is one the claimant cannot have.
	rate := b.ChallengeRate + 0.25*float64(held)/float64(len(quals))
	return b.roll(rate), nil
}

func (b *Bot) WantsToBlock(ctx context.Context, view engine.PublicView, actor string, action engine.ActionKind) (bool, error) {
	me, _ := view.Self()
	for _, c := range engine.QualifiedBlockers(action) {
		if slices.Contains(me.Cards, c) {
			return true, nil
		}
	}
	// On the last card an assassination costs the game either way.
	if action == engine.ActionAssassinate && me.Influence == 1 {
		return true, nil
	}
	return b.roll(b.BluffRate), nil
}

// ChooseExchangeCards returns the weakest cards, counting duplicates as weak
// so the kept hand stays varied.
func (b *Bot) ChooseExchangeCards(ctx context.Context, hand []engine.Character, count int) ([]engine.Character, error) {
	type scored struct {
		card  engine.Character
		score int
	}
	seen := make(map[engine.Character]int)
	ranked := make([]scored, 0, len(hand))
	for _, c := range hand {
		ranked = append(ranked, scored{c, cardValue[c] - 10*seen[c]})
		seen[c]++
	}
	slices.SortStableFunc(ranked, func(x, y scored) int { return x.score - y.score })

	out := make([]engine.Character, 0, count)
	for _, s := range ranked[:min(count, len(ranked))] {
		out = append(out, s.card)
	}
	return out, nil
}

func richestOpponent(view engine.PublicView) engine.PublicParticipant {
	var best engine.PublicParticipant
	for _, p := range view.Participants {
		if p.Name == view.Viewer || p.CardCount == 0 {
			continue
		}
		if p.Coins > best.Coins || best.Name == "" {
			best = p
		}
	}
	return best
}

// heldCopies counts copies of c in the viewer's own hand.
func heldCopies(me engine.PublicParticipant, c engine.Character) int {
	n := 0
	for _, card := range me.Cards {
		if card == c {
			n++
		}
	}
	return n
}

// lastBlocked returns the viewer's most recent action if it was blocked.
func lastBlocked(view engine.PublicView) engine.ActionKind {
	for i := len(view.RecentLog) - 1; i >= 0; i-- {
		e := view.RecentLog[i]
		if e.Kind != engine.EntryAction || e.Actor != view.Viewer {
			continue
		}
		if e.Outcome == engine.OutcomeBlocked {
			return e.Action
		}
		return ""
	}
	return ""
}
