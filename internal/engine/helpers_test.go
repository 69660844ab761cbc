package engine_test

import (
	"context"
	"testing"
	"time"

	"coup/internal/engine"
	"coup/internal/engine/actions"
)

// scripted answers every decision from fixed tables. Actions are consumed in
// order; once exhausted it takes income.
type scripted struct {
	actions   []engine.ActionKind
	coupAt    int // coup the first candidate once holding this many coins
	target    string
	challenge map[engine.ActionKind]bool
	block     map[engine.ActionKind]bool
	exchange  func(hand []engine.Character, count int) []engine.Character

	asked []string
}

func (s *scripted) ChooseAction(ctx context.Context, view engine.PublicView) (engine.ActionKind, error) {
	s.asked = append(s.asked, "action")
	if me, ok := view.Self(); ok && s.coupAt > 0 && me.Coins >= s.coupAt {
		return engine.ActionCoup, nil
	}
	if len(s.actions) == 0 {
		return engine.ActionIncome, nil
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return a, nil
}

func (s *scripted) ChooseTarget(ctx context.Context, view engine.PublicView, action engine.ActionKind, candidates []string) (string, error) {
	s.asked = append(s.asked, "target")
	if s.target != "" {
		return s.target, nil
	}
	if len(candidates) == 0 {
		return "", nil
	}
	return candidates[0], nil
}

func (s *scripted) WantsToChallenge(ctx context.Context, view engine.PublicView, claimant string, claim engine.ActionKind) (bool, error) {
	s.asked = append(s.asked, "challenge:"+string(claim))
	return s.challenge[claim], nil
}

func (s *scripted) WantsToBlock(ctx context.Context, view engine.PublicView, actor string, action engine.ActionKind) (bool, error) {
	s.asked = append(s.asked, "block:"+string(action))
	return s.block[action], nil
}

func (s *scripted) ChooseExchangeCards(ctx context.Context, hand []engine.Character, count int) ([]engine.Character, error) {
	s.asked = append(s.asked, "exchange")
	if s.exchange == nil {
		return hand[len(hand)-count:], nil
	}
	return s.exchange(hand, count), nil
}

// stalling never answers before its context is done.
type stalling struct{}

func (stalling) ChooseAction(ctx context.Context, _ engine.PublicView) (engine.ActionKind, error) {
	<-ctx.Done()
	return engine.ActionTax, ctx.Err()
}

func (stalling) ChooseTarget(ctx context.Context, _ engine.PublicView, _ engine.ActionKind, _ []string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (stalling) WantsToChallenge(ctx context.Context, _ engine.PublicView, _ string, _ engine.ActionKind) (bool, error) {
	<-ctx.Done()
	return true, ctx.Err()
}

func (stalling) WantsToBlock(ctx context.Context, _ engine.PublicView, _ string, _ engine.ActionKind) (bool, error) {
	<-ctx.Done()
	return true, ctx.Err()
}

func (stalling) ChooseExchangeCards(ctx context.Context, hand []engine.Character, _ int) ([]engine.Character, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

var names = []string{"P1", "P2", "P3", "P4", "P5", "P6"}

// newTestGame seats one decider per name, deals and returns the started game.
func newTestGame(t *testing.T, deciders ...engine.Decider) *engine.Game {
	t.Helper()
	return newSeededGame(t, 42, deciders...)
}

func newSeededGame(t *testing.T, seed uint64, deciders ...engine.Decider) *engine.Game {
	t.Helper()
	var seats []engine.Seat
	for i, d := range deciders {
		seats = append(seats, engine.Seat{Name: names[i], Decider: d})
	}
	cfg := engine.DefaultConfig()
	cfg.Seed = seed
	cfg.DecisionTimeout = time.Second
	g, err := engine.NewGame(seats, cfg, actions.Registry())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if err := g.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return g
}

// rig gives the named participants exact hands. Everyone else is redealt
// from what remains.
func rig(t *testing.T, g *engine.Game, hands map[string][]engine.Character) {
	t.Helper()
	order := g.State.Order()
	for _, name := range order {
		if err := g.DealHand(name, nil); err != nil {
			t.Fatalf("clear %s: %v", name, err)
		}
	}
	for _, name := range order {
		if hand, ok := hands[name]; ok {
			if err := g.DealHand(name, hand); err != nil {
				t.Fatalf("DealHand(%s): %v", name, err)
			}
		}
	}
	for _, name := range order {
		if _, ok := hands[name]; ok {
			continue
		}
		var hand []engine.Character
		for range engine.HandSize {
			c, err := g.Deck.Draw()
			if err != nil {
				t.Fatalf("Draw: %v", err)
			}
			hand = append(hand, c)
		}
		if err := g.State.UpdateCards(name, hand); err != nil {
			t.Fatalf("UpdateCards(%s): %v", name, err)
		}
	}
	g.State.SetDeckSize(g.Deck.Len())
}

func setCoins(t *testing.T, g *engine.Game, name string, coins int) {
	t.Helper()
	p, _ := g.Player(name)
	if _, err := g.State.UpdateCoins(name, coins-p.Coins); err != nil {
		t.Fatalf("UpdateCoins(%s): %v", name, err)
	}
}

func player(t *testing.T, g *engine.Game, name string) engine.Participant {
	t.Helper()
	p, ok := g.Player(name)
	if !ok {
		t.Fatalf("player %s not found", name)
	}
	return p
}

func entriesOf(g *engine.Game, kind engine.EntryKind) []engine.Entry {
	var out []engine.Entry
	for _, e := range g.State.Entries() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func cardTotal(g *engine.Game) int {
	total := g.Deck.Len()
	for _, name := range g.State.Order() {
		p, _ := g.Player(name)
		total += len(p.Cards)
	}
	return total
}

func countCard(hand []engine.Character, c engine.Character) int {
	n := 0
	for _, h := range hand {
		if h == c {
			n++
		}
	}
	return n
}
