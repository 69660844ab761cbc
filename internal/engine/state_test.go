package engine_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"coup/internal/engine"
)

func TestAddParticipant(t *testing.T) {
	s := engine.NewState(0)
	if err := s.AddParticipant("alice"); err != nil {
		t.Fatalf("AddParticipant: %v", err)
	}
	if err := s.AddParticipant("alice"); !errors.Is(err, engine.ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}
	if err := s.AddParticipant(""); !errors.Is(err, engine.ErrInvalidParticipant) {
		t.Fatalf("expected ErrInvalidParticipant, got %v", err)
	}
	p, ok := s.Participant("alice")
	if !ok || p.Coins != engine.StartingCoins || p.HasCards() {
		t.Fatalf("unexpected new participant %+v", p)
	}
}

func TestCoinsClampAtZero(t *testing.T) {
	s := engine.NewState(0)
	if err := s.AddParticipant("a"); err != nil {
		t.Fatalf("AddParticipant: %v", err)
	}
	for _, delta := range []int{-1, -5, 3, -100, 1} {
		coins, err := s.UpdateCoins("a", delta)
		if err != nil {
			t.Fatalf("UpdateCoins: %v", err)
		}
		if coins < 0 {
			t.Fatalf("coins went negative: %d", coins)
		}
	}
	if p, _ := s.Participant("a"); p.Coins != 1 {
		t.Fatalf("expected 1 coin, got %d", p.Coins)
	}
	if _, err := s.UpdateCoins("ghost", 1); !errors.Is(err, engine.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestParticipantIsACopy(t *testing.T) {
	s := engine.NewState(0)
	_ = s.AddParticipant("a")
	_ = s.UpdateCards("a", []engine.Character{engine.CharDuke, engine.CharDuke})
	p, _ := s.Participant("a")
	p.Cards[0] = engine.CharContessa
	q, _ := s.Participant("a")
	if q.Cards[0] != engine.CharDuke {
		t.Fatal("mutating a returned participant changed the state")
	}
}

func TestPublicViewRedacts(t *testing.T) {
	g := newTestGame(t, &scripted{}, &scripted{}, &scripted{})
	v := g.ViewFor("P2")
	for _, p := range v.Participants {
		if p.Name == "P2" && len(p.Cards) != 2 {
			t.Fatalf("viewer should see own cards, got %v", p.Cards)
		}
		if p.Name != "P2" && len(p.Cards) != 0 {
			t.Fatalf("viewer should not see %s's cards", p.Name)
		}
		if p.CardCount != 2 || p.Influence != 2 {
			t.Fatalf("expected counts of 2 for %s, got %+v", p.Name, p)
		}
	}
	if v.Turn != "P1" || v.Phase != engine.PhaseAwaitingAction.String() {
		t.Fatalf("unexpected turn/phase %q/%q", v.Turn, v.Phase)
	}

	raw, err := json.Marshal(g.SpectatorView())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, c := range engine.AllCharacters() {
		if strings.Contains(string(raw), c.String()) {
			t.Fatalf("spectator view leaks %s: %s", c, raw)
		}
	}
}

func TestPublicViewLogWindow(t *testing.T) {
	s := engine.NewState(3)
	_ = s.AddParticipant("a")
	for range 10 {
		s.LogTurn("a")
	}
	v := s.PublicView("a")
	if len(v.RecentLog) != 3 {
		t.Fatalf("expected 3 recent entries, got %d", len(v.RecentLog))
	}
	if v.RecentLog[2].Seq != 10 {
		t.Fatalf("expected newest entry last, got seq %d", v.RecentLog[2].Seq)
	}
	if len(s.FullView().Log) != 10 {
		t.Fatal("full view should carry the whole log")
	}
}

func TestEntryJSON(t *testing.T) {
	s := engine.NewState(0)
	_ = s.AddParticipant("a")
	e := s.LogInfluenceChange("a", -1, engine.CharAssassin)
	raw, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"card":"Assassin"`) {
		t.Fatalf("expected card by name, got %s", raw)
	}
	var back engine.Entry
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Card != engine.CharAssassin || back.Delta != -1 {
		t.Fatalf("round trip lost data: %+v", back)
	}
}

func TestEntryString(t *testing.T) {
	cases := []struct {
		e    engine.Entry
		want string
	}{
		{engine.Entry{Kind: engine.EntryTurn, Actor: "A"}, "A's turn"},
		{engine.Entry{Kind: engine.EntryAction, Actor: "A", Action: engine.ActionSteal, Target: "B", Outcome: engine.OutcomeBlocked}, "A steal on B: blocked"},
		{engine.Entry{Kind: engine.EntryInfluence, Player: "B", Delta: -1, Card: engine.CharContessa}, "B lost a Contessa"},
		{engine.Entry{Kind: engine.EntryGameOver}, "game over, no winner"},
	}
	for _, c := range cases {
		if got := c.e.String(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}
