package lobby_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"coup/internal/lobby"
)

func TestJoinAndStart(t *testing.T) {
	l := lobby.NewLobby("g1")
	if err := l.Join("alice", lobby.KindHuman); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := l.Join("bot1", lobby.KindBot); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if l.CanStart() {
		t.Fatal("human seat is not ready yet")
	}
	if _, err := l.Start(); !errors.Is(err, lobby.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	l.SetReady("alice", true)
	seats, err := l.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(seats) != 2 || seats[0].Name != "alice" || seats[1].Kind != lobby.KindBot {
		t.Fatalf("unexpected seating %+v", seats)
	}
	if err := l.Join("late", lobby.KindBot); !errors.Is(err, lobby.ErrStarted) {
		t.Fatalf("expected ErrStarted, got %v", err)
	}
}

func TestJoinValidation(t *testing.T) {
	l := lobby.NewLobby("g1")
	tests := []struct {
		name string
		kind lobby.Kind
		err  error
	}{
		{"alice", lobby.KindBot, nil},
		{"ALICE", lobby.KindBot, lobby.ErrDuplicateName},
		{"  ", lobby.KindBot, lobby.ErrInvalidName},
		{"bob", "robot", lobby.ErrUnknownKind},
	}
	for _, tt := range tests {
		err := l.Join(tt.name, tt.kind)
		if tt.err == nil && err != nil {
			t.Errorf("Join(%q): unexpected error %v", tt.name, err)
		}
		if tt.err != nil && !errors.Is(err, tt.err) {
			t.Errorf("Join(%q): expected %v, got %v", tt.name, tt.err, err)
		}
	}
}

func TestSeatLimits(t *testing.T) {
	l := lobby.NewLobby("g1")
	if err := l.Join("solo", lobby.KindBot); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if _, err := l.Start(); !errors.Is(err, lobby.ErrNotEnough) {
		t.Fatalf("expected ErrNotEnough, got %v", err)
	}
	for i := 2; i <= l.MaxSeats; i++ {
		if err := l.Join(fmt.Sprintf("bot%d", i), lobby.KindBot); err != nil {
			t.Fatalf("Join %d: %v", i, err)
		}
	}
	if err := l.Join("extra", lobby.KindBot); !errors.Is(err, lobby.ErrFull) {
		t.Fatalf("expected ErrFull, got %v", err)
	}
	l.Leave("solo")
	if got := len(l.GetSeats()); got != l.MaxSeats-1 {
		t.Fatalf("expected %d seats after leave, got %d", l.MaxSeats-1, got)
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]lobby.Kind{"human": lobby.KindHuman, " BOT ": lobby.KindBot, "llm": lobby.KindLLM} {
		got, err := lobby.ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := lobby.ParseKind("alien"); !errors.Is(err, lobby.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestManager(t *testing.T) {
	m := lobby.NewManager()
	a := m.Create()
	b := m.Create()
	if _, err := uuid.Parse(a.ID); err != nil {
		t.Fatalf("lobby ID is not a uuid: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("lobby IDs collide")
	}
	if m.Get(a.ID) != a || m.Get("missing") != nil {
		t.Fatal("Get returned the wrong lobby")
	}
	if ids := m.IDs(); len(ids) != 2 || ids[0] != a.ID {
		t.Fatalf("unexpected IDs %v", ids)
	}

	_ = b.Join("x", lobby.KindBot)
	_ = b.Join("y", lobby.KindBot)
	if _, err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if started := m.Started(); len(started) != 1 || started[0] != b.ID {
		t.Fatalf("expected only %s started, got %v", b.ID, started)
	}
}
