package lobby

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"coup/internal/engine"
)

var (
	ErrStarted       = errors.New("game already started")
	ErrFull          = errors.New("lobby is full")
	ErrNotEnough     = errors.New("not enough seats")
	ErrNotReady      = errors.New("not every seat is ready")
	ErrDuplicateName = errors.New("name already taken")
	ErrInvalidName   = errors.New("invalid seat name")
	ErrUnknownKind   = errors.New("unknown seat kind")
)

// Kind is the decision source behind a seat.
type Kind string

const (
	KindHuman Kind = "human"
	KindBot   Kind = "bot"
	KindLLM   Kind = "llm"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindHuman, KindBot, KindLLM:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// SeatInfo holds lobby-level seat information.
type SeatInfo struct {
	Name  string
	Kind  Kind
	Ready bool
}

// Lobby collects the seats of one game before it starts. Seating order is
// join order.
type Lobby struct {
	mu       sync.Mutex
	ID       string
	Seats    []*SeatInfo
	MaxSeats int
	MinSeats int
	Started  bool
}

// NewLobby creates a new lobby.
func NewLobby(id string) *Lobby {
	return &Lobby{
		ID:       id,
		MaxSeats: engine.MaxSeats,
		MinSeats: engine.MinSeats,
	}
}

// Join adds a seat. Computer seats are ready at once; humans confirm with
// SetReady.
func (l *Lobby) Join(name string, kind Kind) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return err
	}
	if l.Started {
		return ErrStarted
	}
	if len(l.Seats) >= l.MaxSeats {
		return ErrFull
	}
	for _, s := range l.Seats {
		if strings.EqualFold(s.Name, name) {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
	}
	l.Seats = append(l.Seats, &SeatInfo{Name: name, Kind: kind, Ready: kind != KindHuman})
	return nil
}

// Leave removes a seat.
func (l *Lobby) Leave(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, s := range l.Seats {
		if s.Name == name {
			l.Seats = append(l.Seats[:i], l.Seats[i+1:]...)
			return
		}
	}
}

// SetReady toggles a seat's ready state.
func (l *Lobby) SetReady(name string, ready bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, s := range l.Seats {
		if s.Name == name {
			s.Ready = ready
			return
		}
	}
}

// CanStart returns true if enough seats joined and all are ready.
func (l *Lobby) CanStart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.checkStart() == nil
}

func (l *Lobby) checkStart() error {
	if l.Started {
		return ErrStarted
	}
	if len(l.Seats) < l.MinSeats {
		return fmt.Errorf("%w: have %d, need %d", ErrNotEnough, len(l.Seats), l.MinSeats)
	}
	for _, s := range l.Seats {
		if !s.Ready {
			return fmt.Errorf("%w: %s", ErrNotReady, s.Name)
		}
	}
	return nil
}

// Start closes the lobby and returns the final seating.
func (l *Lobby) Start() ([]SeatInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkStart(); err != nil {
		return nil, err
	}
	l.Started = true
	return l.snapshot(), nil
}

// GetSeats returns a copy of the seat list.
func (l *Lobby) GetSeats() []SeatInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *Lobby) snapshot() []SeatInfo {
	out := make([]SeatInfo, len(l.Seats))
	for i, s := range l.Seats {
		out[i] = *s
	}
	return out
}
