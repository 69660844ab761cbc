package lobby

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Manager manages the lobbies of every game played by this process.
type Manager struct {
	mu      sync.Mutex
	lobbies map[string]*Lobby
	order   []string
}

func NewManager() *Manager {
	return &Manager{lobbies: make(map[string]*Lobby)}
}

// Create creates a new lobby and returns it. The lobby ID doubles as the
// game ID spectators connect with.
func (m *Manager) Create() *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	l := NewLobby(id)
	m.lobbies[id] = l
	m.order = append(m.order, id)
	return l
}

// Get returns a lobby by ID.
func (m *Manager) Get(id string) *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbies[id]
}

// IDs returns lobby IDs in creation order.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Started returns the IDs of lobbies whose game has begun, sorted.
func (m *Manager) Started() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []string
	for id, l := range m.lobbies {
		l.mu.Lock()
		if l.Started {
			out = append(out, id)
		}
		l.mu.Unlock()
	}
	sort.Strings(out)
	return out
}
