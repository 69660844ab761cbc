package server

import (
	"encoding/json"
	"log/slog"
	"sync"

	"coup/internal/engine"
	"coup/internal/protocol"
)

// Hub streams one game's log to its spectators. It is an engine observer:
// Observe runs on the engine goroutine and never blocks on a slow client.
type Hub struct {
	mu      sync.Mutex
	gameID  string
	seats   []string
	backlog [][]byte // encoded entry envelopes, in log order
	state   []byte   // latest game_state envelope
	turns   int
	over    bool
	winner  string
	clients map[*Client]bool
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}
	closeOnce  sync.Once
}

func NewHub(gameID string, seats []string, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Hub{
		gameID:     gameID,
		seats:      append([]string(nil), seats...),
		clients:    make(map[*Client]bool),
		logger:     logger.With("game", gameID),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			// Joining and catching up happen under one lock so no entry is
			// missed or sent twice.
			h.mu.Lock()
			h.clients[client] = true
			hello := protocol.Hello{GameID: h.gameID, Seats: h.seats, Entries: len(h.backlog)}
			client.SendEnvelope(protocol.MustEnvelope(protocol.MsgHello, hello))
			h.replayLocked(client, 1)
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop ends Run and disconnects every client.
func (h *Hub) Stop() {
	h.closeOnce.Do(func() { close(h.quit) })
}

// Observe records the entry and fans it out with the spectator view.
func (h *Hub) Observe(e engine.Entry, view engine.PublicView) {
	entry, err := protocol.MustEnvelope(protocol.MsgEntry, e).Encode()
	if err != nil {
		h.logger.Error("encode entry", "error", err)
		return
	}
	state, err := protocol.MustEnvelope(protocol.MsgGameState, view).Encode()
	if err != nil {
		h.logger.Error("encode state", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if e.Kind == engine.EntryTurn {
		h.turns++
	}
	h.backlog = append(h.backlog, entry)
	h.state = state
	h.broadcastLocked(entry)
	h.broadcastLocked(state)

	if e.Kind == engine.EntryGameOver {
		h.over = true
		h.winner = e.Winner
		over, _ := protocol.MustEnvelope(protocol.MsgGameOver, protocol.GameOver{
			Winner: e.Winner,
			Turns:  h.turns,
		}).Encode()
		h.broadcastLocked(over)
	}
}

// Summary describes the hub's game for the games listing.
func (h *Hub) Summary() protocol.GameSummary {
	h.mu.Lock()
	defer h.mu.Unlock()
	return protocol.GameSummary{
		ID:      h.gameID,
		Seats:   append([]string(nil), h.seats...),
		Entries: len(h.backlog),
		Over:    h.over,
		Winner:  h.winner,
	}
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[msg.Client] {
		return
	}
	switch msg.Envelope.Type {
	case protocol.MsgSync:
		var req protocol.SyncMsg
		if len(msg.Envelope.Payload) > 0 {
			if err := json.Unmarshal(msg.Envelope.Payload, &req); err != nil {
				h.sendError(msg.Client, "invalid sync message")
				return
			}
		}
		h.replayLocked(msg.Client, max(req.From, 1))
	default:
		h.sendError(msg.Client, "spectators cannot act")
	}
}

// replayLocked sends every backlog entry from sequence from onward, then the
// latest state.
func (h *Hub) replayLocked(client *Client, from int) {
	for _, data := range h.backlog[min(from-1, len(h.backlog)):] {
		client.sendRaw(data)
	}
	if h.state != nil {
		client.sendRaw(h.state)
	}
}

func (h *Hub) broadcastLocked(data []byte) {
	for client := range h.clients {
		client.sendRaw(data)
	}
}

func (h *Hub) sendError(client *Client, message string) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message}))
}
