package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"coup/internal/protocol"
	qr "coup/internal/qrcode"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	mu       sync.RWMutex
	hubs     map[string]*Hub
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

func NewHandlers(gatherer prometheus.Gatherer, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		hubs:     make(map[string]*Hub),
		Gatherer: gatherer,
		Logger:   logger,
	}
}

// Register makes a game's hub reachable by its ID.
func (h *Handlers) Register(hub *Hub) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hubs[hub.gameID] = hub
}

// Hub returns the hub registered for a game ID.
func (h *Handlers) Hub(id string) (*Hub, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	hub, ok := h.hubs[id]
	return hub, ok
}

// HandleGames lists every registered game.
func (h *Handlers) HandleGames(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	games := make([]protocol.GameSummary, 0, len(h.hubs))
	for _, hub := range h.hubs {
		games = append(games, hub.Summary())
	}
	h.mu.RUnlock()
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(games); err != nil {
		h.Logger.Error("encode games", "error", err)
	}
}

// HandleQR generates a QR code PNG that opens the spectator page for a game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	if _, ok := h.Hub(gameID); !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	png, err := qr.Generate(qr.SpectateURL(r.Host, gameID))
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleWS upgrades a spectator connection and attaches it to the game's hub.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	hub, ok := h.Hub(gameID)
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn("ws upgrade error", "error", err)
		return
	}

	client := NewClient(hub, conn)
	select {
	case hub.register <- client:
	case <-hub.quit:
		conn.Close()
		return
	}
	h.Logger.Debug("spectator connected", "game", gameID, "client", client.ID)

	go client.WritePump()
	go client.ReadPump()
}

// HandleMetrics serves the Prometheus registry.
func (h *Handlers) HandleMetrics() http.Handler {
	if h.Gatherer == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{})
}
