// Package server streams games to spectators over WebSocket and serves the
// spectator page, the games listing, QR codes and metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	port     int
	static   fs.FS
	logger   *slog.Logger
}

// New returns a server for handlers. static is served at the root; it may be
// nil.
func New(port int, static fs.FS, handlers *Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		handlers: handlers,
		port:     port,
		static:   static,
		logger:   logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.static != nil {
		mux.Handle("/", http.FileServer(http.FS(s.static)))
	}
	mux.HandleFunc("/api/games", s.handlers.HandleGames)
	mux.HandleFunc("/api/qr", s.handlers.HandleQR)
	mux.HandleFunc("/ws", s.handlers.HandleWS)
	mux.Handle("/metrics", s.handlers.HandleMetrics())
	return mux
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("spectator server starting", "addr", "http://localhost"+addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
