// Package api provides HTTP handlers and the main API server logic for the
// Maritime Pilot Report assistant.
//
// It exposes the chat and initialize endpoints for form-filling
// conversations and the WebSocket voice channel. The API integrates with the
// genai provider adapters, the response composer, and the voice pipeline.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/genai"
	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/voice"
)

// Opts holds configuration options for the API server.
type Opts struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string
}

// Server bundles the dependencies the handlers need.
type Server struct {
	registry *genai.Registry
	voiceCap *voice.Capability
	conns    *connectionManager
}

// NewServer creates a server over the configured model adapters and the
// shared voice capability. voiceCap may be nil; the voice endpoint then
// reports unavailable.
func NewServer(registry *genai.Registry, voiceCap *voice.Capability) *Server {
	return &Server{
		registry: registry,
		voiceCap: voiceCap,
		conns:    newConnectionManager(),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.chatHandler)
	mux.HandleFunc("POST /initialize", s.initializeHandler)
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /voice/{client_id}", s.voiceHandler)
	return mux
}

// Run starts the API server and blocks until it exits.
func Run(opts Opts, registry *genai.Registry, voiceCap *voice.Capability) error {
	addr := opts.Addr
	if addr == "" {
		addr = ":8000"
	}

	s := NewServer(registry, voiceCap)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("api.Run: server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}
