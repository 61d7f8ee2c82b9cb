package server

import (
	"fmt"
	"log"
	"net/http"

	"spies/internal/engine"
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	port     int
}

func New(port int, config engine.GameConfig) *Server {
	return &Server{
		handlers: NewHandlers(config),
		port:     port,
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/create", s.handlers.HandleCreateRoom)
	mux.HandleFunc("/api/qr", s.handlers.HandleQR)
	mux.HandleFunc("/api/cards", s.handlers.HandleCards)
	mux.HandleFunc("/api/player-id", s.handlers.HandlePlayerID)
	mux.HandleFunc("/ws", s.handlers.HandleWS)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Spies server starting on http://localhost%s", addr)
	log.Printf("POST http://localhost%s/api/create to open a new room", addr)
	return http.ListenAndServe(addr, mux)
}
