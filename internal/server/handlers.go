package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"spies/internal/engine"
	"spies/internal/lobby"
	qr "spies/internal/qrcode"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	RoomMgr *lobby.Manager
	Config  engine.GameConfig

	mu   sync.Mutex
	hubs map[string]*Hub
}

func NewHandlers(config engine.GameConfig) *Handlers {
	return &Handlers{
		RoomMgr: lobby.NewManager(),
		Config:  config,
		hubs:    make(map[string]*Hub),
	}
}

// HandleCreateRoom creates a new room and returns its join code.
func (h *Handlers) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	code := h.RoomMgr.Create()
	room := h.RoomMgr.Get(code)
	hub := NewHub(code, room, h.Config)

	h.mu.Lock()
	h.hubs[code] = hub
	h.mu.Unlock()
	go hub.Run()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"code": code})
}

// HandleQR generates a QR code PNG for joining the room.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.URL.Query().Get("room"))
	if code == "" {
		http.Error(w, "missing room parameter", http.StatusBadRequest)
		return
	}
	if h.RoomMgr.Get(code) == nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	url := fmt.Sprintf("http://%s/?room=%s", r.Host, code)
	png, err := qr.JoinCode(url)
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleCards returns the card catalog so clients can render costs and
// descriptions without a copy of their own.
func (h *Handlers) HandleCards(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Config.Catalog)
}

// HandlePlayerID mints a stable player identity for a new client.
func (h *Handlers) HandlePlayerID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(uuid.NewString()))
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.URL.Query().Get("room"))
	playerID := r.URL.Query().Get("player")

	if code == "" {
		http.Error(w, "missing room parameter", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	hub, ok := h.hubs[code]
	h.mu.Unlock()
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	client := NewClient(hub, conn, playerID)
	hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}
