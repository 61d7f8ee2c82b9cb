package server

import (
	"encoding/json"
	"log"
	"math/rand/v2"
	"sync"

	"spies/internal/engine"
	"spies/internal/lobby"
	"spies/internal/protocol"
)

// Hub manages WebSocket connections and game state for one room. Its Run
// loop is the only goroutine that touches the engine, so actions for a
// match are applied strictly one at a time.
type Hub struct {
	mu         sync.Mutex
	code       string
	room       *lobby.Room
	game       *engine.Game
	config     engine.GameConfig
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}
}

func NewHub(code string, room *lobby.Room, config engine.GameConfig) *Hub {
	return &Hub{
		code:       code,
		room:       room,
		config:     config,
		clients:    make(map[*Client]bool),
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
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendRoomUpdate()
			if h.game != nil {
				h.game.SetConnected(client.PlayerID, true)
				h.broadcastState()
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			if h.game != nil {
				h.game.SetConnected(client.PlayerID, false)
				h.broadcastState()
			} else {
				h.room.Leave(client.PlayerID)
				h.sendRoomUpdate()
			}

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.quit:
			return
		}
	}
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	default:
		h.handleGameAction(msg)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &join); err != nil {
		h.sendError(msg.Client, "invalid join message")
		return
	}
	msg.Client.PlayerID = join.PlayerID
	if err := h.room.Join(join.PlayerID, join.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendRoomUpdate()
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &ready); err != nil {
		h.sendError(msg.Client, "invalid ready message")
		return
	}
	h.room.SetReady(msg.Client.PlayerID, ready.Ready)
	h.sendRoomUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	if !h.room.CanStart() {
		h.sendError(msg.Client, "not all players ready")
		return
	}
	if err := h.room.Start(); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	roomPlayers := h.room.GetPlayers()
	seats := make([]engine.Seat, len(roomPlayers))
	for i, rp := range roomPlayers {
		seats[i] = engine.Seat{ID: rp.ID, Name: rp.Name}
	}

	// Each match gets its own shuffle source; sharing one across hubs
	// would race.
	cfg := h.config
	cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	h.game = engine.NewGame(h.code, seats, cfg)
	h.sendRoomUpdate()
	h.broadcastState()
}

func (h *Hub) handleGameAction(msg IncomingMessage) {
	if h.game == nil {
		h.sendError(msg.Client, "game not started")
		return
	}

	action := engine.Action{Type: engine.ActionType(msg.Envelope.Type)}
	if len(msg.Envelope.Payload) > 0 {
		if err := json.Unmarshal(msg.Envelope.Payload, &action); err != nil {
			h.sendError(msg.Client, "invalid payload")
			return
		}
		action.Type = engine.ActionType(msg.Envelope.Type)
	}

	if err := h.game.Apply(msg.Client.PlayerID, action); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	h.broadcastState()
}

// broadcastState sends each connected client its own redacted view.
func (h *Hub) broadcastState() {
	if h.game == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		view := h.game.ViewFor(client.PlayerID)
		client.SendEnvelope(protocol.MustEnvelope(protocol.MsgGameState, view))
	}
}

func (h *Hub) sendRoomUpdate() {
	players := h.room.GetPlayers()
	rps := make([]protocol.RoomPlayer, len(players))
	for i, p := range players {
		rps[i] = protocol.RoomPlayer{ID: p.ID, Name: p.Name, Ready: p.Ready}
	}
	env := protocol.MustEnvelope(protocol.MsgRoomUpdate, protocol.RoomUpdate{
		Code:    h.code,
		Players: rps,
		Started: h.room.Started,
	})
	h.broadcastAll(env)
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			log.Printf("client %s buffer full", client.PlayerID)
		}
	}
}

func (h *Hub) sendError(client *Client, message string) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message}))
}
