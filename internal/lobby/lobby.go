package lobby

import (
	"fmt"
	"sync"
)

// PlayerInfo holds room-level player information.
type PlayerInfo struct {
	ID    string
	Name  string
	Ready bool
}

// Room represents a game room waiting for players.
type Room struct {
	mu         sync.Mutex
	Code       string
	Players    []*PlayerInfo
	MaxPlayers int
	MinPlayers int
	Started    bool
}

// NewRoom creates a new room with the given join code.
func NewRoom(code string) *Room {
	return &Room{
		Code:       code,
		MaxPlayers: 4,
		MinPlayers: 2,
	}
}

// Join adds a player to the room. Rejoining with a known ID just updates
// the name, so a reconnect does not take a second seat.
func (r *Room) Join(id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Started {
		return fmt.Errorf("game already started")
	}
	if len(r.Players) >= r.MaxPlayers {
		return fmt.Errorf("room is full")
	}
	for _, p := range r.Players {
		if p.ID == id {
			p.Name = name
			return nil
		}
	}
	r.Players = append(r.Players, &PlayerInfo{ID: id, Name: name})
	return nil
}

// Leave removes a player from the room.
func (r *Room) Leave(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.Players {
		if p.ID == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return
		}
	}
}

// SetReady toggles a player's ready state.
func (r *Room) SetReady(id string, ready bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.Players {
		if p.ID == id {
			p.Ready = ready
			return
		}
	}
}

// CanStart returns true if enough players have joined and all are ready.
func (r *Room) CanStart() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Players) < r.MinPlayers {
		return false
	}
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Start marks the room as started.
func (r *Room) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Started {
		return fmt.Errorf("already started")
	}
	if len(r.Players) < r.MinPlayers {
		return fmt.Errorf("not enough players")
	}
	r.Started = true
	return nil
}

// GetPlayers returns a copy of the player list in join order. Join order
// is seat order once the game starts.
func (r *Room) GetPlayers() []PlayerInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]PlayerInfo, len(r.Players))
	for i, p := range r.Players {
		out[i] = *p
	}
	return out
}

// Empty returns true if no players remain.
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Players) == 0
}
