package lobby

import (
	"crypto/rand"
	"math/big"
	"sync"
)

// codeAlphabet omits easily-confused characters (I, O, 0, 1).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// Manager manages the rooms on this server.
type Manager struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewManager() *Manager {
	return &Manager{rooms: make(map[string]*Room)}
}

// Create creates a new room and returns its join code.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := generateCode()
	for m.rooms[code] != nil {
		code = generateCode()
	}
	m.rooms[code] = NewRoom(code)
	return code
}

// Get returns a room by code, or nil.
func (m *Manager) Get(code string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[code]
}

// Remove deletes a room.
func (m *Manager) Remove(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

func generateCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code)
}
