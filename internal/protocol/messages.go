package protocol

// Message types: Server → Client
const (
	MsgRoomUpdate = "room_update"
	MsgGameState  = "game_state"
	MsgError      = "error"
)

// Message types: Client → Server
const (
	MsgJoin      = "join"
	MsgReady     = "ready"
	MsgStartGame = "start_game"
	// In-game actions use the same names as engine ActionType
	MsgPlayCard  = "play_card"
	MsgBuyCard   = "buy_card"
	MsgEndPhase  = "end_phase"
	MsgSpyChoice = "spy_choice"
)

// RoomUpdate is sent to all clients when room membership changes.
type RoomUpdate struct {
	Code    string       `json:"code"`
	Players []RoomPlayer `json:"players"`
	Started bool         `json:"started"`
}

type RoomPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

// JoinMsg is sent by a player to take a seat in the room.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// ErrorMsg is sent to a client when an action is rejected.
type ErrorMsg struct {
	Message string `json:"message"`
}
