package engine

// GamePhase represents the current phase of the match state machine.
// Cleanup is not a standing phase: it happens on the buy → action edge.
type GamePhase int

const (
	PhaseAction GamePhase = iota // current player may play action cards
	PhaseBuy                     // treasures are in play, current player may buy
	PhaseEnded                   // terminal; no further actions accepted
)

var phaseNames = map[GamePhase]string{
	PhaseAction: "action",
	PhaseBuy:    "buy",
	PhaseEnded:  "ended",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}
