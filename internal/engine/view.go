package engine

// ClientPlayer is the redacted projection of one seat: only the recipient's
// own hand is included, every other hand is reduced to a count.
type ClientPlayer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	HandCount    int    `json:"hand_count"`
	DeckCount    int    `json:"deck_count"`
	DiscardCount int    `json:"discard_count"`
	InPlay       []Card `json:"in_play"`
	Connected    bool   `json:"connected"`
	Hand         []Card `json:"hand,omitempty"`
}

// ClientView is the match state as seen by one player. The trash is
// reduced to a count and the log to its most recent entries.
type ClientView struct {
	ID         string         `json:"id"`
	Phase      string         `json:"phase"`
	Current    int            `json:"current_player"`
	Players    []ClientPlayer `json:"players"`
	Supply     map[string]int `json:"supply"`
	TrashCount int            `json:"trash_count"`
	Turn       TurnState      `json:"turn_state"`
	SpyPending *SpyPending    `json:"spy_pending,omitempty"`
	Winners    []string       `json:"winners,omitempty"`
	Log        []string       `json:"log"`
}

const viewLogLines = 20

// ViewFor projects the match state for one recipient.
func (g *Game) ViewFor(playerID string) ClientView {
	view := ClientView{
		ID:         g.ID,
		Phase:      g.Phase.String(),
		Current:    g.Current,
		Supply:     g.Supply,
		TrashCount: len(g.Trash),
		Turn:       g.Turn,
		SpyPending: g.SpyPending,
		Winners:    g.Winners,
	}

	for _, p := range g.Players {
		cp := ClientPlayer{
			ID:           p.ID,
			Name:         p.Name,
			HandCount:    len(p.Hand),
			DeckCount:    len(p.Deck),
			DiscardCount: len(p.Discard),
			InPlay:       p.InPlay,
			Connected:    p.Connected,
		}
		if p.ID == playerID {
			cp.Hand = p.Hand
		}
		view.Players = append(view.Players, cp)
	}

	log := g.Log
	if len(log) > viewLogLines {
		log = log[len(log)-viewLogLines:]
	}
	view.Log = log

	return view
}
