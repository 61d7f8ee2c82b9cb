package engine

// Player holds one seat's card zones. The top of Deck is the end of the
// slice. A card is in exactly one zone at a time; every move is a
// remove-then-append.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Deck      []Card `json:"deck"`
	Hand      []Card `json:"hand"`
	Discard   []Card `json:"discard"`
	InPlay    []Card `json:"in_play"`
	Connected bool   `json:"connected"`
}

// CardCount returns how many cards the player owns across all zones.
func (p *Player) CardCount() int {
	return len(p.Deck) + len(p.Hand) + len(p.Discard) + len(p.InPlay)
}

// AllCards returns every card the player owns, across all zones.
func (p *Player) AllCards() []Card {
	all := make([]Card, 0, p.CardCount())
	all = append(all, p.Deck...)
	all = append(all, p.Hand...)
	all = append(all, p.Discard...)
	all = append(all, p.InPlay...)
	return all
}
