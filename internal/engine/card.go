package engine

// CardType classifies a card for play and purchase rules.
type CardType string

const (
	TypeTreasure CardType = "treasure"
	TypeVictory  CardType = "victory"
	TypeAction   CardType = "action"
)

// SpecialEffect enumerates effects that need more than counter bonuses.
// The zero value means the card is fully described by its bonuses.
type SpecialEffect int

const (
	SpecialNone SpecialEffect = iota
	SpecialSpy                // each player reveals their top card, the actor chooses discard or keep
)

// CardEffect describes what a card does when played, or for victory
// cards, what it is worth at game end.
type CardEffect struct {
	Cards   int           `json:"cards,omitempty"`
	Actions int           `json:"actions,omitempty"`
	Buys    int           `json:"buys,omitempty"`
	Coins   int           `json:"coins,omitempty"`
	VP      int           `json:"vp,omitempty"`
	Special SpecialEffect `json:"special,omitempty"`
}

// CardDef is an immutable catalog entry.
type CardDef struct {
	Name        string     `json:"name"`
	Cost        int        `json:"cost"`
	Type        CardType   `json:"type"`
	Effect      CardEffect `json:"effect"`
	Description string     `json:"description"`
}

// Card is a single physical card. ID is unique within a match; cards are
// otherwise value-equal by name.
type Card struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
