package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	ErrNotYourTurn      = errors.New("not your turn")
	ErrWrongPhase       = errors.New("wrong phase for this action")
	ErrPendingChoice    = errors.New("a spy choice is pending")
	ErrInvalidCardIndex = errors.New("invalid card index")
	ErrCardNotPlayable  = errors.New("card is not playable")
	ErrUnknownCard      = errors.New("unknown card")
	ErrSupplyExhausted  = errors.New("supply pile is empty")
	ErrNotEnoughCoins   = errors.New("not enough coins")
	ErrNotEnoughBuys    = errors.New("no buys remaining")
	ErrNoPendingChoice  = errors.New("no spy choice is pending")
	ErrNotYourChoice    = errors.New("spy choice is not yours to make")
	ErrInvalidAction    = errors.New("invalid action")
)

// ActionType identifies player actions sent to Game.Apply.
type ActionType string

const (
	ActionPlayCard  ActionType = "play_card"
	ActionBuyCard   ActionType = "buy_card"
	ActionEndPhase  ActionType = "end_phase"
	ActionSpyChoice ActionType = "spy_choice"
)

// Action is a player's action input.
type Action struct {
	Type ActionType `json:"type"`
	// Params depend on Type:
	// play_card: CardIndex (position in own hand)
	// buy_card: CardName
	// spy_choice: Discard
	CardIndex int    `json:"card_index,omitempty"`
	CardName  string `json:"card_name,omitempty"`
	Discard   bool   `json:"discard,omitempty"`
}

// TurnState holds the current player's spendable resources. Reset to
// {1, 1, 0} at the start of every turn.
type TurnState struct {
	Actions int `json:"actions"`
	Buys    int `json:"buys"`
	Coins   int `json:"coins"`
}

func newTurnState() TurnState {
	return TurnState{Actions: 1, Buys: 1, Coins: 0}
}

// Seat is one entry of the already-validated roster handed to NewGame.
type Seat struct {
	ID   string
	Name string
}

// Game holds the entire authoritative state of one match. It performs no
// locking; the caller must serialize actions per match.
type Game struct {
	ID         string         `json:"id"`
	Phase      GamePhase      `json:"phase"`
	Current    int            `json:"current_player"`
	Players    []*Player      `json:"players"`
	Supply     map[string]int `json:"supply"`
	Trash      []Card         `json:"trash"`
	Turn       TurnState      `json:"turn_state"`
	SpyPending *SpyPending    `json:"spy_pending,omitempty"`
	Winners    []string       `json:"winners,omitempty"`
	Log        []string       `json:"log"`

	catalog  Catalog
	rng      *rand.Rand
	nextCard int // per-match card id counter
}

// NewGame creates a started match from a fixed roster: starting decks are
// dealt, opening hands drawn, and the first player's action phase begins
// (auto-skipping it if they hold no action cards).
func NewGame(id string, seats []Seat, cfg GameConfig) *Game {
	g := &Game{
		ID:      id,
		Phase:   PhaseAction,
		Supply:  initialSupply(cfg.Catalog, len(seats)),
		Turn:    newTurnState(),
		catalog: cfg.Catalog,
		rng:     cfg.Rand,
	}
	for _, s := range seats {
		g.Players = append(g.Players, g.newPlayer(s.ID, s.Name))
	}
	g.logf("Game started with %d players", len(seats))
	g.maybeSkipActionPhase()
	return g
}

// initialSupply sizes the shared piles for the player count: victory piles
// shrink to 8 for two players, and the Copper pile excludes the coppers
// already dealt into starting decks.
func initialSupply(cat Catalog, playerCount int) map[string]int {
	victory := 12
	if playerCount == 2 {
		victory = 8
	}
	supply := make(map[string]int, len(cat))
	for name, def := range cat {
		switch {
		case name == "Copper":
			supply[name] = 60 - playerCount*7
		case name == "Silver":
			supply[name] = 40
		case name == "Gold":
			supply[name] = 30
		case def.Type == TypeVictory:
			supply[name] = victory
		default:
			supply[name] = 10
		}
	}
	return supply
}

// newPlayer deals the standard starting deck of 7 Copper and 3 Estate,
// shuffles it, and draws the opening hand of 5.
func (g *Game) newPlayer(id, name string) *Player {
	p := &Player{ID: id, Name: name, Connected: true}
	for i := 0; i < 7; i++ {
		p.Deck = append(p.Deck, g.newCard("Copper"))
	}
	for i := 0; i < 3; i++ {
		p.Deck = append(p.Deck, g.newCard("Estate"))
	}
	shuffleCards(g.rng, p.Deck)
	g.drawCards(p, 5)
	return p
}

// newCard mints a card with a match-unique id.
func (g *Game) newCard(name string) Card {
	g.nextCard++
	return Card{ID: fmt.Sprintf("%s-%d", name, g.nextCard), Name: name}
}

// Apply is the single entry point for player actions. Every guard is
// checked before any mutation: a rejected action leaves the state exactly
// as it was and returns one of the sentinel errors above.
func (g *Game) Apply(playerID string, action Action) error {
	switch action.Type {
	case ActionPlayCard:
		return g.applyPlayCard(playerID, action.CardIndex)
	case ActionBuyCard:
		return g.applyBuyCard(playerID, action.CardName)
	case ActionEndPhase:
		return g.applyEndPhase(playerID)
	case ActionSpyChoice:
		return g.applySpyChoice(playerID, action.Discard)
	default:
		return ErrInvalidAction
	}
}

func (g *Game) applyPlayCard(playerID string, idx int) error {
	if g.Phase != PhaseAction {
		return ErrWrongPhase
	}
	if g.playerIndex(playerID) != g.Current {
		return ErrNotYourTurn
	}
	if g.SpyPending != nil {
		return ErrPendingChoice
	}
	p := g.Players[g.Current]
	if idx < 0 || idx >= len(p.Hand) {
		return ErrInvalidCardIndex
	}
	def, ok := g.catalog.Get(p.Hand[idx].Name)
	if !ok {
		return ErrInvalidCardIndex
	}
	if def.Type != TypeAction || g.Turn.Actions <= 0 {
		return ErrCardNotPlayable
	}

	card := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	p.InPlay = append(p.InPlay, card)

	g.Turn.Actions--
	g.Turn.Actions += def.Effect.Actions
	g.Turn.Buys += def.Effect.Buys
	g.Turn.Coins += def.Effect.Coins
	if def.Effect.Cards > 0 {
		g.drawCards(p, def.Effect.Cards)
	}

	g.logf("%s played %s", p.Name, card.Name)

	switch def.Effect.Special {
	case SpecialSpy:
		g.startSpy(g.Current)
	case SpecialNone:
	}

	g.maybeSkipActionPhase()
	return nil
}

func (g *Game) applyBuyCard(playerID, cardName string) error {
	if g.Phase != PhaseBuy {
		return ErrWrongPhase
	}
	if g.playerIndex(playerID) != g.Current {
		return ErrNotYourTurn
	}
	if g.Turn.Buys <= 0 {
		return ErrNotEnoughBuys
	}
	def, ok := g.catalog.Get(cardName)
	if !ok {
		return ErrUnknownCard
	}
	if g.Supply[cardName] <= 0 {
		return ErrSupplyExhausted
	}
	if g.Turn.Coins < def.Cost {
		return ErrNotEnoughCoins
	}

	p := g.Players[g.Current]
	g.Supply[cardName]--
	p.Discard = append(p.Discard, g.newCard(cardName))
	g.Turn.Coins -= def.Cost
	g.Turn.Buys--

	g.logf("%s bought %s", p.Name, cardName)
	return nil
}

func (g *Game) applyEndPhase(playerID string) error {
	switch g.Phase {
	case PhaseAction:
		return g.endActionPhase(playerID)
	case PhaseBuy:
		return g.endBuyPhase(playerID)
	default:
		return ErrWrongPhase
	}
}

func (g *Game) endActionPhase(playerID string) error {
	if g.playerIndex(playerID) != g.Current {
		return ErrNotYourTurn
	}
	if g.SpyPending != nil {
		return ErrPendingChoice
	}
	g.Phase = PhaseBuy
	g.playAllTreasures(g.Players[g.Current])
	return nil
}

func (g *Game) endBuyPhase(playerID string) error {
	if g.playerIndex(playerID) != g.Current {
		return ErrNotYourTurn
	}
	g.cleanup()
	return nil
}

// playAllTreasures moves every treasure in p's hand to in-play and sums
// their coin bonuses. Runs exactly once per entry into the buy phase.
func (g *Game) playAllTreasures(p *Player) {
	var kept []Card
	played := 0
	for _, c := range p.Hand {
		if def, ok := g.catalog.Get(c.Name); ok && def.Type == TypeTreasure {
			p.InPlay = append(p.InPlay, c)
			g.Turn.Coins += def.Effect.Coins
			played++
			continue
		}
		kept = append(kept, c)
	}
	p.Hand = kept
	if played > 0 {
		g.logf("%s played %d treasure(s)", p.Name, played)
	}
}

// maybeSkipActionPhase advances straight to the buy phase when the current
// player has no playable action cards. Suppressed while a spy choice is
// pending; re-evaluated once the choice queue empties.
func (g *Game) maybeSkipActionPhase() {
	if g.Phase != PhaseAction || g.SpyPending != nil {
		return
	}
	p := g.Players[g.Current]
	if g.hasPlayableActions(p) {
		return
	}
	g.Phase = PhaseBuy
	g.playAllTreasures(p)
}

func (g *Game) hasPlayableActions(p *Player) bool {
	if g.Turn.Actions <= 0 {
		return false
	}
	for _, c := range p.Hand {
		if def, ok := g.catalog.Get(c.Name); ok && def.Type == TypeAction {
			return true
		}
	}
	return false
}

// cleanup is the buy → action edge: discard hand and in-play, redraw 5,
// then either end the game or pass the turn to the next seat.
func (g *Game) cleanup() {
	p := g.Players[g.Current]
	p.Discard = append(p.Discard, p.Hand...)
	p.Discard = append(p.Discard, p.InPlay...)
	p.Hand = nil
	p.InPlay = nil
	g.drawCards(p, 5)

	if g.IsGameOver() {
		g.finishGame()
		return
	}

	g.Current = (g.Current + 1) % len(g.Players)
	g.Phase = PhaseAction
	g.Turn = newTurnState()
	g.logf("%s's turn", g.Players[g.Current].Name)
	g.maybeSkipActionPhase()
}

// GetPlayer finds a player by ID.
func (g *Game) GetPlayer(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// playerIndex returns the seat of the player with the given ID, or -1.
func (g *Game) playerIndex(id string) int {
	for i, p := range g.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// SetConnected flags a player's transport liveness. Purely informational:
// a disconnected player's turn still waits for them.
func (g *Game) SetConnected(playerID string, connected bool) {
	if p := g.GetPlayer(playerID); p != nil {
		p.Connected = connected
	}
}

func (g *Game) logf(format string, args ...any) {
	g.Log = append(g.Log, fmt.Sprintf(format, args...))
}
