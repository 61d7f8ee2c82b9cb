package engine_test

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"spies/internal/engine"
)

func testConfig(seed uint64) engine.GameConfig {
	return engine.GameConfig{
		Catalog: engine.BaseCatalog(),
		Rand:    rand.New(rand.NewPCG(seed, seed)),
	}
}

func newTestGame(n int) *engine.Game {
	seats := make([]engine.Seat, n)
	for i := range seats {
		seats[i] = engine.Seat{
			ID:   string(rune('A' + i)),
			Name: "Player" + string(rune('1'+i)),
		}
	}
	return engine.NewGame("test", seats, testConfig(1))
}

func cards(names ...string) []engine.Card {
	out := make([]engine.Card, len(names))
	for i, name := range names {
		out[i] = engine.Card{ID: fmt.Sprintf("%s-t%d", name, i), Name: name}
	}
	return out
}

// actionTurn rewinds the game to a fresh action phase for player 0 with
// the given hand.
func actionTurn(g *engine.Game, hand ...string) *engine.Player {
	p := g.Players[0]
	p.Hand = cards(hand...)
	p.InPlay = nil
	g.Phase = engine.PhaseAction
	g.Current = 0
	g.Turn = engine.TurnState{Actions: 1, Buys: 1}
	g.SpyPending = nil
	return p
}

func snapshot(t *testing.T, g *engine.Game) string {
	t.Helper()
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	return string(data)
}

func TestNewGame(t *testing.T) {
	g := newTestGame(2)

	if len(g.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(g.Players))
	}
	for _, p := range g.Players {
		if p.CardCount() != 10 {
			t.Errorf("player %s should own 10 cards, got %d", p.Name, p.CardCount())
		}
		if !p.Connected {
			t.Errorf("player %s should start connected", p.Name)
		}
	}
	// Starting decks hold no action cards, so the first turn auto-skips
	// straight into the buy phase with treasures played.
	if g.Phase != engine.PhaseBuy {
		t.Fatalf("expected buy phase after auto-skip, got %s", g.Phase)
	}
	if g.Turn.Coins < 2 {
		t.Errorf("expected at least 2 coins from auto-played coppers, got %d", g.Turn.Coins)
	}
	if len(g.Log) == 0 || g.Log[0] != "Game started with 2 players" {
		t.Errorf("unexpected opening log: %v", g.Log)
	}
}

func TestInitialSupply(t *testing.T) {
	tests := []struct {
		players int
		copper  int
		victory int
	}{
		{2, 46, 8},
		{3, 39, 12},
		{4, 32, 12},
	}
	for _, tt := range tests {
		g := newTestGame(tt.players)
		if g.Supply["Copper"] != tt.copper {
			t.Errorf("%d players: Copper supply = %d, want %d", tt.players, g.Supply["Copper"], tt.copper)
		}
		for _, pile := range []string{"Estate", "Duchy", "Province"} {
			if g.Supply[pile] != tt.victory {
				t.Errorf("%d players: %s supply = %d, want %d", tt.players, pile, g.Supply[pile], tt.victory)
			}
		}
		for _, pile := range []string{"Village", "Smithy", "Market", "Spy"} {
			if g.Supply[pile] != 10 {
				t.Errorf("%d players: %s supply = %d, want 10", tt.players, pile, g.Supply[pile])
			}
		}
	}
}

func TestDeterministicShuffle(t *testing.T) {
	seats := []engine.Seat{{ID: "A", Name: "P1"}, {ID: "B", Name: "P2"}}
	g1 := engine.NewGame("m", seats, testConfig(42))
	g2 := engine.NewGame("m", seats, testConfig(42))

	s1 := snapshot(t, g1)
	s2 := snapshot(t, g2)
	if s1 != s2 {
		t.Error("same seed should produce identical match states")
	}
}

func TestPlayCardEffects(t *testing.T) {
	g := newTestGame(2)
	p := actionTurn(g, "Village")
	p.Deck = cards("Copper", "Copper")

	if err := g.Apply("A", engine.Action{Type: engine.ActionPlayCard, CardIndex: 0}); err != nil {
		t.Fatalf("play Village: %v", err)
	}
	// Village: +1 card, +2 actions; base cost is one action.
	if g.Turn.Actions != 2 {
		t.Errorf("actions = %d, want 2", g.Turn.Actions)
	}
	if len(p.Hand) != 1 {
		t.Errorf("hand size = %d, want 1 drawn card", len(p.Hand))
	}
	if len(p.InPlay) != 1 || p.InPlay[0].Name != "Village" {
		t.Errorf("Village should be in play, got %v", p.InPlay)
	}
	want := "Player1 played Village"
	if g.Log[len(g.Log)-1] != want {
		t.Errorf("log = %q, want %q", g.Log[len(g.Log)-1], want)
	}
}

func TestSmithyDrawsThroughReshuffle(t *testing.T) {
	g := newTestGame(2)
	p := actionTurn(g, "Smithy")
	p.Deck = cards("Copper")
	p.Discard = cards("Estate", "Estate", "Estate")

	if err := g.Apply("A", engine.Action{Type: engine.ActionPlayCard, CardIndex: 0}); err != nil {
		t.Fatalf("play Smithy: %v", err)
	}
	if len(p.Hand) != 3 {
		t.Errorf("hand size = %d, want 3", len(p.Hand))
	}
	if len(p.Discard) != 0 {
		t.Errorf("discard should have been reshuffled into deck, %d left", len(p.Discard))
	}
}

func TestShortDrawIsNotAnError(t *testing.T) {
	g := newTestGame(2)
	p := actionTurn(g, "Smithy")
	p.Deck = cards("Copper")
	p.Discard = nil

	if err := g.Apply("A", engine.Action{Type: engine.ActionPlayCard, CardIndex: 0}); err != nil {
		t.Fatalf("play Smithy with thin deck: %v", err)
	}
	if len(p.Hand) != 1 {
		t.Errorf("hand size = %d, want 1 (short draw)", len(p.Hand))
	}
}

func TestMarketBonusOrder(t *testing.T) {
	g := newTestGame(2)
	p := actionTurn(g, "Market")
	p.Deck = cards("Copper")

	if err := g.Apply("A", engine.Action{Type: engine.ActionPlayCard, CardIndex: 0}); err != nil {
		t.Fatalf("play Market: %v", err)
	}
	if g.Turn.Actions != 1 || g.Turn.Buys != 2 || g.Turn.Coins != 1 {
		t.Errorf("turn = %+v, want actions 1, buys 2, coins 1", g.Turn)
	}
	if len(p.Hand) != 1 {
		t.Errorf("hand size = %d, want 1", len(p.Hand))
	}
}

func TestPlayCardGuards(t *testing.T) {
	g := newTestGame(2)

	// Wrong phase: the new game already auto-skipped to buy.
	if err := g.Apply("A", engine.Action{Type: engine.ActionPlayCard, CardIndex: 0}); err != engine.ErrWrongPhase {
		t.Errorf("play in buy phase: got %v, want ErrWrongPhase", err)
	}

	actionTurn(g, "Village")

	if err := g.Apply("B", engine.Action{Type: engine.ActionPlayCard, CardIndex: 0}); err != engine.ErrNotYourTurn {
		t.Errorf("play out of turn: got %v, want ErrNotYourTurn", err)
	}
	if err := g.Apply("A", engine.Action{Type: engine.ActionPlayCard, CardIndex: -1}); err != engine.ErrInvalidCardIndex {
		t.Errorf("negative index: got %v, want ErrInvalidCardIndex", err)
	}
	if err := g.Apply("A", engine.Action{Type: engine.ActionPlayCard, CardIndex: 5}); err != engine.ErrInvalidCardIndex {
		t.Errorf("index out of range: got %v, want ErrInvalidCardIndex", err)
	}

	p := actionTurn(g, "Copper", "Village")
	if err := g.Apply("A", engine.Action{Type: engine.ActionPlayCard, CardIndex: 0}); err != engine.ErrCardNotPlayable {
		t.Errorf("play treasure: got %v, want ErrCardNotPlayable", err)
	}
	g.Turn.Actions = 0
	if err := g.Apply("A", engine.Action{Type: engine.ActionPlayCard, CardIndex: 1}); err != engine.ErrCardNotPlayable {
		t.Errorf("play with no actions: got %v, want ErrCardNotPlayable", err)
	}
	if len(p.Hand) != 2 {
		t.Errorf("rejections must not move cards, hand = %v", p.Hand)
	}
}

func TestRejectionLeavesStateUnchanged(t *testing.T) {
	g := newTestGame(2)
	actionTurn(g, "Village")
	before := snapshot(t, g)

	rejected := []engine.Action{
		{Type: engine.ActionPlayCard, CardIndex: 99},
		{Type: engine.ActionBuyCard, CardName: "Gold"},
		{Type: engine.ActionSpyChoice, Discard: true},
		{Type: "nonsense"},
	}
	for _, action := range rejected {
		if err := g.Apply("A", action); err == nil {
			t.Fatalf("action %+v should have been rejected", action)
		}
		if after := snapshot(t, g); after != before {
			t.Errorf("action %+v mutated state on rejection", action)
		}
	}
}

func TestBuyCard(t *testing.T) {
	g := newTestGame(2)
	p := g.Players[0]
	g.Turn = engine.TurnState{Actions: 0, Buys: 1, Coins: 3}
	before := p.CardCount()
	silver := g.Supply["Silver"]

	if err := g.Apply("A", engine.Action{Type: engine.ActionBuyCard, CardName: "Silver"}); err != nil {
		t.Fatalf("buy Silver: %v", err)
	}
	if p.CardCount() != before+1 {
		t.Errorf("card count = %d, want %d", p.CardCount(), before+1)
	}
	if p.Discard[len(p.Discard)-1].Name != "Silver" {
		t.Error("bought card should go to discard, not hand")
	}
	if g.Supply["Silver"] != silver-1 {
		t.Errorf("Silver supply = %d, want %d", g.Supply["Silver"], silver-1)
	}
	if g.Turn.Coins != 0 || g.Turn.Buys != 0 {
		t.Errorf("turn = %+v, want coins 0, buys 0", g.Turn)
	}
	want := "Player1 bought Silver"
	if g.Log[len(g.Log)-1] != want {
		t.Errorf("log = %q, want %q", g.Log[len(g.Log)-1], want)
	}
}

func TestBuyCardGuards(t *testing.T) {
	g := newTestGame(2)

	g.Phase = engine.PhaseAction
	if err := g.Apply("A", engine.Action{Type: engine.ActionBuyCard, CardName: "Copper"}); err != engine.ErrWrongPhase {
		t.Errorf("buy in action phase: got %v, want ErrWrongPhase", err)
	}

	g.Phase = engine.PhaseBuy
	if err := g.Apply("B", engine.Action{Type: engine.ActionBuyCard, CardName: "Copper"}); err != engine.ErrNotYourTurn {
		t.Errorf("buy out of turn: got %v, want ErrNotYourTurn", err)
	}

	g.Turn = engine.TurnState{Buys: 0, Coins: 10}
	if err := g.Apply("A", engine.Action{Type: engine.ActionBuyCard, CardName: "Copper"}); err != engine.ErrNotEnoughBuys {
		t.Errorf("buy with no buys: got %v, want ErrNotEnoughBuys", err)
	}

	g.Turn = engine.TurnState{Buys: 1, Coins: 10}
	if err := g.Apply("A", engine.Action{Type: engine.ActionBuyCard, CardName: "Moat"}); err != engine.ErrUnknownCard {
		t.Errorf("buy unknown card: got %v, want ErrUnknownCard", err)
	}

	g.Supply["Smithy"] = 0
	if err := g.Apply("A", engine.Action{Type: engine.ActionBuyCard, CardName: "Smithy"}); err != engine.ErrSupplyExhausted {
		t.Errorf("buy from empty pile: got %v, want ErrSupplyExhausted", err)
	}

	// Two coins against a cost-three card: rejected, pile untouched.
	g.Turn = engine.TurnState{Buys: 1, Coins: 2}
	silver := g.Supply["Silver"]
	if err := g.Apply("A", engine.Action{Type: engine.ActionBuyCard, CardName: "Silver"}); err != engine.ErrNotEnoughCoins {
		t.Errorf("buy too expensive: got %v, want ErrNotEnoughCoins", err)
	}
	if g.Supply["Silver"] != silver {
		t.Errorf("Silver supply changed on rejected buy: %d != %d", g.Supply["Silver"], silver)
	}
}

func TestConservation(t *testing.T) {
	g := newTestGame(2)

	counts := func() []int {
		out := make([]int, len(g.Players))
		for i, p := range g.Players {
			out[i] = p.CardCount()
		}
		return out
	}
	start := counts()

	// Player 1 buys a Copper and ends the turn.
	g.Turn.Buys = 1
	if err := g.Apply("A", engine.Action{Type: engine.ActionBuyCard, CardName: "Copper"}); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if err := g.Apply("A", engine.Action{Type: engine.ActionEndPhase}); err != nil {
		t.Fatalf("end buy phase: %v", err)
	}

	after := counts()
	if after[0] != start[0]+1 {
		t.Errorf("buyer's card count = %d, want %d", after[0], start[0]+1)
	}
	if after[1] != start[1] {
		t.Errorf("other player's card count = %d, want %d", after[1], start[1])
	}

	// The turn passed; player 2 auto-skipped into their buy phase.
	if g.Current != 1 {
		t.Errorf("current player = %d, want 1", g.Current)
	}
	if g.Phase != engine.PhaseBuy {
		t.Errorf("phase = %s, want buy after auto-skip", g.Phase)
	}
}

func TestCleanupRedrawsFive(t *testing.T) {
	g := newTestGame(2)
	p := g.Players[0]

	if err := g.Apply("A", engine.Action{Type: engine.ActionEndPhase}); err != nil {
		t.Fatalf("end buy phase: %v", err)
	}
	if len(p.Hand) != 5 {
		t.Errorf("hand after cleanup = %d, want 5", len(p.Hand))
	}
	if len(p.InPlay) != 0 {
		t.Errorf("in-play after cleanup = %d, want 0", len(p.InPlay))
	}
	found := false
	for _, line := range g.Log {
		if line == "Player2's turn" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected turn log for Player2, got %v", g.Log)
	}
}

func TestEndPhaseGuards(t *testing.T) {
	g := newTestGame(2)
	if err := g.Apply("B", engine.Action{Type: engine.ActionEndPhase}); err != engine.ErrNotYourTurn {
		t.Errorf("end phase out of turn: got %v, want ErrNotYourTurn", err)
	}
}

func TestExplicitEndActionPhasePlaysTreasures(t *testing.T) {
	g := newTestGame(2)
	p := actionTurn(g, "Village", "Copper", "Silver")

	if err := g.Apply("A", engine.Action{Type: engine.ActionEndPhase}); err != nil {
		t.Fatalf("end action phase: %v", err)
	}
	if g.Phase != engine.PhaseBuy {
		t.Fatalf("phase = %s, want buy", g.Phase)
	}
	if g.Turn.Coins != 3 {
		t.Errorf("coins = %d, want 3 from Copper+Silver", g.Turn.Coins)
	}
	if len(p.Hand) != 1 || p.Hand[0].Name != "Village" {
		t.Errorf("non-treasures should stay in hand, got %v", p.Hand)
	}
	want := "Player1 played 2 treasure(s)"
	if g.Log[len(g.Log)-1] != want {
		t.Errorf("log = %q, want %q", g.Log[len(g.Log)-1], want)
	}
}

func TestGameOverOnProvinceExhaustion(t *testing.T) {
	g := newTestGame(2)

	g.Supply["Province"] = 0
	// Terminal conditions are only checked at cleanup.
	if g.Phase != engine.PhaseBuy {
		t.Fatalf("phase = %s, want buy", g.Phase)
	}
	if err := g.Apply("A", engine.Action{Type: engine.ActionEndPhase}); err != nil {
		t.Fatalf("end buy phase: %v", err)
	}

	if g.Phase != engine.PhaseEnded {
		t.Fatalf("phase = %s, want ended", g.Phase)
	}
	if len(g.Winners) == 0 {
		t.Error("winners should be set")
	}
	// One VP line per player.
	vpLines := 0
	for _, line := range g.Log {
		if strings.HasSuffix(line, " VP") {
			vpLines++
		}
	}
	if vpLines != 2 {
		t.Errorf("VP log lines = %d, want 2", vpLines)
	}

	// No further mutation once ended.
	if err := g.Apply("A", engine.Action{Type: engine.ActionPlayCard, CardIndex: 0}); err != engine.ErrWrongPhase {
		t.Errorf("play after end: got %v, want ErrWrongPhase", err)
	}
	if err := g.Apply("A", engine.Action{Type: engine.ActionEndPhase}); err != engine.ErrWrongPhase {
		t.Errorf("end phase after end: got %v, want ErrWrongPhase", err)
	}
}

func TestGameOverOnThreeEmptyPiles(t *testing.T) {
	g := newTestGame(2)
	g.Supply["Village"] = 0
	g.Supply["Smithy"] = 0

	if err := g.Apply("A", engine.Action{Type: engine.ActionEndPhase}); err != nil {
		t.Fatalf("end buy phase: %v", err)
	}
	if g.Phase == engine.PhaseEnded {
		t.Fatal("two empty piles should not end the game")
	}

	g.Supply["Market"] = 0
	g.Current = 0
	g.Phase = engine.PhaseBuy
	if err := g.Apply("A", engine.Action{Type: engine.ActionEndPhase}); err != nil {
		t.Fatalf("end buy phase: %v", err)
	}
	if g.Phase != engine.PhaseEnded {
		t.Errorf("phase = %s, want ended with three empty piles", g.Phase)
	}
}

func TestScoringAndTies(t *testing.T) {
	g := newTestGame(2)

	// Starting decks are identical: 3 Estates each, a joint win.
	g.Supply["Province"] = 0
	if err := g.Apply("A", engine.Action{Type: engine.ActionEndPhase}); err != nil {
		t.Fatalf("end buy phase: %v", err)
	}
	if len(g.Winners) != 2 {
		t.Errorf("winners = %v, want both players", g.Winners)
	}
	for _, s := range g.Scores() {
		if s.Score != 3 {
			t.Errorf("%s score = %d, want 3", s.PlayerName, s.Score)
		}
	}
}

func TestSingleWinner(t *testing.T) {
	g := newTestGame(2)
	g.Players[1].Discard = append(g.Players[1].Discard, cards("Duchy")...)

	g.Supply["Province"] = 0
	if err := g.Apply("A", engine.Action{Type: engine.ActionEndPhase}); err != nil {
		t.Fatalf("end buy phase: %v", err)
	}
	if len(g.Winners) != 1 || g.Winners[0] != "Player2" {
		t.Errorf("winners = %v, want [Player2]", g.Winners)
	}
	want := "Game over! Winner: Player2"
	found := false
	for _, line := range g.Log {
		if line == want {
			found = true
		}
	}
	if !found {
		t.Errorf("log missing %q", want)
	}
}
