package engine

// SpyPending suspends normal turn progression while the acting player
// decides, one target at a time, whether each revealed top card stays or
// goes to its owner's discard pile.
type SpyPending struct {
	TargetID  string   `json:"target_player_id"`
	Revealed  Card     `json:"revealed_card"`
	Remaining []string `json:"remaining_player_ids,omitempty"`
}

// startSpy builds the target queue (acting player first, then seat order
// wrapping around) and reveals the first target with a revealable deck.
func (g *Game) startSpy(actingIndex int) {
	queue := make([]string, 0, len(g.Players))
	for i := range g.Players {
		queue = append(queue, g.Players[(actingIndex+i)%len(g.Players)].ID)
	}
	g.advanceSpy(queue)
}

// advanceSpy reveals the next queue entry's top card, reshuffling an empty
// deck from the discard pile first and skipping players with nothing to
// reveal. Leaves SpyPending nil once the queue is exhausted.
func (g *Game) advanceSpy(queue []string) {
	for len(queue) > 0 {
		target := g.GetPlayer(queue[0])
		queue = queue[1:]

		if len(target.Deck) == 0 && len(target.Discard) > 0 {
			target.Deck = target.Discard
			target.Discard = nil
			shuffleCards(g.rng, target.Deck)
		}
		if len(target.Deck) == 0 {
			continue
		}

		revealed := target.Deck[len(target.Deck)-1]
		g.SpyPending = &SpyPending{
			TargetID:  target.ID,
			Revealed:  revealed,
			Remaining: queue,
		}
		g.logf("%s reveals %s", target.Name, revealed.Name)
		return
	}
	g.SpyPending = nil
}

// applySpyChoice resolves the current reveal. Only the acting player (the
// one whose turn it is) decides, for every target including themselves.
func (g *Game) applySpyChoice(playerID string, discard bool) error {
	if g.SpyPending == nil {
		return ErrNoPendingChoice
	}
	if g.playerIndex(playerID) != g.Current {
		return ErrNotYourChoice
	}

	pending := g.SpyPending
	target := g.GetPlayer(pending.TargetID)
	acting := g.Players[g.Current]

	if discard {
		top := len(target.Deck) - 1
		card := target.Deck[top]
		target.Deck = target.Deck[:top]
		target.Discard = append(target.Discard, card)
		g.logf("%s chose to discard %s's %s", acting.Name, target.Name, card.Name)
	} else {
		g.logf("%s chose to keep %s's card on top", acting.Name, target.Name)
	}

	g.SpyPending = nil
	g.advanceSpy(pending.Remaining)
	g.maybeSkipActionPhase()
	return nil
}
