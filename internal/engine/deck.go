package engine

import "math/rand/v2"

// shuffleCards permutes cards in place (Fisher-Yates, inclusive bound at
// each step). All shuffling goes through the match's injected rng so tests
// can seed it.
func shuffleCards(rng *rand.Rand, cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// drawCards moves up to n cards from the top of p's deck into p's hand.
// When the deck runs out mid-draw the discard pile is reshuffled into the
// deck before continuing. Returns the number actually drawn; drawing fewer
// than requested is not an error.
func (g *Game) drawCards(p *Player, n int) int {
	drawn := 0
	for i := 0; i < n; i++ {
		if len(p.Deck) == 0 {
			if len(p.Discard) == 0 {
				break
			}
			p.Deck = p.Discard
			p.Discard = nil
			shuffleCards(g.rng, p.Deck)
		}
		top := len(p.Deck) - 1
		p.Hand = append(p.Hand, p.Deck[top])
		p.Deck = p.Deck[:top]
		drawn++
	}
	return drawn
}
