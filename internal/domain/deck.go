package domain

import (
	"math/rand"
)

// ShuffleDeck shuffles cards in place with rng.
func ShuffleDeck(rng *rand.Rand, cards []Card) {
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
}

// draw takes the top card, reshuffling the discard pile into the deck when it runs out.
func (g *Game) draw() (Card, error) {
	if len(g.deck) == 0 {
		if len(g.discard) == 0 {
			return NoCard, Internalf("no cards left in deck nor discard pile")
		}
		g.deck = append(g.deck, g.discard...)
		g.discard = g.discard[:0]
		ShuffleDeck(g.rng, g.deck)
	}
	c := g.deck[0]
	g.deck = g.deck[1:]
	return c, nil
}

func (g *Game) drawHand() ([]Card, error) {
	hand := make([]Card, 0, HandSize)
	for i := 0; i < HandSize; i++ {
		c, err := g.draw()
		if err != nil {
			return nil, err
		}
		hand = append(hand, c)
	}
	return hand, nil
}

func (g *Game) toDiscard(cards ...Card) {
	g.discard = append(g.discard, cards...)
}

// available is the number of cards a draw can still reach.
func (g *Game) available() int {
	return len(g.deck) + len(g.discard)
}
