package domain

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	alice = Auth{PlayerID: "alice", Password: "a"}
	bob   = Auth{PlayerID: "bob", Password: "b"}
	carol = Auth{PlayerID: "carol", Password: "c"}
)

const adminPassword = "admin"

// seat describes the hand and stacks a player should hold.
type seat struct {
	hand   []Card
	stacks []Stack
}

// newTable returns a started game with the given players, the first of them to play.
func newTable(t *testing.T, players ...Auth) *Game {
	t.Helper()
	g := NewGame(adminPassword, WithRand(rand.New(rand.NewSource(7))))
	for _, p := range players {
		require.NoError(t, g.Join(p))
	}
	require.NoError(t, g.Start(adminPassword))
	g.current = 0
	return g
}

// rig returns every card to the deck, then hands out exactly the cards in seats.
// Players missing from seats end up with nothing.
func rig(t *testing.T, g *Game, seats map[string]seat) {
	t.Helper()
	g.deck = append(g.deck, g.discard...)
	g.discard = nil
	for _, p := range g.players {
		g.deck = append(g.deck, p.hand...)
		for _, s := range p.stacks {
			g.deck = append(g.deck, s...)
		}
		p.hand, p.stacks = nil, nil
	}

	take := func(c Card) Card {
		i := slices.Index(g.deck, c)
		require.GreaterOrEqualf(t, i, 0, "no %v left in the deck", c)
		g.deck = slices.Delete(g.deck, i, i+1)
		return c
	}
	for name, s := range seats {
		p, err := g.Player(name)
		require.NoError(t, err)
		for _, c := range s.hand {
			p.hand = append(p.hand, take(c))
		}
		for _, st := range s.stacks {
			var stack Stack
			for _, c := range st {
				stack = append(stack, take(c))
			}
			p.stacks = append(p.stacks, stack)
		}
	}
	require.Equal(t, DeckSize, g.CardCount())
}

func player(t *testing.T, g *Game, name string) *Player {
	t.Helper()
	p, err := g.Player(name)
	require.NoError(t, err)
	return p
}

func requireCode(t *testing.T, err error, code Code) {
	t.Helper()
	require.Error(t, err)
	require.Equalf(t, code, CodeOf(err), "error: %v", err)
}
