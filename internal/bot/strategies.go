package bot

import (
	"math/rand"
	"sync"

	"virusgame/internal/domain"
)

// RandomBot tries every candidate in random order.
type RandomBot struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (b *RandomBot) Rank(view domain.Status, me string) []Move {
	moves := Candidates(view, me)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
	return moves
}
