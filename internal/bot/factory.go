package bot

import (
	"fmt"
	"math/rand"
	"time"
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level Level, rng *rand.Rand) (Brain, error) {
	switch level {
	case LevelRandom:
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return &RandomBot{rng: rng}, nil
	case LevelGood:
		return &GoodBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %q", level)
	}
}
