package bot

import (
	"fmt"

	"virusgame/internal/domain"
)

// MoveKind names the game operation a Move maps to.
type MoveKind string

const (
	MovePass          MoveKind = "pass"
	MoveDiscard       MoveKind = "discard"
	MoveTreatment     MoveKind = "treatment"
	MoveClaim         MoveKind = "claim"
	MoveTransplantAll MoveKind = "transplant_all"
	MoveApplySelf     MoveKind = "apply_self"
	MoveApplyOpponent MoveKind = "apply_opponent"
)

// Move represents the decision made by the AI.
type Move struct {
	Kind   MoveKind
	Card   domain.Card
	Target string      // player, for transplants and opponent moves
	Organ  domain.Card // organ the card lands on
}

func (m Move) String() string {
	switch m.Kind {
	case MovePass:
		return "pass"
	case MoveApplySelf:
		return fmt.Sprintf("%s %v on %v", m.Kind, m.Card, m.Organ)
	case MoveApplyOpponent:
		return fmt.Sprintf("%s %v on %s's %v", m.Kind, m.Card, m.Target, m.Organ)
	case MoveTransplantAll:
		return fmt.Sprintf("%s with %s", m.Kind, m.Target)
	default:
		return fmt.Sprintf("%s %v", m.Kind, m.Card)
	}
}

// Brain is the interface that all bot strategies must implement. Rank
// returns candidate moves for player me, best first; it only sees what the
// player would see.
type Brain interface {
	Rank(view domain.Status, me string) []Move
}

// Level selects a Brain implementation.
type Level string

const (
	LevelRandom Level = "random"
	LevelGood   Level = "good"
)
