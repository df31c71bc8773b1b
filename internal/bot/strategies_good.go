package bot

import (
	"sort"

	"virusgame/internal/domain"
)

// GoodBot ranks moves with a fixed heuristic: win if possible, heal, grow,
// then hurt whoever is closest to winning.
type GoodBot struct{}

func (b *GoodBot) Rank(view domain.Status, me string) []Move {
	self, others, ok := seatView(view, me)
	if !ok {
		return nil
	}
	opponents := make(map[string]domain.PlayerView, len(others))
	for _, o := range others {
		opponents[o.ID] = o
	}

	moves := Candidates(view, me)
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = score(m, self, opponents)
	}
	idx := make([]int, len(moves))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return scores[idx[i]] > scores[idx[j]] })

	ranked := make([]Move, len(moves))
	for i, k := range idx {
		ranked[i] = moves[k]
	}
	return ranked
}

func score(m Move, self domain.PlayerView, opponents map[string]domain.PlayerView) int {
	mine := soundCount(self)
	switch m.Kind {
	case MoveClaim:
		if mine+1 >= domain.WinningStacks {
			return 1000
		}
		return 50
	case MoveApplySelf:
		s, _ := owns(self, m.Organ)
		if s.Infected() {
			if mine+1 >= domain.WinningStacks {
				return 1000
			}
			return 80
		}
		return 20
	case MoveApplyOpponent:
		return scoreAgainst(m, self, opponents[m.Target])
	case MoveTransplantAll:
		theirs := soundCount(opponents[m.Target])
		if theirs >= domain.WinningStacks {
			return 1000
		}
		if theirs > mine {
			return 45 + 10*(theirs-mine)
		}
		return 1
	case MoveTreatment:
		if m.Card == domain.TreatmentInfectAll {
			viruses := 0
			for _, s := range self.Stacks {
				if s.Infected() {
					viruses++
				}
			}
			return 10 * viruses
		}
		return 15
	case MoveDiscard:
		return discardScore(m.Card)
	default:
		return 0
	}
}

func scoreAgainst(m Move, self, target domain.PlayerView) int {
	s, _ := owns(target, m.Organ)
	threat := 10 * soundCount(target)
	switch {
	case m.Card.IsVirus():
		switch {
		case s.Infected():
			return 40 + threat
		case len(s) > 1:
			return 25 + threat
		default:
			return 30 + threat
		}
	case m.Card == domain.TreatmentOrganTheft:
		if s.Sound() && soundCount(self)+1 >= domain.WinningStacks {
			return 1000
		}
		if s.Sound() {
			return 60
		}
		return 5
	case m.Card.IsOrgan():
		given, _ := owns(self, m.Card)
		if given.Infected() && s.Sound() {
			if soundCount(self)+1 >= domain.WinningStacks {
				return 1000
			}
			return 55
		}
		return 2
	default:
		return 0
	}
}

// discardScore prefers dropping the cards that are least useful to keep.
func discardScore(c domain.Card) int {
	switch {
	case c.IsTreatment():
		return 4
	case c.IsVirus():
		return 3
	case c.IsMedicine():
		return 2
	default:
		return 1
	}
}
