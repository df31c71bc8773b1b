package bot

import "virusgame/internal/domain"

// seatView splits a status into the bot's own view and its opponents'.
func seatView(view domain.Status, me string) (domain.PlayerView, []domain.PlayerView, bool) {
	var (
		self   domain.PlayerView
		found  bool
		others []domain.PlayerView
	)
	for _, p := range view.Players {
		if p.ID == me {
			self, found = p, true
			continue
		}
		others = append(others, p)
	}
	return self, others, found
}

func owns(p domain.PlayerView, organ domain.Card) (domain.Stack, bool) {
	for _, s := range p.Stacks {
		if s.Organ() == organ {
			return s, true
		}
	}
	return nil, false
}

func soundCount(p domain.PlayerView) int {
	n := 0
	for _, s := range p.Stacks {
		if s.Sound() {
			n++
		}
	}
	return n
}

// Candidates lists the moves worth trying for me from what the view shows.
// They follow the visible rules closely, so most are legal, but the engine
// still has the final word. Discards always close the list.
func Candidates(view domain.Status, me string) []Move {
	self, others, ok := seatView(view, me)
	if !ok {
		return nil
	}

	var moves []Move
	for _, c := range self.Hand {
		switch {
		case c.IsOrgan():
			if _, has := owns(self, c); !has {
				moves = append(moves, Move{Kind: MoveClaim, Card: c})
			}
		case c.IsMedicine():
			for _, s := range self.Stacks {
				if s.Organ().Admits(c) && !s.Immune() {
					moves = append(moves, Move{Kind: MoveApplySelf, Card: c, Organ: s.Organ()})
				}
			}
		case c.IsVirus():
			for _, o := range others {
				for _, s := range o.Stacks {
					if s.Organ().Admits(c) && !s.Immune() {
						moves = append(moves, Move{Kind: MoveApplyOpponent, Card: c, Target: o.ID, Organ: s.Organ()})
					}
				}
			}
		case c == domain.TreatmentOrganTheft:
			for _, o := range others {
				for _, s := range o.Stacks {
					if _, has := owns(self, s.Organ()); !has && !s.Immune() {
						moves = append(moves, Move{Kind: MoveApplyOpponent, Card: c, Target: o.ID, Organ: s.Organ()})
					}
				}
			}
		case c == domain.TreatmentSingleTransplant:
			moves = append(moves, swaps(self, others)...)
		case c == domain.TreatmentTotalTransplant:
			for _, o := range others {
				moves = append(moves, Move{Kind: MoveTransplantAll, Card: c, Target: o.ID})
			}
		case c == domain.TreatmentAllDiscard, c == domain.TreatmentInfectAll:
			moves = append(moves, Move{Kind: MoveTreatment, Card: c})
		}
	}

	for _, c := range self.Hand {
		moves = append(moves, Move{Kind: MoveDiscard, Card: c})
	}
	if len(self.Hand) < domain.HandSize {
		moves = append(moves, Move{Kind: MovePass})
	}
	return moves
}

// swaps lists single transplants: one of my organs dropped on one of theirs.
func swaps(self domain.PlayerView, others []domain.PlayerView) []Move {
	var moves []Move
	for _, mine := range self.Stacks {
		if mine.Immune() {
			continue
		}
		for _, o := range others {
			for _, theirs := range o.Stacks {
				if theirs.Immune() {
					continue
				}
				a, b := mine.Organ(), theirs.Organ()
				if a != b {
					if _, has := owns(o, a); has {
						continue
					}
					if _, has := owns(self, b); has {
						continue
					}
				}
				moves = append(moves, Move{Kind: MoveApplyOpponent, Card: a, Target: o.ID, Organ: b})
			}
		}
	}
	return moves
}
