package domain

// DiscardOrPass drops card on the discard pile, or passes when card is NoCard.
// Passing is only allowed with fewer than HandSize cards in hand.
func (g *Game) DiscardOrPass(auth Auth, card Card) error {
	p, err := g.asCurrentPlayer(auth)
	if err != nil {
		return err
	}
	if card == NoCard {
		if len(p.hand) >= HandSize {
			return Violationf("you have %d cards in hand, play or discard one of them", len(p.hand))
		}
		g.logf("'%s' passes", p.Name())
		return g.endTurn(p)
	}
	if !p.Holds(card) {
		return Violationf("you do not hold '%s'", card.Title())
	}
	g.discardFromHand(p, card)
	g.logf("'%s' discards '%s'", p.Name(), card.Title())
	return g.endTurn(p)
}

func (g *Game) discardFromHand(p *Player, card Card) {
	// callers check Holds first
	_ = p.RemoveFromHand(card)
	g.toDiscard(card)
}

// UseTreatment plays one of the table-wide treatments: all-discard or infect-all.
func (g *Game) UseTreatment(auth Auth, card Card) error {
	p, err := g.asCurrentPlayer(auth)
	if err != nil {
		return err
	}
	if card != TreatmentAllDiscard && card != TreatmentInfectAll {
		return Violationf("only '%s' and '%s' can be used here", TreatmentAllDiscard.Title(), TreatmentInfectAll.Title())
	}
	if !p.Holds(card) {
		return Violationf("you do not hold '%s'", card.Title())
	}
	g.discardFromHand(p, card)
	if card == TreatmentAllDiscard {
		for _, other := range g.players {
			if other == p {
				continue
			}
			g.toDiscard(other.hand...)
			other.hand = nil
		}
		g.logf("Every player except '%s' loses their hand!", p.Name())
	} else {
		moved := g.spreadInfection(p)
		g.logf("'%s' spreads %d virus(es) with '%s'!", p.Name(), moved, card.Title())
	}
	return g.endTurn(p)
}

// ClaimOrgan plays an organ from hand as a new stack of the actor.
func (g *Game) ClaimOrgan(auth Auth, card Card) error {
	p, err := g.asCurrentPlayer(auth)
	if err != nil {
		return err
	}
	return g.claimOrgan(p, card)
}

func (g *Game) claimOrgan(p *Player, card Card) error {
	if !card.IsOrgan() {
		return Violationf("'%s' is not an organ", card.Title())
	}
	if !p.Holds(card) {
		return Violationf("you do not hold '%s'", card.Title())
	}
	if p.HasOrgan(card) {
		return Violationf("you already have a '%s'", card.Title())
	}
	_ = p.RemoveFromHand(card)
	if err := p.AddOrgan(card); err != nil {
		return err
	}
	g.logf("'%s' adds a '%s'", p.Name(), card.Title())
	return g.endTurn(p)
}

// TransplantAll swaps every stack of the actor with target's, consuming the total transplant card.
func (g *Game) TransplantAll(auth Auth, target string) error {
	return g.PlayOnPlayer(auth, TreatmentTotalTransplant, target)
}

// PlayOnPlayer resolves a card dropped on a player: an organ on oneself is
// claimed, a total transplant swaps organs with the target.
func (g *Game) PlayOnPlayer(auth Auth, card Card, target string) error {
	p, err := g.asCurrentPlayer(auth)
	if err != nil {
		return err
	}
	if !card.IsOrgan() && card != TreatmentTotalTransplant {
		return Violationf("'%s' cannot be played on a player", card.Title())
	}
	t, err := g.Player(target)
	if err != nil {
		return err
	}
	if card.IsOrgan() {
		if t != p {
			return Violationf("you cannot give an organ to another player")
		}
		return g.claimOrgan(p, card)
	}
	if t == p {
		return Violationf("choose another player to transplant with")
	}
	if !p.Holds(card) {
		return Violationf("you do not hold '%s'", card.Title())
	}
	g.discardFromHand(p, card)
	mine := p.stacks
	p.SetStacks(t.stacks)
	t.SetStacks(mine)
	g.logf("'%s' performs a total transplant with '%s'!", p.Name(), t.Name())
	return g.endTurn(p)
}

// ApplyToSelf applies a medicine to one of the actor's organs. A compatible
// virus is cured; otherwise the medicine protects the organ and two of them
// make it immune.
func (g *Game) ApplyToSelf(auth Auth, medicine, organ Card) error {
	p, err := g.asCurrentPlayer(auth)
	if err != nil {
		return err
	}
	return g.applyToSelf(p, medicine, organ)
}

func (g *Game) applyToSelf(p *Player, medicine, organ Card) error {
	if !medicine.IsMedicine() {
		return Violationf("you can only apply medicines to yourself")
	}
	if !organ.IsOrgan() {
		return Violationf("the target card must be an organ")
	}
	if !organ.Admits(medicine) {
		return Violationf("'%s' does not work on a '%s'", medicine.Title(), organ.Title())
	}
	if !p.Holds(medicine) {
		return Violationf("you do not hold '%s'", medicine.Title())
	}
	i, err := p.stackIndex(organ)
	if err != nil {
		return err
	}
	s := p.stacks[i]
	for j, c := range s {
		if c.IsVirus() && (organ.IsWildcard() || c.Admits(medicine)) {
			p.stacks[i] = s.without(j)
			g.discardFromHand(p, medicine)
			g.toDiscard(c)
			g.logf("'%s' applies '%s' and cures the '%s'", p.Name(), medicine.Title(), c.Title())
			return g.endTurn(p)
		}
	}
	if s.Infected() {
		return Violationf("ouch! this medicine does not cure that virus")
	}
	if s.Immune() {
		return Violationf("the organ is already immune, it takes no more medicine")
	}
	_ = p.RemoveFromHand(medicine)
	p.stacks[i] = append(s.clone(), medicine)
	g.logf("'%s' applies '%s' to their '%s'", p.Name(), medicine.Title(), organ.Title())
	if p.stacks[i].Immune() {
		g.logf("'%s' has immunized their '%s'!", p.Name(), organ.Title())
	}
	return g.endTurn(p)
}

// ApplyToOpponent plays card on target's organ: a virus infects, cancels a
// medicine or destroys an infected organ; an organ theft steals the stack; one
// of the actor's own organs swaps stacks while holding a single transplant.
// An organ dropped on oneself is claimed.
func (g *Game) ApplyToOpponent(auth Auth, card Card, target string, organ Card) error {
	p, err := g.asCurrentPlayer(auth)
	if err != nil {
		return err
	}
	return g.applyToOpponent(p, card, target, organ)
}

func (g *Game) applyToOpponent(p *Player, card Card, target string, organ Card) error {
	if !organ.IsOrgan() {
		return Violationf("the target card must always be an organ")
	}
	t, err := g.Player(target)
	if err != nil {
		return err
	}
	if t == p {
		if card.IsOrgan() {
			return g.claimOrgan(p, card)
		}
		return Violationf("on your own organs you can only apply medicines")
	}
	switch {
	case card.IsVirus():
		return g.infect(p, t, card, organ)
	case card == TreatmentOrganTheft:
		return g.steal(p, t, organ)
	case card.IsOrgan():
		return g.swapOrgan(p, t, card, organ)
	default:
		return Violationf("on an opponent's organ you can only play a virus, an organ theft, or one of your organs while holding '%s'", TreatmentSingleTransplant.Title())
	}
}

// PlayOnCard routes a card dropped on a player's organ: medicines and organs
// to oneself, everything else against an opponent.
func (g *Game) PlayOnCard(auth Auth, card Card, target string, organ Card) error {
	p, err := g.asCurrentPlayer(auth)
	if err != nil {
		return err
	}
	if target == p.Name() && !card.IsOrgan() {
		return g.applyToSelf(p, card, organ)
	}
	return g.applyToOpponent(p, card, target, organ)
}

func (g *Game) infect(p, t *Player, virus, organ Card) error {
	if !p.Holds(virus) {
		return Violationf("you do not hold '%s'", virus.Title())
	}
	i, how, err := g.checkVirus(t, virus, organ)
	if err != nil {
		return err
	}
	_ = p.RemoveFromHand(virus)
	g.placeVirus(t, i, virus, how)
	return g.endTurn(p)
}

func (g *Game) steal(p, t *Player, organ Card) error {
	if !p.Holds(TreatmentOrganTheft) {
		return Violationf("you do not hold '%s'", TreatmentOrganTheft.Title())
	}
	i, err := t.stackIndex(organ)
	if err != nil {
		return err
	}
	if t.stacks[i].Immune() {
		return Violationf("you cannot steal an immune organ")
	}
	if p.HasOrgan(organ) {
		return Violationf("you already have a '%s', you cannot steal it", organ.Title())
	}
	g.discardFromHand(p, TreatmentOrganTheft)
	p.stacks = append(p.stacks, t.removeStack(i))
	g.logf("'%s' steals the '%s' from '%s'", p.Name(), organ.Title(), t.Name())
	return g.endTurn(p)
}

func (g *Game) swapOrgan(p, t *Player, mine, theirs Card) error {
	if !p.Holds(TreatmentSingleTransplant) {
		return Violationf("to swap an organ you need '%s' in your hand", TreatmentSingleTransplant.Title())
	}
	if mine != theirs {
		if t.HasOrgan(mine) {
			return Violationf("'%s' already has a '%s'", t.Name(), mine.Title())
		}
		if p.HasOrgan(theirs) {
			return Violationf("you already have a '%s'", theirs.Title())
		}
	}
	ia, err := p.stackIndex(mine)
	if err != nil {
		return Violationf("you do not have a '%s'", mine.Title())
	}
	ib, err := t.stackIndex(theirs)
	if err != nil {
		return err
	}
	if p.stacks[ia].Immune() || t.stacks[ib].Immune() {
		return Violationf("you cannot transplant an immune organ")
	}
	g.discardFromHand(p, TreatmentSingleTransplant)
	given := p.removeStack(ia)
	taken := t.removeStack(ib)
	p.stacks = append(p.stacks, taken)
	t.stacks = append(t.stacks, given)
	g.logf("'%s' swaps their '%s' for the '%s' of '%s'", p.Name(), mine.Title(), theirs.Title(), t.Name())
	return g.endTurn(p)
}

type placement int

const (
	placeInfect placement = iota
	placeCancel
	placeDestroy
)

// checkVirus validates a virus landing on target's organ without touching state.
func (g *Game) checkVirus(t *Player, virus, organ Card) (int, placement, error) {
	i, err := t.stackIndex(organ)
	if err != nil {
		return -1, 0, err
	}
	if !organ.Admits(virus) {
		return -1, 0, Violationf("a '%s' does not accept '%s'", organ.Title(), virus.Title())
	}
	s := t.stacks[i]
	if s.Immune() {
		return -1, 0, Violationf("you cannot put a virus on an immune organ")
	}
	for _, c := range s[1:] {
		if c.IsMedicine() {
			return i, placeCancel, nil
		}
		if c.IsVirus() {
			return i, placeDestroy, nil
		}
	}
	return i, placeInfect, nil
}

// placeVirus applies a placement validated by checkVirus. The virus is already
// out of its previous location.
func (g *Game) placeVirus(t *Player, i int, virus Card, how placement) {
	s := t.stacks[i]
	organ := s.Organ()
	switch how {
	case placeCancel:
		for j, c := range s {
			if c.IsMedicine() {
				t.stacks[i] = s.without(j)
				g.toDiscard(c, virus)
				g.logf("'%s' cancels '%s' on the '%s' of '%s'", virus.Title(), c.Title(), organ.Title(), t.Name())
				return
			}
		}
	case placeDestroy:
		lost := t.removeStack(i)
		g.toDiscard(lost...)
		g.toDiscard(virus)
		g.logf("'%s' loses their '%s'", t.Name(), organ.Title())
	default:
		t.stacks[i] = append(s.clone(), virus)
		g.logf("The '%s' of '%s' is infected by '%s'", organ.Title(), t.Name(), virus.Title())
	}
}
