package domain

// HandSize is the number of cards a player holds outside special effects.
const HandSize = 3

// Auth identifies a player and carries the password chosen at join.
type Auth struct {
	PlayerID string `json:"player"`
	Password string `json:"password"`
}

// Is reports whether both identity and password match.
func (a Auth) Is(other Auth) bool {
	return a.PlayerID == other.PlayerID && a.Password == other.Password
}

// Player holds the hand and organ stacks of one participant.
type Player struct {
	auth   Auth
	hand   []Card
	stacks []Stack
}

func newPlayer(auth Auth, hand []Card) *Player {
	return &Player{auth: auth, hand: append([]Card(nil), hand...)}
}

// Name returns the player identity.
func (p *Player) Name() string { return p.auth.PlayerID }

// Hand returns a copy of the cards in hand.
func (p *Player) Hand() []Card { return append([]Card(nil), p.hand...) }

// Stacks returns a copy of the organ stacks.
func (p *Player) Stacks() []Stack { return cloneStacks(p.stacks) }

// Holds reports whether card is in the player's hand.
func (p *Player) Holds(card Card) bool {
	for _, c := range p.hand {
		if c == card {
			return true
		}
	}
	return false
}

// Organs lists the organ identities the player owns.
func (p *Player) Organs() []Card {
	out := make([]Card, 0, len(p.stacks))
	for _, s := range p.stacks {
		out = append(out, s.Organ())
	}
	return out
}

// HasOrgan reports whether a stack for organ exists.
func (p *Player) HasOrgan(organ Card) bool {
	_, err := p.stackIndex(organ)
	return err == nil
}

// AddOrgan starts a new stack with card.
func (p *Player) AddOrgan(card Card) error {
	if !card.IsOrgan() {
		return Violationf("'%s' is not an organ", card.Title())
	}
	p.stacks = append(p.stacks, Stack{card})
	return nil
}

// SetStacks replaces the whole stack collection.
func (p *Player) SetStacks(stacks []Stack) {
	p.stacks = stacks
}

// Stack returns the stack whose organ is organ.
func (p *Player) Stack(organ Card) (Stack, error) {
	i, err := p.stackIndex(organ)
	if err != nil {
		return nil, err
	}
	return p.stacks[i].clone(), nil
}

func (p *Player) stackIndex(organ Card) (int, error) {
	if !organ.IsOrgan() {
		return -1, Violationf("the target card must be an organ")
	}
	for i, s := range p.stacks {
		if s.Organ() == organ {
			return i, nil
		}
	}
	return -1, NotFoundf("'%s' has no '%s'", p.Name(), organ.Title())
}

func (p *Player) removeStack(i int) Stack {
	s := p.stacks[i]
	p.stacks = append(p.stacks[:i:i], p.stacks[i+1:]...)
	return s
}

// RemoveFromHand takes one copy of card out of the hand.
func (p *Player) RemoveFromHand(card Card) error {
	for i, c := range p.hand {
		if c == card {
			p.hand = append(p.hand[:i:i], p.hand[i+1:]...)
			return nil
		}
	}
	return Violationf("'%s' does not hold '%s'", p.Name(), card.Title())
}

func (p *Player) cardCount() int {
	n := len(p.hand)
	for _, s := range p.stacks {
		n += len(s)
	}
	return n
}

func (p *Player) soundStacks() int {
	n := 0
	for _, s := range p.stacks {
		if s.Sound() {
			n++
		}
	}
	return n
}

// PlayerView is what viewer may see of a player.
type PlayerView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Hand          []Card  `json:"hand"`
	Stacks        []Stack `json:"organ_stacks"`
	IsCurrentTurn bool    `json:"is_current_turn"`
}

// View projects the player for viewer. Only the owner sees the real hand.
func (p *Player) View(viewer Auth, current bool) PlayerView {
	hand := p.Hand()
	if !p.auth.Is(viewer) {
		for i := range hand {
			hand[i] = CardHidden
		}
	}
	return PlayerView{
		ID:            p.auth.PlayerID,
		Name:          p.Name(),
		Hand:          hand,
		Stacks:        p.Stacks(),
		IsCurrentTurn: current,
	}
}
