package app

import (
	"math/rand"
	"sync"
	"time"

	"virusgame/internal/domain"
)

// Service contains the game use-cases. It serializes access per game: turn
// actions hold the table's write lock for the whole call, status holds the read lock.
type Service struct {
	games      *Registry
	maxPlayers int

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(games *Registry, rng *rand.Rand, maxPlayers int) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{games: games, rng: rng, maxPlayers: maxPlayers}
}

// Games exposes the registry, e.g. to run its janitor.
func (s *Service) Games() *Registry { return s.games }

// gameRand derives an independent source per game; rand.Rand is not safe for concurrent use.
func (s *Service) gameRand() *rand.Rand {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return rand.New(rand.NewSource(s.rng.Int63()))
}

// CreateGame registers a new forming game guarded by adminPassword. An empty id gets a generated one.
func (s *Service) CreateGame(id, adminPassword string) (string, []Event, error) {
	g := domain.NewGame(adminPassword,
		domain.WithRand(s.gameRand()),
		domain.WithMaxPlayers(s.maxPlayers),
	)
	t, err := s.games.Create(id, g)
	if err != nil {
		return "", nil, err
	}
	return t.ID(), []Event{{
		Kind:    EventGameCreated,
		Payload: GameCreatedPayload{GameID: t.ID()},
	}}, nil
}

// Join seats a player. userID, when known, is the runtime account to notify on their turn.
func (s *Service) Join(id string, auth domain.Auth, userID string) ([]Event, error) {
	t, err := s.games.Lookup(id)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.game.Join(auth); err != nil {
		return s.failed(t, err)
	}
	if userID != "" {
		t.owners[auth.PlayerID] = userID
	}
	return []Event{{
		Kind: EventPlayerJoined,
		Payload: PlayerJoinedPayload{
			GameID:   t.id,
			PlayerID: auth.PlayerID,
			Seat:     len(t.game.Players()),
		},
	}}, nil
}

// Start begins the game; only the admin password is accepted.
func (s *Service) Start(id, password string) ([]Event, error) {
	t, err := s.games.Lookup(id)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.game.Start(password); err != nil {
		return s.failed(t, err)
	}
	first := t.game.CurrentPlayer()
	return []Event{
		{
			Kind: EventGameStarted,
			Payload: GameStartedPayload{
				GameID:      t.id,
				Players:     t.game.Players(),
				FirstPlayer: first,
			},
		},
		s.turnEvent(t, ""),
	}, nil
}

// Status returns a snapshot of the game as seen by auth. It never fails on bad credentials.
func (s *Service) Status(id string, auth domain.Auth) (domain.Status, error) {
	t, err := s.games.Lookup(id)
	if err != nil {
		return domain.Status{}, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.game.Status(auth), nil
}

// DiscardOrPass discards card, or passes when card is domain.NoCard.
func (s *Service) DiscardOrPass(id string, auth domain.Auth, card domain.Card) ([]Event, error) {
	return s.play(id, auth, func(g *domain.Game) error { return g.DiscardOrPass(auth, card) })
}

// UseTreatment plays a table-wide treatment.
func (s *Service) UseTreatment(id string, auth domain.Auth, card domain.Card) ([]Event, error) {
	return s.play(id, auth, func(g *domain.Game) error { return g.UseTreatment(auth, card) })
}

// ClaimOrgan plays an organ from hand onto the player's own body.
func (s *Service) ClaimOrgan(id string, auth domain.Auth, card domain.Card) ([]Event, error) {
	return s.play(id, auth, func(g *domain.Game) error { return g.ClaimOrgan(auth, card) })
}

// TransplantAll swaps every organ with target; card must be the total transplant.
func (s *Service) TransplantAll(id string, auth domain.Auth, card domain.Card, target string) ([]Event, error) {
	if card != domain.TreatmentTotalTransplant {
		return nil, domain.Violationf("'%s' is not '%s'", card.Title(), domain.TreatmentTotalTransplant.Title())
	}
	return s.play(id, auth, func(g *domain.Game) error { return g.TransplantAll(auth, target) })
}

// ApplyToSelf applies a medicine to one of the player's organs.
func (s *Service) ApplyToSelf(id string, auth domain.Auth, medicine, organ domain.Card) ([]Event, error) {
	return s.play(id, auth, func(g *domain.Game) error { return g.ApplyToSelf(auth, medicine, organ) })
}

// ApplyToOpponent plays card on target's organ.
func (s *Service) ApplyToOpponent(id string, auth domain.Auth, card domain.Card, target string, organ domain.Card) ([]Event, error) {
	return s.play(id, auth, func(g *domain.Game) error { return g.ApplyToOpponent(auth, card, target, organ) })
}

// PlayOnPlayer routes a card dropped on a player.
func (s *Service) PlayOnPlayer(id string, auth domain.Auth, card domain.Card, target string) ([]Event, error) {
	return s.play(id, auth, func(g *domain.Game) error { return g.PlayOnPlayer(auth, card, target) })
}

// PlayOnCard routes a card dropped on a player's organ.
func (s *Service) PlayOnCard(id string, auth domain.Auth, card domain.Card, target string, organ domain.Card) ([]Event, error) {
	return s.play(id, auth, func(g *domain.Game) error { return g.PlayOnCard(auth, card, target, organ) })
}

// CardHelp explains a card by name.
func (s *Service) CardHelp(name string) (domain.CatalogEntry, error) {
	c, err := domain.ParseCard(name)
	if err != nil {
		return domain.CatalogEntry{}, err
	}
	for _, e := range domain.Catalog() {
		if e.Card == c {
			return e, nil
		}
	}
	return domain.CatalogEntry{}, domain.Validationf("'%s' does not look like a card", name)
}

// Catalog lists every card of the deck.
func (s *Service) Catalog() []domain.CatalogEntry {
	return domain.Catalog()
}

// play runs a turn action under the table's write lock and reports what happened.
func (s *Service) play(id string, auth domain.Auth, move func(*domain.Game) error) ([]Event, error) {
	t, err := s.games.Lookup(id)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := move(t.game); err != nil {
		return s.failed(t, err)
	}
	if t.game.Ended() {
		return []Event{{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{GameID: t.id, Winner: t.game.Winner()},
		}}, nil
	}
	return []Event{s.turnEvent(t, auth.PlayerID)}, nil
}

// turnEvent announces the current player, addressed to their runtime account when known.
func (s *Service) turnEvent(t *Table, actor string) Event {
	next := t.game.CurrentPlayer()
	ev := Event{
		Kind: EventTurnPassed,
		Payload: TurnPassedPayload{
			GameID:     t.id,
			PlayerID:   actor,
			NextPlayer: next,
			Phase:      t.game.Phase(),
		},
	}
	if uid, ok := t.owners[next]; ok {
		ev.Recipients = []string{uid}
	}
	return ev
}

// failed turns an engine error into the events it warrants.
func (s *Service) failed(t *Table, err error) ([]Event, error) {
	if !domain.IsInternal(err) {
		return nil, err
	}
	return []Event{{
		Kind:    EventInvariantViolated,
		Payload: InvariantViolatedPayload{GameID: t.id, Message: err.Error()},
	}}, err
}
