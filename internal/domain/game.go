package domain

import (
	"fmt"
	"math/rand"
	"time"
)

// Phase represents the lifecycle stage of a game.
type Phase string

const (
	// PhaseForming accepts joins; no turn pointer yet.
	PhaseForming Phase = "forming"
	// PhaseInProgress has a fixed set of players taking turns.
	PhaseInProgress Phase = "in_progress"
	// PhaseFinished is reached once a player wins.
	PhaseFinished Phase = "finished"
)

// WinningStacks is the number of sound organ stacks that wins the game.
const WinningStacks = 4

// LogEntry is one line of the public game log.
type LogEntry struct {
	IsError bool   `json:"is_error"`
	Text    string `json:"text"`
}

// Game is the authoritative state of one match. It is not safe for concurrent use;
// callers serialize access.
type Game struct {
	password   string
	players    []*Player
	deck       []Card
	discard    []Card
	log        []LogEntry
	current    int // -1 until started
	finished   bool
	winner     string
	maxPlayers int
	rng        *rand.Rand
}

// Option configures a Game.
type Option func(*Game)

// WithRand injects the random source used for shuffles and turn order.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithMaxPlayers caps the number of joins. Zero means only the deck limits joins.
func WithMaxPlayers(n int) Option {
	return func(g *Game) { g.maxPlayers = n }
}

// NewGame creates a forming game guarded by the admin password.
func NewGame(password string, opts ...Option) *Game {
	g := &Game{
		password: password,
		current:  -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.deck = NewDeck()
	ShuffleDeck(g.rng, g.deck)
	return g
}

// Phase returns the lifecycle stage.
func (g *Game) Phase() Phase {
	switch {
	case g.finished:
		return PhaseFinished
	case g.current >= 0:
		return PhaseInProgress
	default:
		return PhaseForming
	}
}

// Ended reports whether a player has won.
func (g *Game) Ended() bool { return g.finished }

// Winner returns the winning player, empty while nobody has won.
func (g *Game) Winner() string { return g.winner }

// CurrentPlayer returns the player whose turn it is, empty before start.
func (g *Game) CurrentPlayer() string {
	if g.current < 0 {
		return ""
	}
	return g.players[g.current].Name()
}

// Players returns player names in join order.
func (g *Game) Players() []string {
	out := make([]string, len(g.players))
	for i, p := range g.players {
		out[i] = p.Name()
	}
	return out
}

// Player returns a player by name.
func (g *Game) Player(name string) (*Player, error) {
	for _, p := range g.players {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, NotFoundf("player '%s' does not exist", name)
}

// Log returns a copy of the game log.
func (g *Game) Log() []LogEntry { return append([]LogEntry(nil), g.log...) }

// DeckSize returns the number of cards left to draw before a reshuffle.
func (g *Game) DeckSize() int { return len(g.deck) }

// DiscardSize returns the number of cards in the discard pile.
func (g *Game) DiscardSize() int { return len(g.discard) }

// CardCount totals every card in the game; it equals DeckSize while the engine is sound.
func (g *Game) CardCount() int {
	n := len(g.deck) + len(g.discard)
	for _, p := range g.players {
		n += p.cardCount()
	}
	return n
}

func (g *Game) logf(format string, args ...any) {
	g.log = append(g.log, LogEntry{Text: fmt.Sprintf(format, args...)})
}

func (g *Game) logErrorf(format string, args ...any) {
	g.log = append(g.log, LogEntry{IsError: true, Text: fmt.Sprintf(format, args...)})
}

// checkInvariants verifies no card was created or lost.
func (g *Game) checkInvariants() error {
	if total := g.CardCount(); total != DeckSize {
		g.logErrorf("card count is %d, expected %d", total, DeckSize)
		return Internalf("invariant violated: %d cards in play, expected %d", total, DeckSize)
	}
	return nil
}

// Join adds a player with a fresh hand. Only allowed while forming.
func (g *Game) Join(auth Auth) error {
	if g.Phase() != PhaseForming {
		return GameStatef("the game has already started, you cannot join")
	}
	if auth.PlayerID == "" {
		return Violationf("a player name is required")
	}
	if _, err := g.Player(auth.PlayerID); err == nil {
		return Violationf("player '%s' is already at the table", auth.PlayerID)
	}
	if g.maxPlayers > 0 && len(g.players) >= g.maxPlayers {
		return Violationf("the table is full (%d players)", g.maxPlayers)
	}
	if g.available() < HandSize {
		return Violationf("there are not enough cards left to deal a new hand")
	}
	hand, err := g.drawHand()
	if err != nil {
		return err
	}
	g.players = append(g.players, newPlayer(auth, hand))
	g.logf("'%s' joins the game!", auth.PlayerID)
	return g.checkInvariants()
}

// Start picks a random first player. Only the admin may start a game.
func (g *Game) Start(password string) error {
	if g.password != password {
		return Authf("only the administrator can do that")
	}
	if g.Phase() != PhaseForming {
		return GameStatef("the game has already started, it cannot start again")
	}
	if len(g.players) == 0 {
		return Violationf("there are no players yet")
	}
	g.current = g.rng.Intn(len(g.players))
	g.logf("The game begins, '%s' plays first!", g.CurrentPlayer())
	return g.checkInvariants()
}

// IsAdmin reports whether password is the admin password.
func (g *Game) IsAdmin(password string) bool { return g.password == password }

// asCurrentPlayer authenticates auth and checks it may act now.
func (g *Game) asCurrentPlayer(auth Auth) (*Player, error) {
	p, err := g.Player(auth.PlayerID)
	if err != nil {
		return nil, err
	}
	if !p.auth.Is(auth) {
		return nil, Authf("the player does not exist or the password is wrong")
	}
	switch g.Phase() {
	case PhaseForming:
		return nil, GameStatef("the game has not started yet")
	case PhaseFinished:
		return nil, GameStatef("the game is over")
	}
	if g.players[g.current] != p {
		return nil, Violationf("it is not '%s' turn", auth.PlayerID)
	}
	return p, nil
}

// endTurn finishes a turn-advancing action: either someone wins, or the actor
// draws a card and the turn passes on.
func (g *Game) endTurn(actor *Player) error {
	if w := g.findWinner(actor); w != nil {
		g.finished = true
		g.winner = w.Name()
		g.logf("'%s' has %d healthy organs and wins the game!", w.Name(), w.soundStacks())
		return g.checkInvariants()
	}
	c, err := g.draw()
	if err != nil {
		g.logErrorf("%v", err)
		return err
	}
	actor.hand = append(actor.hand, c)
	g.logf("'%s' draws a card", actor.Name())
	g.current = (g.current + 1) % len(g.players)
	g.logf("It is '%s' turn", g.CurrentPlayer())
	return g.checkInvariants()
}

// findWinner checks the actor first, then everyone else in join order.
func (g *Game) findWinner(actor *Player) *Player {
	if actor.soundStacks() >= WinningStacks {
		return actor
	}
	for _, p := range g.players {
		if p != actor && p.soundStacks() >= WinningStacks {
			return p
		}
	}
	return nil
}

// Status is a consistent snapshot of the game for one viewer.
type Status struct {
	Phase   Phase        `json:"phase"`
	Ended   bool         `json:"ended"`
	Winner  string       `json:"winner,omitempty"`
	Players []PlayerView `json:"players"`
	Log     []LogEntry   `json:"log"`
}

// Status renders the game as seen by viewer. Unknown viewers see every hand hidden.
func (g *Game) Status(viewer Auth) Status {
	st := Status{
		Phase:   g.Phase(),
		Ended:   g.finished,
		Winner:  g.winner,
		Players: make([]PlayerView, 0, len(g.players)),
		Log:     g.Log(),
	}
	for i, p := range g.players {
		st.Players = append(st.Players, p.View(viewer, g.current == i && !g.finished))
	}
	return st
}
