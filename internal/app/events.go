package app

import "virusgame/internal/domain"

// EventKind identifies emitted events for runtime dispatch.
type EventKind string

const (
	EventGameCreated       EventKind = "game_created"
	EventPlayerJoined      EventKind = "player_joined"
	EventGameStarted       EventKind = "game_started"
	EventTurnPassed        EventKind = "turn_passed"
	EventGameEnded         EventKind = "game_ended"
	EventInvariantViolated EventKind = "invariant_violation"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // runtime user IDs; empty means broadcast
}

type GameCreatedPayload struct {
	GameID string
}

type PlayerJoinedPayload struct {
	GameID   string
	PlayerID string
	Seat     int
}

type GameStartedPayload struct {
	GameID      string
	Players     []string
	FirstPlayer string
}

type TurnPassedPayload struct {
	GameID     string
	PlayerID   string
	NextPlayer string
	Phase      domain.Phase
}

type GameEndedPayload struct {
	GameID string
	Winner string
}

type InvariantViolatedPayload struct {
	GameID  string
	Message string
}
