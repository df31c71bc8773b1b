package bot

import (
	"errors"

	"virusgame/internal/app"
	"virusgame/internal/domain"
)

// ErrNoMove means none of the brain's moves was accepted.
var ErrNoMove = errors.New("bot found no legal move")

// Agent represents an autonomous bot player.
type Agent struct {
	Auth     domain.Auth
	Strategy Brain
}

// Play takes one turn in game id. Moves are tried best first; rejected
// moves fall through to the next candidate, any other error stops the turn.
func (a *Agent) Play(svc *app.Service, id string) (Move, []app.Event, error) {
	view, err := svc.Status(id, a.Auth)
	if err != nil {
		return Move{}, nil, err
	}
	for _, m := range a.Strategy.Rank(view, a.Auth.PlayerID) {
		evs, err := Execute(svc, id, a.Auth, m)
		if errors.Is(err, domain.ErrRuleViolation) || errors.Is(err, domain.ErrNotFound) {
			continue
		}
		return m, evs, err
	}
	return Move{}, nil, ErrNoMove
}

// Execute performs m through the service.
func Execute(svc *app.Service, id string, auth domain.Auth, m Move) ([]app.Event, error) {
	switch m.Kind {
	case MovePass:
		return svc.DiscardOrPass(id, auth, domain.NoCard)
	case MoveDiscard:
		return svc.DiscardOrPass(id, auth, m.Card)
	case MoveTreatment:
		return svc.UseTreatment(id, auth, m.Card)
	case MoveClaim:
		return svc.ClaimOrgan(id, auth, m.Card)
	case MoveTransplantAll:
		return svc.TransplantAll(id, auth, m.Card, m.Target)
	case MoveApplySelf:
		return svc.ApplyToSelf(id, auth, m.Card, m.Organ)
	case MoveApplyOpponent:
		return svc.ApplyToOpponent(id, auth, m.Card, m.Target, m.Organ)
	default:
		return nil, domain.Violationf("unknown move %q", m.Kind)
	}
}
