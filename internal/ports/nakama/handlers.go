package nakama

import (
	"context"

	"virusgame/internal/app"
	"virusgame/internal/domain"
)

func (g *Gateway) create(_ context.Context, req request) (response, []app.Event, error) {
	id, evs, err := g.svc.CreateGame(req.GameID, req.AdminPassword)
	if err != nil {
		return response{}, evs, err
	}
	return response{GameID: id}, evs, nil
}

func (g *Gateway) join(_ context.Context, req request) (response, []app.Event, error) {
	evs, err := g.svc.Join(req.GameID, req.Auth, req.userID)
	return response{GameID: req.GameID}, evs, err
}

func (g *Gateway) start(_ context.Context, req request) (response, []app.Event, error) {
	evs, err := g.svc.Start(req.GameID, req.AdminPassword)
	return response{GameID: req.GameID}, evs, err
}

func (g *Gateway) status(_ context.Context, req request) (response, []app.Event, error) {
	st, err := g.svc.Status(req.GameID, req.Auth)
	if err != nil {
		return response{}, nil, err
	}
	return response{GameID: req.GameID, Status: &st}, nil, nil
}

// discard passes when no card is given.
func (g *Gateway) discard(_ context.Context, req request) (response, []app.Event, error) {
	card := domain.NoCard
	if req.Card != "" {
		c, err := domain.ParseCard(req.Card)
		if err != nil {
			return response{}, nil, err
		}
		card = c
	}
	evs, err := g.svc.DiscardOrPass(req.GameID, req.Auth, card)
	return response{}, evs, err
}

func (g *Gateway) use(_ context.Context, req request) (response, []app.Event, error) {
	card, err := domain.ParseCard(req.Card)
	if err != nil {
		return response{}, nil, err
	}
	evs, err := g.svc.UseTreatment(req.GameID, req.Auth, card)
	return response{}, evs, err
}

func (g *Gateway) claim(_ context.Context, req request) (response, []app.Event, error) {
	card, err := domain.ParseCard(req.Card)
	if err != nil {
		return response{}, nil, err
	}
	evs, err := g.svc.ClaimOrgan(req.GameID, req.Auth, card)
	return response{}, evs, err
}

func (g *Gateway) transplantAll(_ context.Context, req request) (response, []app.Event, error) {
	card, err := domain.ParseCard(req.Card)
	if err != nil {
		return response{}, nil, err
	}
	evs, err := g.svc.TransplantAll(req.GameID, req.Auth, card, req.Target)
	return response{}, evs, err
}

func (g *Gateway) applySelf(_ context.Context, req request) (response, []app.Event, error) {
	card, organ, err := parsePair(req.Card, req.Organ)
	if err != nil {
		return response{}, nil, err
	}
	evs, err := g.svc.ApplyToSelf(req.GameID, req.Auth, card, organ)
	return response{}, evs, err
}

func (g *Gateway) applyOpponent(_ context.Context, req request) (response, []app.Event, error) {
	card, organ, err := parsePair(req.Card, req.Organ)
	if err != nil {
		return response{}, nil, err
	}
	evs, err := g.svc.ApplyToOpponent(req.GameID, req.Auth, card, req.Target, organ)
	return response{}, evs, err
}

func (g *Gateway) cardHelp(_ context.Context, req request) (response, []app.Event, error) {
	e, err := g.svc.CardHelp(req.Card)
	if err != nil {
		return response{}, nil, err
	}
	return response{Card: &e, Message: e.Help}, nil, nil
}

func (g *Gateway) catalog(_ context.Context, _ request) (response, []app.Event, error) {
	return response{Catalog: g.svc.Catalog()}, nil, nil
}

// play resolves a drag and drop: a card (or nothing) from the caller dropped
// on an action, a player or one of a player's organs.
func (g *Gateway) play(_ context.Context, req request) (response, []app.Event, error) {
	if req.SrcPlayer != "" && req.SrcPlayer != req.PlayerID {
		return response{}, nil, domain.Violationf("only moves with your own cards are supported")
	}

	if req.SrcKind == "" {
		if req.DstKind != kindAction {
			return response{}, nil, unsupported(req)
		}
		switch req.Dst {
		case actionPass:
			evs, err := g.svc.DiscardOrPass(req.GameID, req.Auth, domain.NoCard)
			return response{}, evs, err
		case actionUse:
			return response{Message: "Drop special cards like '" + domain.TreatmentAllDiscard.Title() +
				"' or '" + domain.TreatmentInfectAll.Title() + "' here"}, nil, nil
		case actionHelp:
			return response{Message: "Drop a card here to learn what it does and how to play it."}, nil, nil
		}
		return response{}, nil, unsupported(req)
	}
	if req.SrcKind != kindCard {
		return response{}, nil, unsupported(req)
	}

	card, err := domain.ParseCard(req.Src)
	if err != nil {
		return response{}, nil, err
	}
	switch req.DstKind {
	case kindAction:
		switch req.Dst {
		case actionPass:
			evs, err := g.svc.DiscardOrPass(req.GameID, req.Auth, card)
			return response{}, evs, err
		case actionUse:
			evs, err := g.svc.UseTreatment(req.GameID, req.Auth, card)
			return response{}, evs, err
		case actionHelp:
			e, err := g.svc.CardHelp(req.Src)
			if err != nil {
				return response{}, nil, err
			}
			return response{Card: &e, Message: e.Help}, nil, nil
		}
	case kindPlayer:
		evs, err := g.svc.PlayOnPlayer(req.GameID, req.Auth, card, req.DstPlayer)
		return response{}, evs, err
	case kindCard:
		organ, err := domain.ParseCard(req.Dst)
		if err != nil {
			return response{}, nil, err
		}
		evs, err := g.svc.PlayOnCard(req.GameID, req.Auth, card, req.DstPlayer, organ)
		return response{}, evs, err
	}
	return response{}, nil, unsupported(req)
}

func unsupported(req request) error {
	return domain.Violationf("unsupported move {%s, %s, %s} -> {%s, %s, %s}",
		req.SrcPlayer, req.SrcKind, req.Src, req.DstPlayer, req.DstKind, req.Dst)
}

func parsePair(card, organ string) (domain.Card, domain.Card, error) {
	c, err := domain.ParseCard(card)
	if err != nil {
		return domain.NoCard, domain.NoCard, err
	}
	o, err := domain.ParseCard(organ)
	if err != nil {
		return domain.NoCard, domain.NoCard, err
	}
	return c, o, nil
}
