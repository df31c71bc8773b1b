package bot

import (
	"context"
	"fmt"
	"math/rand"

	"virusgame/internal/app"
	"virusgame/internal/domain"
)

// DefaultMaxTurns bounds a simulation that nobody manages to win.
const DefaultMaxTurns = 2000

// Simulation describes a game played by bots only.
type Simulation struct {
	Players  int
	Level    Level
	Seed     int64
	MaxTurns int
}

// Turn records one move of a simulation.
type Turn struct {
	Player string
	Move   Move
}

// Result is the outcome of a simulation.
type Result struct {
	GameID string
	Winner string
	Turns  []Turn
	Events []app.Event
	Final  domain.Status
}

// Simulate creates a game on svc, seats sim.Players bots and lets them play
// until someone wins, MaxTurns is reached or ctx is done.
func Simulate(ctx context.Context, svc *app.Service, sim Simulation) (Result, error) {
	if sim.Players < 1 {
		return Result{}, fmt.Errorf("simulation needs at least one player, got %d", sim.Players)
	}
	if sim.MaxTurns <= 0 {
		sim.MaxTurns = DefaultMaxTurns
	}

	const admin = "simulation"
	id, evs, err := svc.CreateGame("", admin)
	if err != nil {
		return Result{}, fmt.Errorf("create game: %w", err)
	}
	res := Result{GameID: id, Events: evs}

	agents := make(map[string]*Agent, sim.Players)
	for i := 1; i <= sim.Players; i++ {
		auth := domain.Auth{PlayerID: fmt.Sprintf("bot-%d", i), Password: fmt.Sprintf("secret-%d", i)}
		brain, err := NewBrain(sim.Level, rand.New(rand.NewSource(sim.Seed+int64(i))))
		if err != nil {
			return res, err
		}
		agents[auth.PlayerID] = &Agent{Auth: auth, Strategy: brain}
		evs, err := svc.Join(id, auth, "")
		if err != nil {
			return res, fmt.Errorf("join %s: %w", auth.PlayerID, err)
		}
		res.Events = append(res.Events, evs...)
	}
	evs, err = svc.Start(id, admin)
	if err != nil {
		return res, fmt.Errorf("start: %w", err)
	}
	res.Events = append(res.Events, evs...)

	for len(res.Turns) < sim.MaxTurns {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		st, err := svc.Status(id, domain.Auth{})
		if err != nil {
			return res, err
		}
		if st.Ended {
			break
		}
		var current string
		for _, p := range st.Players {
			if p.IsCurrentTurn {
				current = p.ID
			}
		}
		m, evs, err := agents[current].Play(svc, id)
		res.Events = append(res.Events, evs...)
		if err != nil {
			return res, fmt.Errorf("turn %d of %s: %w", len(res.Turns)+1, current, err)
		}
		res.Turns = append(res.Turns, Turn{Player: current, Move: m})
	}

	res.Final, err = svc.Status(id, domain.Auth{})
	if err != nil {
		return res, err
	}
	res.Winner = res.Final.Winner
	return res, nil
}
