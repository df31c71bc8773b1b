package app

import (
	"math/rand"
	"runtime"
	"sync"
	"testing"
	"time"

	"virusgame/internal/domain"
)

var (
	alice = domain.Auth{PlayerID: "alice", Password: "a"}
	bob   = domain.Auth{PlayerID: "bob", Password: "b"}
)

func newTestService(seed int64) *Service {
	return NewService(NewRegistry(10, time.Hour), rand.New(rand.NewSource(seed)), DefaultMaxPlayers)
}

func startedGame(t *testing.T, svc *Service) string {
	t.Helper()
	id, _, err := svc.CreateGame("", "admin")
	if err != nil {
		t.Fatalf("create game error: %v", err)
	}
	if _, err := svc.Join(id, alice, "user-alice"); err != nil {
		t.Fatalf("join alice error: %v", err)
	}
	if _, err := svc.Join(id, bob, ""); err != nil {
		t.Fatalf("join bob error: %v", err)
	}
	if _, err := svc.Start(id, "admin"); err != nil {
		t.Fatalf("start error: %v", err)
	}
	return id
}

func TestCreateJoinStartEvents(t *testing.T) {
	svc := newTestService(42)

	id, evs, err := svc.CreateGame("table-1", "admin")
	if err != nil {
		t.Fatalf("create game error: %v", err)
	}
	if id != "table-1" || len(evs) != 1 || evs[0].Kind != EventGameCreated {
		t.Fatalf("create = %q %+v", id, evs)
	}

	evs, err = svc.Join(id, alice, "user-alice")
	if err != nil {
		t.Fatalf("join error: %v", err)
	}
	joined := evs[0].Payload.(PlayerJoinedPayload)
	if joined.PlayerID != "alice" || joined.Seat != 1 {
		t.Fatalf("joined payload = %+v", joined)
	}

	if _, err := svc.Start(id, "wrong"); domain.CodeOf(err) != domain.CodeAuth {
		t.Fatalf("start with wrong password error = %v", err)
	}

	evs, err = svc.Start(id, "admin")
	if err != nil {
		t.Fatalf("start error: %v", err)
	}
	if len(evs) != 2 || evs[0].Kind != EventGameStarted || evs[1].Kind != EventTurnPassed {
		t.Fatalf("start events = %+v", evs)
	}
	if got := evs[1].Recipients; len(got) != 1 || got[0] != "user-alice" {
		t.Fatalf("turn recipients = %v, want [user-alice]", got)
	}
}

func TestUnknownGame(t *testing.T) {
	svc := newTestService(1)
	if _, err := svc.Join("nope", alice, ""); domain.CodeOf(err) != domain.CodeNotFound {
		t.Fatalf("join error = %v, want not found", err)
	}
	if _, err := svc.Status("nope", alice); domain.CodeOf(err) != domain.CodeNotFound {
		t.Fatalf("status error = %v, want not found", err)
	}
	if _, err := svc.DiscardOrPass("nope", alice, domain.NoCard); domain.CodeOf(err) != domain.CodeNotFound {
		t.Fatalf("discard error = %v, want not found", err)
	}
}

func TestTurnEvents(t *testing.T) {
	svc := newTestService(7)
	id := startedGame(t, svc)

	st, err := svc.Status(id, alice)
	if err != nil {
		t.Fatalf("status error: %v", err)
	}
	actor, next := alice, bob
	if !st.Players[0].IsCurrentTurn {
		actor, next = bob, alice
	}
	own, _ := svc.Status(id, actor)
	var hand []domain.Card
	for _, p := range own.Players {
		if p.ID == actor.PlayerID {
			hand = p.Hand
		}
	}

	evs, err := svc.DiscardOrPass(id, actor, hand[0])
	if err != nil {
		t.Fatalf("discard error: %v", err)
	}
	if len(evs) != 1 || evs[0].Kind != EventTurnPassed {
		t.Fatalf("events = %+v", evs)
	}
	p := evs[0].Payload.(TurnPassedPayload)
	if p.PlayerID != actor.PlayerID || p.NextPlayer != next.PlayerID {
		t.Fatalf("payload = %+v", p)
	}

	if _, err := svc.DiscardOrPass(id, actor, domain.NoCard); domain.CodeOf(err) != domain.CodeRuleViolation {
		t.Fatalf("out of turn error = %v, want rule violation", err)
	}
}

func TestTransplantAllRequiresTheCard(t *testing.T) {
	svc := newTestService(3)
	id := startedGame(t, svc)
	if _, err := svc.TransplantAll(id, alice, domain.OrganBone, "bob"); domain.CodeOf(err) != domain.CodeRuleViolation {
		t.Fatalf("error = %v, want rule violation", err)
	}
}

func TestCardHelp(t *testing.T) {
	svc := newTestService(1)
	e, err := svc.CardHelp("organ_heart")
	if err != nil {
		t.Fatalf("card help error: %v", err)
	}
	if e.Card != domain.OrganHeart || e.Help == "" || e.Count != 5 {
		t.Fatalf("entry = %+v", e)
	}
	if _, err := svc.CardHelp("HIDDEN"); domain.CodeOf(err) != domain.CodeValidation {
		t.Fatalf("hidden help error = %v, want validation", err)
	}
	if len(svc.Catalog()) != 20 {
		t.Fatalf("catalog size = %d, want 20", len(svc.Catalog()))
	}
}

func TestConcurrentPlayersKeepTheGameConsistent(t *testing.T) {
	svc := newTestService(11)
	id := startedGame(t, svc)
	const movesEach = 25

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, me := range []domain.Auth{alice, bob} {
		wg.Add(1)
		go func(me domain.Auth) {
			defer wg.Done()
			for moved := 0; moved < movesEach; {
				st, err := svc.Status(id, me)
				if err != nil {
					errs <- err
					return
				}
				for _, p := range st.Players {
					if p.ID != me.PlayerID || !p.IsCurrentTurn {
						continue
					}
					if _, err := svc.DiscardOrPass(id, me, p.Hand[0]); err != nil {
						errs <- err
						return
					}
					moved++
				}
				runtime.Gosched()
			}
		}(me)
	}

	// Readers hammer the status snapshot while players move.
	stop := make(chan struct{})
	var readers sync.WaitGroup
	for i := 0; i < 4; i++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
					_, _ = svc.Status(id, domain.Auth{})
				}
			}
		}()
	}

	wg.Wait()
	close(stop)
	readers.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("player error: %v", err)
	}

	st, _ := svc.Status(id, alice)
	cards := 0
	for _, p := range st.Players {
		cards += len(p.Hand)
	}
	if cards != 2*domain.HandSize {
		t.Fatalf("cards in hands = %d, want %d", cards, 2*domain.HandSize)
	}
	if n := len(st.Log); n < 2*movesEach {
		t.Fatalf("log entries = %d, want at least %d", n, 2*movesEach)
	}
}
