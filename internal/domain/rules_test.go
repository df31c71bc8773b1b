package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfectThenCure(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{VirusBone}},
		"bob":   {hand: []Card{MedicineBone}, stacks: []Stack{{OrganBone}}},
	})

	require.NoError(t, g.ApplyToOpponent(alice, VirusBone, "bob", OrganBone))
	assert.Equal(t, []Stack{{OrganBone, VirusBone}}, player(t, g, "bob").Stacks())
	assert.Zero(t, g.DiscardSize())
	assert.Equal(t, "bob", g.CurrentPlayer())

	require.NoError(t, g.ApplyToSelf(bob, MedicineBone, OrganBone))
	assert.Equal(t, []Stack{{OrganBone}}, player(t, g, "bob").Stacks())
	assert.Equal(t, 2, g.DiscardSize())
	assert.Equal(t, DeckSize, g.CardCount())
}

func TestVirusOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		target      Stack
		virus       Card
		wantStacks  []Stack
		wantDiscard int
	}{
		{"infects a bare organ", Stack{OrganHeart}, VirusHeart, []Stack{{OrganHeart, VirusHeart}}, 0},
		{"wildcard virus on any organ", Stack{OrganBrain}, VirusWildcard, []Stack{{OrganBrain, VirusWildcard}}, 0},
		{"cancels a medicine", Stack{OrganHeart, MedicineHeart}, VirusHeart, []Stack{{OrganHeart}}, 2},
		{"destroys an infected organ", Stack{OrganBone, VirusBone}, VirusWildcard, []Stack{}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTable(t, alice, bob)
			rig(t, g, map[string]seat{
				"alice": {hand: []Card{tt.virus}},
				"bob":   {stacks: []Stack{tt.target}},
			})

			require.NoError(t, g.ApplyToOpponent(alice, tt.virus, "bob", tt.target.Organ()))
			assert.Equal(t, tt.wantStacks, player(t, g, "bob").Stacks())
			assert.Equal(t, tt.wantDiscard, g.DiscardSize())
			assert.Equal(t, DeckSize, g.CardCount())
		})
	}
}

func TestVirusRejections(t *testing.T) {
	tests := []struct {
		name  string
		virus Card
		organ Card
		code  Code
	}{
		{"wrong organ", VirusHeart, OrganBone, CodeRuleViolation},
		{"missing organ", VirusHeart, OrganHeart, CodeNotFound},
		{"immune organ", VirusBrain, OrganBrain, CodeRuleViolation},
		{"not held", VirusStomach, OrganBone, CodeRuleViolation},
		{"target is not an organ", VirusBone, VirusBone, CodeRuleViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTable(t, alice, bob)
			rig(t, g, map[string]seat{
				"alice": {hand: []Card{VirusHeart, VirusBrain, VirusBone}},
				"bob": {stacks: []Stack{
					{OrganBone},
					{OrganBrain, MedicineBrain, MedicineWildcard},
				}},
			})
			before := g.Status(alice)

			requireCode(t, g.ApplyToOpponent(alice, tt.virus, "bob", tt.organ), tt.code)
			assert.Equal(t, before, g.Status(alice))
		})
	}
}

func TestMedicineImmunizes(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{MedicineWildcard, MedicineBrain}, stacks: []Stack{{OrganBrain, MedicineBrain}}},
	})

	require.NoError(t, g.ApplyToSelf(alice, MedicineWildcard, OrganBrain))
	stack, err := player(t, g, "alice").Stack(OrganBrain)
	require.NoError(t, err)
	assert.True(t, stack.Immune())
	assert.Contains(t, g.Log()[len(g.Log())-3].Text, "immunized")

	g.current = 0
	requireCode(t, g.ApplyToSelf(alice, MedicineBrain, OrganBrain), CodeRuleViolation)
}

func TestMedicineRejections(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{MedicineHeart, VirusBone}, stacks: []Stack{{OrganBone}}},
	})

	requireCode(t, g.ApplyToSelf(alice, MedicineHeart, OrganBone), CodeRuleViolation)
	requireCode(t, g.ApplyToSelf(alice, VirusBone, OrganBone), CodeRuleViolation)
	requireCode(t, g.ApplyToSelf(alice, MedicineHeart, OrganHeart), CodeNotFound)
	requireCode(t, g.ApplyToSelf(alice, MedicineBone, OrganBone), CodeRuleViolation)
	assert.Equal(t, "alice", g.CurrentPlayer())
}

func TestWildcardOrganCuredByAnyMedicine(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{MedicineHeart}, stacks: []Stack{{OrganWildcard, VirusBone}}},
	})

	require.NoError(t, g.ApplyToSelf(alice, MedicineHeart, OrganWildcard))
	assert.Equal(t, []Stack{{OrganWildcard}}, player(t, g, "alice").Stacks())
	assert.Equal(t, 2, g.DiscardSize())
}

func TestOrganTheft(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{TreatmentOrganTheft}},
		"bob":   {stacks: []Stack{{OrganStomach, MedicineStomach}}},
	})

	require.NoError(t, g.ApplyToOpponent(alice, TreatmentOrganTheft, "bob", OrganStomach))
	assert.Equal(t, []Stack{{OrganStomach, MedicineStomach}}, player(t, g, "alice").Stacks())
	assert.Empty(t, player(t, g, "bob").Stacks())
	assert.Equal(t, 1, g.DiscardSize())
}

func TestOrganTheftRejections(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{TreatmentOrganTheft}, stacks: []Stack{{OrganBone}}},
		"bob": {stacks: []Stack{
			{OrganBone},
			{OrganHeart, MedicineHeart, MedicineHeart},
		}},
	})

	requireCode(t, g.ApplyToOpponent(alice, TreatmentOrganTheft, "bob", OrganBone), CodeRuleViolation)
	requireCode(t, g.ApplyToOpponent(alice, TreatmentOrganTheft, "bob", OrganHeart), CodeRuleViolation)
	requireCode(t, g.ApplyToOpponent(alice, TreatmentOrganTheft, "bob", OrganBrain), CodeNotFound)
	assert.True(t, player(t, g, "alice").Holds(TreatmentOrganTheft))
}

func TestSingleTransplant(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{TreatmentSingleTransplant}, stacks: []Stack{{OrganBone, VirusBone}}},
		"bob":   {stacks: []Stack{{OrganHeart, MedicineHeart}}},
	})

	require.NoError(t, g.ApplyToOpponent(alice, OrganBone, "bob", OrganHeart))
	assert.Equal(t, []Stack{{OrganHeart, MedicineHeart}}, player(t, g, "alice").Stacks())
	assert.Equal(t, []Stack{{OrganBone, VirusBone}}, player(t, g, "bob").Stacks())
	assert.Equal(t, 1, g.DiscardSize())
}

func TestSingleTransplantRejections(t *testing.T) {
	tests := []struct {
		name  string
		alice seat
		bob   seat
		mine  Card
		their Card
	}{
		{
			name:  "without the transplant card",
			alice: seat{hand: []Card{OrganBrain}, stacks: []Stack{{OrganBone}}},
			bob:   seat{stacks: []Stack{{OrganHeart}}},
			mine:  OrganBone, their: OrganHeart,
		},
		{
			name:  "target already owns the organ",
			alice: seat{hand: []Card{TreatmentSingleTransplant}, stacks: []Stack{{OrganBone}}},
			bob:   seat{stacks: []Stack{{OrganHeart}, {OrganBone}}},
			mine:  OrganBone, their: OrganHeart,
		},
		{
			name:  "actor already owns the organ",
			alice: seat{hand: []Card{TreatmentSingleTransplant}, stacks: []Stack{{OrganBone}, {OrganHeart}}},
			bob:   seat{stacks: []Stack{{OrganHeart}}},
			mine:  OrganBone, their: OrganHeart,
		},
		{
			name:  "immune target",
			alice: seat{hand: []Card{TreatmentSingleTransplant}, stacks: []Stack{{OrganBone}}},
			bob:   seat{stacks: []Stack{{OrganHeart, MedicineHeart, MedicineWildcard}}},
			mine:  OrganBone, their: OrganHeart,
		},
		{
			name:  "immune source",
			alice: seat{hand: []Card{TreatmentSingleTransplant}, stacks: []Stack{{OrganBone, MedicineBone, MedicineBone}}},
			bob:   seat{stacks: []Stack{{OrganHeart}}},
			mine:  OrganBone, their: OrganHeart,
		},
		{
			name:  "actor lacks the organ",
			alice: seat{hand: []Card{TreatmentSingleTransplant}},
			bob:   seat{stacks: []Stack{{OrganHeart}}},
			mine:  OrganBone, their: OrganHeart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTable(t, alice, bob)
			rig(t, g, map[string]seat{"alice": tt.alice, "bob": tt.bob})
			before := g.Status(alice)

			requireCode(t, g.ApplyToOpponent(alice, tt.mine, "bob", tt.their), CodeRuleViolation)
			assert.Equal(t, before, g.Status(alice))
		})
	}
}

func TestTotalTransplant(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{TreatmentTotalTransplant}, stacks: []Stack{{OrganBone}}},
		"bob":   {stacks: []Stack{{OrganHeart}, {OrganBrain, VirusBrain}}},
	})

	requireCode(t, g.TransplantAll(alice, "alice"), CodeRuleViolation)
	requireCode(t, g.TransplantAll(alice, "carol"), CodeNotFound)

	require.NoError(t, g.TransplantAll(alice, "bob"))
	assert.Equal(t, []Stack{{OrganHeart}, {OrganBrain, VirusBrain}}, player(t, g, "alice").Stacks())
	assert.Equal(t, []Stack{{OrganBone}}, player(t, g, "bob").Stacks())
	assert.Equal(t, 1, g.DiscardSize())
	assert.Equal(t, DeckSize, g.CardCount())
}

func TestAllDiscard(t *testing.T) {
	g := newTable(t, alice, bob, carol)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{TreatmentAllDiscard, OrganBone}},
		"bob":   {hand: []Card{OrganHeart, VirusBone, MedicineBone}},
		"carol": {hand: []Card{OrganBrain}},
	})

	require.NoError(t, g.UseTreatment(alice, TreatmentAllDiscard))
	assert.Empty(t, player(t, g, "bob").Hand())
	assert.Empty(t, player(t, g, "carol").Hand())
	assert.Len(t, player(t, g, "alice").Hand(), 2)
	assert.Equal(t, 5, g.DiscardSize())

	requireCode(t, g.UseTreatment(bob, TreatmentOrganTheft), CodeRuleViolation)
}

func TestClaimOrgan(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{OrganBone, OrganHeart, VirusBone}, stacks: []Stack{{OrganHeart}}},
	})

	requireCode(t, g.ClaimOrgan(alice, OrganHeart), CodeRuleViolation)
	requireCode(t, g.ClaimOrgan(alice, VirusBone), CodeRuleViolation)
	requireCode(t, g.PlayOnPlayer(alice, OrganBone, "bob"), CodeRuleViolation)
	requireCode(t, g.PlayOnPlayer(alice, VirusBone, "alice"), CodeRuleViolation)

	require.NoError(t, g.PlayOnPlayer(alice, OrganBone, "alice"))
	assert.Equal(t, []Card{OrganHeart, OrganBone}, player(t, g, "alice").Organs())
}

func TestOrganDroppedOnOwnOrganIsClaimed(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{OrganBrain}, stacks: []Stack{{OrganHeart}}},
	})

	require.NoError(t, g.ApplyToOpponent(alice, OrganBrain, "alice", OrganHeart))
	assert.True(t, player(t, g, "alice").HasOrgan(OrganBrain))
}

func TestPlayOnCardRouting(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{MedicineHeart, VirusBone, MedicineBone}, stacks: []Stack{{OrganHeart}}},
		"bob":   {stacks: []Stack{{OrganBone}}},
	})

	requireCode(t, g.PlayOnCard(alice, MedicineBone, "bob", OrganBone), CodeRuleViolation)
	require.NoError(t, g.PlayOnCard(alice, MedicineHeart, "alice", OrganHeart))
	assert.Equal(t, []Stack{{OrganHeart, MedicineHeart}}, player(t, g, "alice").Stacks())

	g.current = 0
	require.NoError(t, g.PlayOnCard(alice, VirusBone, "bob", OrganBone))
	assert.Equal(t, []Stack{{OrganBone, VirusBone}}, player(t, g, "bob").Stacks())
}

func TestWinWithFourHealthyOrgans(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{OrganStomach}, stacks: []Stack{{OrganBone}, {OrganHeart, MedicineHeart}, {OrganBrain}}},
	})

	require.NoError(t, g.ClaimOrgan(alice, OrganStomach))
	assert.True(t, g.Ended())
	assert.Equal(t, PhaseFinished, g.Phase())
	assert.Equal(t, "alice", g.Winner())
	assert.Empty(t, player(t, g, "alice").Hand())
	assert.True(t, strings.Contains(g.Log()[len(g.Log())-1].Text, "wins"))

	requireCode(t, g.DiscardOrPass(alice, NoCard), CodeGameState)
	requireCode(t, g.DiscardOrPass(bob, NoCard), CodeGameState)
	for _, p := range g.Status(alice).Players {
		assert.False(t, p.IsCurrentTurn)
	}
}

func TestThreeHealthyOrgansDoNotWin(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{OrganStomach}, stacks: []Stack{{OrganBone}, {OrganHeart, VirusHeart}, {OrganBrain}}},
	})

	require.NoError(t, g.ClaimOrgan(alice, OrganStomach))
	assert.False(t, g.Ended())
	assert.Equal(t, "bob", g.CurrentPlayer())
}

func TestOpponentCanWinOnActorsMove(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{TreatmentSingleTransplant}, stacks: []Stack{{OrganWildcard}}},
		"bob":   {stacks: []Stack{{OrganBone}, {OrganHeart}, {OrganBrain}, {OrganStomach, VirusStomach}}},
	})

	require.NoError(t, g.ApplyToOpponent(alice, OrganWildcard, "bob", OrganStomach))
	assert.True(t, g.Ended())
	assert.Equal(t, "bob", g.Winner())
}

func TestRejectedMovesKeepTheTurn(t *testing.T) {
	g := newTable(t, alice, bob)
	rig(t, g, map[string]seat{
		"alice": {hand: []Card{MedicineBone, TreatmentAllDiscard, VirusHeart}},
		"bob":   {stacks: []Stack{{OrganBone}}},
	})
	logLen := len(g.Log())

	requireCode(t, g.ApplyToOpponent(alice, MedicineBone, "bob", OrganBone), CodeRuleViolation)
	requireCode(t, g.ApplyToOpponent(alice, TreatmentAllDiscard, "bob", OrganBone), CodeRuleViolation)
	requireCode(t, g.PlayOnPlayer(alice, VirusHeart, "bob"), CodeRuleViolation)
	requireCode(t, g.ApplyToOpponent(alice, VirusHeart, "nobody", OrganBone), CodeNotFound)

	assert.Equal(t, "alice", g.CurrentPlayer())
	assert.Len(t, g.Log(), logLen)
	assert.Len(t, player(t, g, "alice").Hand(), 3)
}
