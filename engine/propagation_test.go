package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padelops/tournament-engine/models"
)

// playoffFixture builds a persisted view of a four-entrant bracket: two
// semifinals, a final and a bronze match.
func playoffFixture() []models.Match {
	base := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	mk := func(id string, round, order int, teamA, teamB *string, bronze bool) models.Match {
		return models.Match{
			ID:            id,
			CategoryID:    "cat-1",
			Stage:         models.StagePlayoff,
			RoundNumber:   round,
			OrderInRound:  order,
			TeamAID:       teamA,
			TeamBID:       teamB,
			OutcomeType:   models.OutcomePlayed,
			IsBronzeMatch: bronze,
			CreatedAt:     base,
		}
	}
	return []models.Match{
		mk("sf1", 1, 0, strPtr("q1"), strPtr("q4"), false),
		mk("sf2", 1, 1, strPtr("q2"), strPtr("q3"), false),
		mk("final", 2, 0, nil, nil, false),
		mk("bronze", 3, 0, nil, nil, true),
	}
}

func TestResolveWinner(t *testing.T) {
	m := models.Match{OutcomeType: models.OutcomePlayed}

	_, ok := ResolveWinner(m)
	assert.False(t, ok, "no data, no winner")

	m.Games = []models.GameScore{{A: 6, B: 4}, {A: 4, B: 6}}
	_, ok = ResolveWinner(m)
	assert.False(t, ok, "tied sets stay unresolved")

	m.Games = append(m.Games, models.GameScore{A: 7, B: 5})
	side, ok := ResolveWinner(m)
	require.True(t, ok)
	assert.Equal(t, models.SideA, side)

	// Explicit winner side beats the games tally.
	m.WinnerSide = sidePtr(models.SideB)
	side, _ = ResolveWinner(m)
	assert.Equal(t, models.SideB, side)

	// A walkover resolves against the affected side.
	w := models.Match{OutcomeType: models.OutcomeWalkover, OutcomeSide: sidePtr(models.SideA)}
	side, ok = ResolveWinner(w)
	require.True(t, ok)
	assert.Equal(t, models.SideB, side)
}

func TestPropagateWinner_FillsNextRoundSlot(t *testing.T) {
	playoffs := playoffFixture()

	playoffs[0].Games = []models.GameScore{{A: 6, B: 2}, {A: 6, B: 3}}
	update := PropagateWinner(playoffs, playoffs[0])
	require.NotNil(t, update)
	assert.Equal(t, "final", update.MatchID)
	assert.Equal(t, models.SideA, update.Side)
	assert.Equal(t, "q1", update.TeamID)

	// The second semifinal (odd order) feeds the final's B slot.
	playoffs[1].WinnerSide = sidePtr(models.SideB)
	update = PropagateWinner(playoffs, playoffs[1])
	require.NotNil(t, update)
	assert.Equal(t, "final", update.MatchID)
	assert.Equal(t, models.SideB, update.Side)
	assert.Equal(t, "q3", update.TeamID)
}

func TestPropagateWinner_NeverOverwritesRealOccupant(t *testing.T) {
	playoffs := playoffFixture()
	playoffs[2].TeamAID = strPtr("q4") // manually assigned by the organizer

	playoffs[0].WinnerSide = sidePtr(models.SideA)
	update := PropagateWinner(playoffs, playoffs[0])
	assert.Nil(t, update, "an occupied slot must not be overwritten")
}

func TestPropagateWinner_IdempotentAfterSuccess(t *testing.T) {
	playoffs := playoffFixture()
	playoffs[0].WinnerSide = sidePtr(models.SideA)

	update := PropagateWinner(playoffs, playoffs[0])
	require.NotNil(t, update)

	// Apply the update, then propagate again: nothing left to do.
	playoffs[2].TeamAID = strPtr(update.TeamID)
	assert.Nil(t, PropagateWinner(playoffs, playoffs[0]))
}

func TestPropagateWinner_PlaceholderSlotsAreOpen(t *testing.T) {
	playoffs := playoffFixture()
	playoffs[2].TeamAID = strPtr("pending-sf1") // legacy UI placeholder

	playoffs[0].WinnerSide = sidePtr(models.SideA)
	update := PropagateWinner(playoffs, playoffs[0])
	require.NotNil(t, update)
	assert.Equal(t, "q1", update.TeamID)
}

func TestPropagateWinner_SkipsFinalAndBronze(t *testing.T) {
	playoffs := playoffFixture()
	playoffs[2].TeamAID = strPtr("q1")
	playoffs[2].TeamBID = strPtr("q3")
	playoffs[2].WinnerSide = sidePtr(models.SideA)

	assert.Nil(t, PropagateWinner(playoffs, playoffs[2]), "the final has no next round")

	playoffs[3].TeamAID = strPtr("q4")
	playoffs[3].TeamBID = strPtr("q2")
	playoffs[3].WinnerSide = sidePtr(models.SideA)
	assert.Nil(t, PropagateWinner(playoffs, playoffs[3]), "the bronze match never propagates forward")
}

func TestPropagateBronze_CollectsSemifinalLosers(t *testing.T) {
	playoffs := playoffFixture()
	playoffs[0].WinnerSide = sidePtr(models.SideA) // q1 beats q4
	playoffs[1].WinnerSide = sidePtr(models.SideA) // q2 beats q3

	updates := PropagateBronze(playoffs)
	require.Len(t, updates, 2)
	assert.Equal(t, SlotUpdate{MatchID: "bronze", Side: models.SideA, TeamID: "q4"}, updates[0])
	assert.Equal(t, SlotUpdate{MatchID: "bronze", Side: models.SideB, TeamID: "q3"}, updates[1])
}

func TestPropagateBronze_PartialAndGuarded(t *testing.T) {
	playoffs := playoffFixture()
	playoffs[0].WinnerSide = sidePtr(models.SideA)

	updates := PropagateBronze(playoffs)
	require.Len(t, updates, 1, "only the resolved semifinal contributes")
	assert.Equal(t, "q4", updates[0].TeamID)

	// A real occupant blocks the slot; re-resolving changes nothing.
	playoffs[3].TeamAID = strPtr("q4")
	assert.Empty(t, PropagateBronze(playoffs))

	// No bronze match at all: nothing to do.
	assert.Empty(t, PropagateBronze(playoffs[:3]))
}
