package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padelops/tournament-engine/models"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func sidePtr(s models.Side) *models.Side { return &s }

func groupMatch(id, teamA, teamB string, games []models.GameScore) models.Match {
	return models.Match{
		ID:          id,
		CategoryID:  "cat-1",
		Stage:       models.StageGroup,
		GroupName:   strPtr("A"),
		RoundNumber: 1,
		TeamAID:     &teamA,
		TeamBID:     &teamB,
		Games:       games,
		OutcomeType: models.OutcomePlayed,
	}
}

func testRegs(ids ...string) []models.Registration {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	regs := make([]models.Registration, len(ids))
	for i, id := range ids {
		regs[i] = models.Registration{
			ID:         id,
			CategoryID: "cat-1",
			GroupName:  strPtr("A"),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
	}
	return regs
}

func TestComputeStandings_PointsTiers(t *testing.T) {
	cfg := models.DefaultGroupPointsConfig()
	regs := testRegs("p1", "p2", "p3")
	matches := []models.Match{
		// p1 beats p2 in straight sets: clean win.
		groupMatch("m1", "p1", "p2", []models.GameScore{{A: 6, B: 3}, {A: 6, B: 4}}),
		// p3 beats p2 but drops a set: tiered win, loss-with-set for p2.
		groupMatch("m2", "p2", "p3", []models.GameScore{{A: 6, B: 2}, {A: 3, B: 6}, {A: 4, B: 6}}),
	}

	standings := ComputeStandings(regs, matches, cfg)
	require.Contains(t, standings, "A")
	table := standings["A"]
	require.Len(t, table, 3)

	byID := make(map[string]StandingEntry)
	for _, e := range table {
		byID[e.RegistrationID] = e
	}

	assert.Equal(t, cfg.WinWithoutGameLossPoints, byID["p1"].Points)
	assert.Equal(t, 1, byID["p1"].MatchesWon)
	assert.Equal(t, 2, byID["p1"].SetsWon)

	assert.Equal(t, cfg.WinPoints, byID["p3"].Points)
	assert.Equal(t, 2, byID["p3"].SetsWon)
	assert.Equal(t, 1, byID["p3"].SetsLost)

	// p2 lost clean to p1 and with a set won to p3.
	assert.Equal(t, cfg.LossPoints+cfg.LossWithGameWinPoints, byID["p2"].Points)
	assert.Equal(t, 2, byID["p2"].MatchesLost)
}

func TestComputeStandings_WalkoverUsesOutcomeSideAsLoser(t *testing.T) {
	cfg := models.DefaultGroupPointsConfig()
	regs := testRegs("p1", "p2")
	m := groupMatch("m1", "p1", "p2", nil)
	m.OutcomeType = models.OutcomeWalkover
	m.OutcomeSide = sidePtr(models.SideB) // side B forfeited

	standings := ComputeStandings(regs, []models.Match{m}, cfg)
	table := standings["A"]
	require.Len(t, table, 2)

	assert.Equal(t, "p1", table[0].RegistrationID)
	assert.Equal(t, cfg.WinWithoutGameLossPoints, table[0].Points)
	assert.Equal(t, 1, table[0].MatchesWon)
	// Walkovers carry no set or rally-point bookkeeping.
	assert.Zero(t, table[0].SetsWon)
	assert.Zero(t, table[1].SetsLost)
	assert.Equal(t, cfg.LossPoints, table[1].Points)
}

func TestComputeStandings_LegacyBareWinnerFallback(t *testing.T) {
	cfg := models.DefaultGroupPointsConfig()
	regs := testRegs("p1", "p2")
	m := groupMatch("m1", "p1", "p2", nil)
	m.WinnerSide = sidePtr(models.SideB)

	standings := ComputeStandings(regs, []models.Match{m}, cfg)
	byID := make(map[string]StandingEntry)
	for _, e := range standings["A"] {
		byID[e.RegistrationID] = e
	}

	// Plain win/loss points, no set bookkeeping, no clean-win bonus.
	assert.Equal(t, cfg.WinPoints, byID["p2"].Points)
	assert.Equal(t, cfg.LossPoints, byID["p1"].Points)
	assert.Zero(t, byID["p2"].SetsWon)
}

func TestComputeStandings_TiedSetsContributeNothing(t *testing.T) {
	cfg := models.DefaultGroupPointsConfig()
	regs := testRegs("p1", "p2")
	m := groupMatch("m1", "p1", "p2", []models.GameScore{{A: 6, B: 4}, {A: 4, B: 6}})

	standings := ComputeStandings(regs, []models.Match{m}, cfg)
	for _, e := range standings["A"] {
		assert.Zero(t, e.Points)
		assert.Zero(t, e.MatchesWon)
		assert.Zero(t, e.SetsWon)
	}
}

func TestComputeStandings_Idempotent(t *testing.T) {
	cfg := models.DefaultGroupPointsConfig()
	regs := testRegs("p1", "p2", "p3", "p4")
	matches := []models.Match{
		groupMatch("m1", "p1", "p2", []models.GameScore{{A: 6, B: 0}, {A: 6, B: 0}}),
		groupMatch("m2", "p3", "p4", []models.GameScore{{A: 6, B: 7}, {A: 6, B: 3}, {A: 7, B: 5}}),
		groupMatch("m3", "p1", "p3", []models.GameScore{{A: 4, B: 6}, {A: 6, B: 3}, {A: 2, B: 6}}),
	}

	first := ComputeStandings(regs, matches, cfg)
	second := ComputeStandings(regs, matches, cfg)
	assert.Equal(t, first, second)
}

func TestCompareStandings_StrictTotalOrder(t *testing.T) {
	order := models.DefaultTiebreakOrder()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []StandingEntry{
		{RegistrationID: "a", Points: 6, SetsWon: 4, SetsLost: 1, PointsWon: 48, PointsLost: 30, CreatedAt: base},
		{RegistrationID: "b", Points: 6, SetsWon: 4, SetsLost: 1, PointsWon: 48, PointsLost: 30, Seed: intPtr(2), CreatedAt: base},
		{RegistrationID: "c", Points: 6, SetsWon: 4, SetsLost: 1, PointsWon: 48, PointsLost: 30, Seed: intPtr(1), CreatedAt: base},
		{RegistrationID: "d", Points: 6, SetsWon: 4, SetsLost: 1, PointsWon: 48, PointsLost: 30, CreatedAt: base.Add(time.Second)},
		{RegistrationID: "e", Points: 4, SetsWon: 4, SetsLost: 1, PointsWon: 50, PointsLost: 20, CreatedAt: base},
	}

	for i := range entries {
		for j := range entries {
			if i == j {
				continue
			}
			cmp := CompareStandings(entries[i], entries[j], order)
			assert.NotZero(t, cmp, "entries %s and %s must not tie", entries[i].RegistrationID, entries[j].RegistrationID)
			assert.Equal(t, -cmp, CompareStandings(entries[j], entries[i], order), "comparator must be antisymmetric")
		}
	}

	// Seeded entries outrank unseeded ones on the residual tie.
	assert.Negative(t, CompareStandings(entries[2], entries[1], order)) // seed 1 before seed 2
	assert.Negative(t, CompareStandings(entries[1], entries[0], order)) // any seed before none
	assert.Negative(t, CompareStandings(entries[0], entries[3], order)) // earlier created first
}

func TestCompareStandings_RuleOrderDecides(t *testing.T) {
	// x has the better set difference, y the higher point total.
	x := StandingEntry{RegistrationID: "x", Points: 1, SetsWon: 4, SetsLost: 0}
	y := StandingEntry{RegistrationID: "y", Points: 5, SetsWon: 1, SetsLost: 3}

	assert.Negative(t, CompareStandings(x, y, models.DefaultTiebreakOrder()))

	pointsFirst := []models.TiebreakRule{
		models.TiebreakPointsPerMatch,
		models.TiebreakSetsDiff,
		models.TiebreakMatchesWon,
		models.TiebreakPointsDiff,
	}
	assert.Positive(t, CompareStandings(x, y, pointsFirst))
}
