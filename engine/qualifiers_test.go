package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padelops/tournament-engine/models"
)

func entry(id string, points, setsWon, setsLost int) StandingEntry {
	return StandingEntry{RegistrationID: id, Points: points, SetsWon: setsWon, SetsLost: setsLost}
}

func TestSelectQualifiers_PositionMajorOrder(t *testing.T) {
	standings := map[string][]StandingEntry{
		"B": {entry("b1", 9, 6, 0), entry("b2", 6, 4, 2), entry("b3", 0, 0, 6)},
		"A": {entry("a1", 7, 5, 1), entry("a2", 5, 4, 3), entry("a3", 1, 1, 6)},
	}

	ids := SelectQualifiers(standings, nil, 2, models.DefaultTiebreakOrder())

	// All winners first (b1 outranks a1 on set diff), then all runners-up.
	assert.Equal(t, []string{"b1", "a1", "b2", "a2"}, ids)
}

func TestSelectQualifiers_GroupLabelBreaksResidualTies(t *testing.T) {
	standings := map[string][]StandingEntry{
		"A": {entry("a1", 3, 2, 0)},
		"B": {entry("b1", 3, 2, 0)},
	}

	ids := SelectQualifiers(standings, nil, 1, models.DefaultTiebreakOrder())
	// Identical records: the comparator falls through to the registration id
	// and group label; group A's winner comes first either way here.
	assert.Equal(t, []string{"a1", "b1"}, ids)
}

func TestSelectQualifiers_OverridesAndClamping(t *testing.T) {
	standings := map[string][]StandingEntry{
		"A": {entry("a1", 9, 6, 0), entry("a2", 6, 4, 2), entry("a3", 3, 2, 4)},
		"B": {entry("b1", 9, 6, 0), entry("b2", 6, 4, 2)},
	}

	ids := SelectQualifiers(standings, map[string]int{"A": 3}, 1, models.DefaultTiebreakOrder())
	assert.Len(t, ids, 4)
	assert.ElementsMatch(t, []string{"a1", "a2", "a3", "b1"}, ids)

	// Zero counts clamp to one; a short group yields what it has.
	ids = SelectQualifiers(standings, map[string]int{"B": 0}, 0, models.DefaultTiebreakOrder())
	assert.Equal(t, []string{"a1", "b1"}, ids)

	ids = SelectQualifiers(standings, nil, 5, models.DefaultTiebreakOrder())
	assert.Len(t, ids, 5)
}

func TestSelectQualifiers_Empty(t *testing.T) {
	assert.Empty(t, SelectQualifiers(nil, nil, 2, models.DefaultTiebreakOrder()))
	assert.Empty(t, SelectQualifiers(map[string][]StandingEntry{"A": {}}, nil, 2, models.DefaultTiebreakOrder()))
}
