package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occupiedSlots(ids ...string) []Slot {
	slots := make([]Slot, len(ids))
	for i, id := range ids {
		slots[i] = Occupied(id)
	}
	return slots
}

func TestNextPowerOfTwo(t *testing.T) {
	assert.Equal(t, 1, NextPowerOfTwo(0))
	assert.Equal(t, 1, NextPowerOfTwo(1))
	assert.Equal(t, 2, NextPowerOfTwo(2))
	assert.Equal(t, 4, NextPowerOfTwo(3))
	assert.Equal(t, 8, NextPowerOfTwo(5))
	assert.Equal(t, 16, NextPowerOfTwo(9))
}

func TestBuildBracket_MatchCount(t *testing.T) {
	for _, entrants := range []int{2, 3, 4, 5, 6, 8, 11, 16} {
		t.Run(fmt.Sprintf("entrants_%d", entrants), func(t *testing.T) {
			ids := make([]string, entrants)
			for i := range ids {
				ids[i] = fmt.Sprintf("q%d", i+1)
			}
			size := NextPowerOfTwo(entrants)

			matches := BuildBracket(occupiedSlots(ids...), false)
			assert.Len(t, matches, size-1, "single elimination emits bracketSize-1 matches")

			withBronze := BuildBracket(occupiedSlots(ids...), true)
			if entrants >= 4 {
				require.Len(t, withBronze, size)
				bronze := withBronze[len(withBronze)-1]
				assert.True(t, bronze.IsBronze)
				assert.Equal(t, SlotAwaiting, bronze.TeamA.State())
				assert.Equal(t, SlotAwaiting, bronze.TeamB.State())
			} else {
				assert.Len(t, withBronze, size-1, "no bronze below four entrants")
			}
		})
	}
}

func TestBuildBracket_DegenerateInputs(t *testing.T) {
	assert.Nil(t, BuildBracket(nil, true))
	assert.Nil(t, BuildBracket(occupiedSlots("only"), true))
}

func TestBuildBracket_MirroredSeeding(t *testing.T) {
	matches := BuildBracket(occupiedSlots("q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8"), false)
	require.Len(t, matches, 7)

	wantPairs := [][2]string{{"q1", "q8"}, {"q2", "q7"}, {"q3", "q6"}, {"q4", "q5"}}
	for i, want := range wantPairs {
		m := matches[i]
		assert.Equal(t, 1, m.RoundNumber)
		assert.Equal(t, i, m.OrderInRound)
		idA, _ := m.TeamA.RegistrationID()
		idB, _ := m.TeamB.RegistrationID()
		assert.Equal(t, want[0], idA)
		assert.Equal(t, want[1], idB)
	}

	// Semifinals and final start open.
	for _, m := range matches[4:] {
		assert.Equal(t, SlotAwaiting, m.TeamA.State())
		assert.Equal(t, SlotAwaiting, m.TeamB.State())
	}
}

func TestBuildBracket_ByeAutoAdvance(t *testing.T) {
	// Five entrants in a bracket of eight: seeds 1-3 receive byes.
	matches := BuildBracket(occupiedSlots("q1", "q2", "q3", "q4", "q5"), false)
	require.Len(t, matches, 7)

	semifinals := matches[4:6]

	// q1's opponent slot (seed 8) is a bye: q1 advances to semifinal 0 side A.
	idA, ok := semifinals[0].TeamA.RegistrationID()
	require.True(t, ok)
	assert.Equal(t, "q1", idA)

	// Round-1 match 1 is q2 vs bye, odd order fills side B of semifinal 0.
	idB, ok := semifinals[0].TeamB.RegistrationID()
	require.True(t, ok)
	assert.Equal(t, "q2", idB)

	// q3 vs bye feeds semifinal 1 side A; q4 vs q5 is a real match, so the
	// remaining slot stays open.
	idA, ok = semifinals[1].TeamA.RegistrationID()
	require.True(t, ok)
	assert.Equal(t, "q3", idA)
	assert.Equal(t, SlotAwaiting, semifinals[1].TeamB.State())
}

func TestBuildBracket_ExplicitEmptySeedIsBye(t *testing.T) {
	entrants := []Slot{Occupied("q1"), Occupied("q2"), Occupied("q3"), Bye()}
	matches := BuildBracket(entrants, false)
	require.Len(t, matches, 3)

	final := matches[2]
	// q1 meets the empty fourth seed and advances straight into the final's
	// A slot; q2 vs q3 is a real match so the B slot stays open.
	idA, ok := final.TeamA.RegistrationID()
	require.True(t, ok)
	assert.Equal(t, "q1", idA)
	assert.Equal(t, SlotAwaiting, final.TeamB.State())
}

func TestBuildBracket_NoBronzeForTwoRounds(t *testing.T) {
	// Three real entrants: bracket of four has two rounds but only three
	// entrants, so no bronze match.
	matches := BuildBracket(occupiedSlots("q1", "q2", "q3"), true)
	for _, m := range matches {
		assert.False(t, m.IsBronze)
	}
}
