package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRoundRobinRounds_SmallGroups(t *testing.T) {
	assert.Nil(t, BuildRoundRobinRounds(nil))
	assert.Nil(t, BuildRoundRobinRounds([]string{"solo"}))

	rounds := BuildRoundRobinRounds([]string{"r1", "r2"})
	require.Len(t, rounds, 1)
	require.Len(t, rounds[0], 1)
	assert.Equal(t, Pairing{TeamAID: "r1", TeamBID: "r2"}, rounds[0][0])
}

func TestBuildRoundRobinRounds_FourEntrantsFixedSchedule(t *testing.T) {
	rounds := BuildRoundRobinRounds([]string{"A", "B", "C", "D"})
	require.Len(t, rounds, 3)

	assert.Equal(t, []Pairing{{"A", "C"}, {"D", "B"}}, rounds[0])
	assert.Equal(t, []Pairing{{"A", "B"}, {"C", "D"}}, rounds[1])
	assert.Equal(t, []Pairing{{"A", "D"}, {"B", "C"}}, rounds[2])
}

func TestBuildRoundRobinRounds_EveryPairExactlyOnce(t *testing.T) {
	for _, size := range []int{3, 5, 6, 7, 8, 9, 12} {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			ids := make([]string, size)
			for i := range ids {
				ids[i] = fmt.Sprintf("team-%d", i)
			}

			rounds := BuildRoundRobinRounds(ids)
			if size%2 == 0 {
				assert.Len(t, rounds, size-1)
			} else {
				assert.Len(t, rounds, size)
			}

			seen := make(map[string]int)
			total := 0
			for _, round := range rounds {
				playing := make(map[string]bool)
				for _, p := range round {
					require.NotEqual(t, p.TeamAID, p.TeamBID, "a team must never play itself")
					assert.False(t, playing[p.TeamAID], "team plays twice in one round")
					assert.False(t, playing[p.TeamBID], "team plays twice in one round")
					playing[p.TeamAID] = true
					playing[p.TeamBID] = true

					key := p.TeamAID + "|" + p.TeamBID
					if p.TeamBID < p.TeamAID {
						key = p.TeamBID + "|" + p.TeamAID
					}
					seen[key]++
					total++
				}
			}

			assert.Equal(t, size*(size-1)/2, total, "total pairings")
			for key, count := range seen {
				assert.Equal(t, 1, count, "pair %s appears more than once", key)
			}
		})
	}
}

func TestBuildRoundRobinRounds_FiveEntrants(t *testing.T) {
	ids := []string{"s1", "s2", "s3", "s4", "s5"}
	rounds := BuildRoundRobinRounds(ids)
	require.Len(t, rounds, 5)

	total := 0
	for _, round := range rounds {
		// One entrant rests each round with an odd group.
		assert.Len(t, round, 2)
		total += len(round)
	}
	assert.Equal(t, 10, total)
}
