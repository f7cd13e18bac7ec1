package engine

// Pairing is one fixture of a round-robin round.
type Pairing struct {
	TeamAID string
	TeamBID string
}

// byeMarker pads odd-sized groups inside the circle method. Pairings
// involving it are dropped from the output.
const byeMarker = "\x00bye"

// BuildRoundRobinRounds produces the round-labeled pairings for one group.
// The input must already be ordered (lower seed first). Groups of fewer than
// two entrants produce no rounds; a group of two plays a single round.
//
// A group of four keeps the hand-authored club schedule (1v3 / 4v2, then
// 1v2 / 3v4, then 1v4 / 2v3) which differs from the circle method's natural
// output order and is relied upon by existing fixtures.
func BuildRoundRobinRounds(teamIDs []string) [][]Pairing {
	switch len(teamIDs) {
	case 0, 1:
		return nil
	case 2:
		return [][]Pairing{{{TeamAID: teamIDs[0], TeamBID: teamIDs[1]}}}
	case 4:
		a, b, c, d := teamIDs[0], teamIDs[1], teamIDs[2], teamIDs[3]
		return [][]Pairing{
			{{TeamAID: a, TeamBID: c}, {TeamAID: d, TeamBID: b}},
			{{TeamAID: a, TeamBID: b}, {TeamAID: c, TeamBID: d}},
			{{TeamAID: a, TeamBID: d}, {TeamAID: b, TeamBID: c}},
		}
	}

	ids := make([]string, len(teamIDs), len(teamIDs)+1)
	copy(ids, teamIDs)
	if len(ids)%2 == 1 {
		ids = append(ids, byeMarker)
	}

	n := len(ids)
	rounds := make([][]Pairing, 0, n-1)
	for round := 0; round < n-1; round++ {
		pairs := make([]Pairing, 0, n/2)
		for i := 0; i < n/2; i++ {
			a, b := ids[i], ids[n-1-i]
			if a == byeMarker || b == byeMarker {
				continue
			}
			pairs = append(pairs, Pairing{TeamAID: a, TeamBID: b})
		}
		rounds = append(rounds, pairs)

		// Circle method: the first element stays fixed, the rest rotate by
		// moving the last element to the front.
		rest := ids[1:]
		last := rest[len(rest)-1]
		copy(rest[1:], rest[:len(rest)-1])
		rest[0] = last
	}
	return rounds
}
