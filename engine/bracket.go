package engine

// BracketMatch is one slot of a single elimination round template.
// RoundNumber is 1-based, OrderInRound 0-based within its round.
type BracketMatch struct {
	RoundNumber  int
	OrderInRound int
	TeamA        Slot
	TeamB        Slot
	IsBronze     bool
}

// NextPowerOfTwo returns the bracket size for n entrants: the smallest power
// of two that fits them all, with a minimum of one.
func NextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// BuildBracket builds the complete single elimination template for an
// ordered list of seeded entrants. Entrant slots may be byes (empty seeds);
// the list is padded with byes up to the bracket size.
//
// Round 1 pairs seed i against seed bracketSize-1-i, so the top seed meets
// the weakest qualifier. Only round 2 is pre-filled: a round-1 match with a
// single real entrant advances it immediately, a match with two entrants is
// left to be resolved by propagation, and a match with none advances nothing.
// Rounds beyond 2 start fully open.
//
// When includeBronze is set and the bracket has at least four real entrants
// and two rounds, one extra match is appended after the final round for the
// semifinal losers. It does not participate in the main round-count math.
func BuildBracket(entrants []Slot, includeBronze bool) []BracketMatch {
	bracketSize := 1
	if len(entrants) > 1 {
		bracketSize = NextPowerOfTwo(len(entrants))
	}

	seeds := make([]Slot, bracketSize)
	for i := range seeds {
		if i < len(entrants) {
			seeds[i] = entrants[i]
		} else {
			seeds[i] = Bye()
		}
	}

	totalRounds := 0
	for size := bracketSize; size > 1; size >>= 1 {
		totalRounds++
	}
	if totalRounds == 0 {
		return nil
	}

	matches := make([]BracketMatch, 0, bracketSize-1)

	firstRound := make([]BracketMatch, bracketSize/2)
	for i := 0; i < bracketSize/2; i++ {
		firstRound[i] = BracketMatch{
			RoundNumber:  1,
			OrderInRound: i,
			TeamA:        seeds[i],
			TeamB:        seeds[bracketSize-1-i],
		}
	}
	matches = append(matches, firstRound...)

	for round := 2; round <= totalRounds; round++ {
		count := bracketSize >> uint(round)
		if count < 1 {
			count = 1
		}
		for i := 0; i < count; i++ {
			matches = append(matches, BracketMatch{
				RoundNumber:  round,
				OrderInRound: i,
				TeamA:        Awaiting(),
				TeamB:        Awaiting(),
			})
		}
	}

	// Byes resolve into round 2 at generation time; everything later is the
	// propagation engine's job.
	if totalRounds >= 2 {
		for _, m := range firstRound {
			advancing, ok := byeWinner(m)
			if !ok {
				continue
			}
			target := bracketIndex(bracketSize, 2, m.OrderInRound/2)
			if m.OrderInRound%2 == 0 {
				matches[target].TeamA = Occupied(advancing)
			} else {
				matches[target].TeamB = Occupied(advancing)
			}
		}
	}

	if includeBronze && totalRounds >= 2 && countOccupied(entrants) >= 4 {
		matches = append(matches, BracketMatch{
			RoundNumber:  totalRounds + 1,
			OrderInRound: 0,
			TeamA:        Awaiting(),
			TeamB:        Awaiting(),
			IsBronze:     true,
		})
	}

	return matches
}

// byeWinner reports the single real entrant of a round-1 match, if the other
// slot is empty. Matches with two entrants have no known winner yet.
func byeWinner(m BracketMatch) (string, bool) {
	idA, okA := m.TeamA.RegistrationID()
	idB, okB := m.TeamB.RegistrationID()
	switch {
	case okA && !okB:
		return idA, true
	case okB && !okA:
		return idB, true
	}
	return "", false
}

// bracketIndex locates a match in the flat round-major layout produced by
// BuildBracket.
func bracketIndex(bracketSize, round, order int) int {
	idx := 0
	for r := 1; r < round; r++ {
		count := bracketSize >> uint(r)
		if count < 1 {
			count = 1
		}
		idx += count
	}
	return idx + order
}

func countOccupied(slots []Slot) int {
	n := 0
	for _, s := range slots {
		if s.State() == SlotOccupied {
			n++
		}
	}
	return n
}
