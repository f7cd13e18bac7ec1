package engine

import (
	"sort"

	"github.com/padelops/tournament-engine/models"
)

// SlotUpdate instructs the caller to write a team reference into one side of
// a playoff match. Updates are only emitted for open slots, so applying them
// can never displace a real occupant.
type SlotUpdate struct {
	MatchID string
	Side    models.Side
	TeamID  string
}

// ResolveWinner determines the winning side of a match. Explicit winner_side
// takes priority; a non-PLAYED outcome resolves against the affected side;
// otherwise the side with the strict majority of sets wins. A set tie yields
// no winner.
func ResolveWinner(m models.Match) (models.Side, bool) {
	if m.WinnerSide != nil && m.WinnerSide.Valid() {
		return *m.WinnerSide, true
	}
	if m.OutcomeType != models.OutcomePlayed && m.OutcomeSide != nil && m.OutcomeSide.Valid() {
		return m.OutcomeSide.Opposite(), true
	}
	setsA, setsB, _, _ := tallyGames(m.Games)
	switch {
	case setsA > setsB:
		return models.SideA, true
	case setsB > setsA:
		return models.SideB, true
	}
	return "", false
}

// PropagateWinner computes the forward propagation of one completed playoff
// match: the winner is written into the next round's match at position
// order/2, side A for even orders and side B for odd. It returns nil when
// there is nothing to do — no determinable winner, the match is the final or
// the bronze match, or the target slot already holds a real occupant
// (re-running after a successful propagation is a no-op).
func PropagateWinner(playoffs []models.Match, updated models.Match) *SlotUpdate {
	if updated.Stage != models.StagePlayoff || updated.IsBronzeMatch {
		return nil
	}
	winnerSide, ok := ResolveWinner(updated)
	if !ok {
		return nil
	}
	winnerRef := updated.TeamID(winnerSide)
	winnerSlot := SlotFromStored(winnerRef)
	winnerID, ok := winnerSlot.RegistrationID()
	if !ok {
		return nil
	}

	rounds := indexRounds(playoffs)
	order := positionInRound(rounds[updated.RoundNumber], updated.ID)
	if order < 0 {
		return nil
	}
	next := rounds[updated.RoundNumber+1]
	targetPos := order / 2
	if targetPos >= len(next) {
		return nil
	}
	target := next[targetPos]

	side := models.SideA
	if order%2 == 1 {
		side = models.SideB
	}
	current := SlotFromStored(target.TeamID(side))
	if !current.Open() {
		return nil
	}
	return &SlotUpdate{MatchID: target.ID, Side: side, TeamID: winnerID}
}

// PropagateBronze recomputes the bronze match slots from the semifinal
// losers: the first semifinal's loser goes to side A, the second's to side B.
// Slots already holding a real occupant are left untouched. Without a bronze
// match, at least two bracket rounds, or any resolvable semifinal loser it
// returns nothing.
func PropagateBronze(playoffs []models.Match) []SlotUpdate {
	var bronze *models.Match
	finalRound := 0
	for i := range playoffs {
		m := playoffs[i]
		if m.Stage != models.StagePlayoff {
			continue
		}
		if m.IsBronzeMatch {
			bronze = &playoffs[i]
			continue
		}
		if m.RoundNumber > finalRound {
			finalRound = m.RoundNumber
		}
	}
	if bronze == nil || finalRound < 2 {
		return nil
	}

	semis := indexRounds(playoffs)[finalRound-1]
	if len(semis) > 2 {
		semis = semis[:2]
	}

	sides := [2]models.Side{models.SideA, models.SideB}
	var updates []SlotUpdate
	for i, semi := range semis {
		winnerSide, ok := ResolveWinner(semi)
		if !ok {
			continue
		}
		loserSlot := SlotFromStored(semi.TeamID(winnerSide.Opposite()))
		loserID, ok := loserSlot.RegistrationID()
		if !ok {
			continue
		}
		current := SlotFromStored(bronze.TeamID(sides[i]))
		if !current.Open() {
			continue
		}
		updates = append(updates, SlotUpdate{MatchID: bronze.ID, Side: sides[i], TeamID: loserID})
	}
	return updates
}

// indexRounds buckets the main-bracket matches by round, each round ordered
// by the persisted order_in_round with creation time and id as stable
// fallbacks for legacy rows.
func indexRounds(playoffs []models.Match) map[int][]models.Match {
	rounds := make(map[int][]models.Match)
	for _, m := range playoffs {
		if m.Stage != models.StagePlayoff || m.IsBronzeMatch {
			continue
		}
		rounds[m.RoundNumber] = append(rounds[m.RoundNumber], m)
	}
	for n := range rounds {
		round := rounds[n]
		sort.SliceStable(round, func(i, j int) bool {
			if round[i].OrderInRound != round[j].OrderInRound {
				return round[i].OrderInRound < round[j].OrderInRound
			}
			if !round[i].CreatedAt.Equal(round[j].CreatedAt) {
				return round[i].CreatedAt.Before(round[j].CreatedAt)
			}
			return round[i].ID < round[j].ID
		})
		rounds[n] = round
	}
	return rounds
}

func positionInRound(round []models.Match, matchID string) int {
	for i, m := range round {
		if m.ID == matchID {
			return i
		}
	}
	return -1
}
