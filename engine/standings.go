package engine

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/padelops/tournament-engine/models"
)

// StandingEntry is the per-registration accumulator of one group table. It is
// rebuilt from scratch on every computation, never mutated incrementally
// across calls.
type StandingEntry struct {
	RegistrationID string `json:"registration_id"`
	GroupName      string `json:"group_name"`

	Points      int `json:"points"`
	MatchesWon  int `json:"matches_won"`
	MatchesLost int `json:"matches_lost"`
	SetsWon     int `json:"sets_won"`
	SetsLost    int `json:"sets_lost"`
	PointsWon   int `json:"points_won"`
	PointsLost  int `json:"points_lost"`

	// Tiebreakers of last resort, copied from the registration.
	Seed          *int      `json:"seed,omitempty"`
	RankingNumber *int      `json:"ranking_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SetsDiff is the first-choice tiebreak metric.
func (e StandingEntry) SetsDiff() int { return e.SetsWon - e.SetsLost }

// PointsDiff is the last tiebreak metric of the default chain.
func (e StandingEntry) PointsDiff() int { return e.PointsWon - e.PointsLost }

// ComputeStandings folds all completed GROUP matches of a category into one
// ordered standings table per group label. Matches missing a team reference
// or referencing unknown registrations contribute nothing.
func ComputeStandings(regs []models.Registration, matches []models.Match, cfg models.GroupPointsConfig) map[string][]StandingEntry {
	entries := make(map[string]*StandingEntry, len(regs))
	for _, reg := range regs {
		entries[reg.ID] = &StandingEntry{
			RegistrationID: reg.ID,
			GroupName:      models.NormalizeGroupName(reg.GroupName),
			Seed:           reg.Seed,
			RankingNumber:  reg.RankingNumber,
			CreatedAt:      reg.CreatedAt,
		}
	}

	for _, m := range matches {
		if m.Stage != models.StageGroup {
			continue
		}
		if m.TeamAID == nil || m.TeamBID == nil {
			continue
		}
		a := entries[*m.TeamAID]
		b := entries[*m.TeamBID]
		if a == nil || b == nil {
			continue
		}
		accumulateMatch(a, b, m, cfg)
	}

	order := models.NormalizeTiebreakers(cfg.Tiebreakers)
	groups := make(map[string][]StandingEntry)
	for _, entry := range entries {
		groups[entry.GroupName] = append(groups[entry.GroupName], *entry)
	}
	for name := range groups {
		table := groups[name]
		sort.Slice(table, func(i, j int) bool {
			return CompareStandings(table[i], table[j], order) < 0
		})
		groups[name] = table
	}
	return groups
}

func accumulateMatch(a, b *StandingEntry, m models.Match, cfg models.GroupPointsConfig) {
	if m.OutcomeType != models.OutcomePlayed {
		// OutcomeSide names who forfeited or retired, i.e. the loser. When it
		// is absent the bare WinnerSide is used directly, unflipped.
		var winnerSide models.Side
		switch {
		case m.OutcomeSide != nil:
			winnerSide = m.OutcomeSide.Opposite()
		case m.WinnerSide != nil:
			winnerSide = *m.WinnerSide
		default:
			return
		}
		winner, loser := bySide(a, b, winnerSide)
		winner.MatchesWon++
		winner.Points += cfg.WinWithoutGameLossPoints
		loser.MatchesLost++
		loser.Points += cfg.LossPoints
		return
	}

	setsA, setsB, ptsA, ptsB := tallyGames(m.Games)
	if setsA == setsB {
		// No conclusive set data. Legacy fallback: a bare winner_side still
		// awards plain win/loss points with no set bookkeeping. Kept as-is,
		// it intentionally ignores the tiered win/loss values.
		if m.WinnerSide != nil {
			winner, loser := bySide(a, b, *m.WinnerSide)
			winner.MatchesWon++
			winner.Points += cfg.WinPoints
			loser.MatchesLost++
			loser.Points += cfg.LossPoints
		}
		return
	}

	a.SetsWon += setsA
	a.SetsLost += setsB
	a.PointsWon += ptsA
	a.PointsLost += ptsB
	b.SetsWon += setsB
	b.SetsLost += setsA
	b.PointsWon += ptsB
	b.PointsLost += ptsA

	winner, loser := a, b
	loserSets := setsB
	if setsB > setsA {
		winner, loser = b, a
		loserSets = setsA
	}
	winner.MatchesWon++
	loser.MatchesLost++
	if loserSets == 0 {
		winner.Points += cfg.WinWithoutGameLossPoints
	} else {
		winner.Points += cfg.WinPoints
	}
	if loserSets >= 1 {
		loser.Points += cfg.LossWithGameWinPoints
	} else {
		loser.Points += cfg.LossPoints
	}
}

func bySide(a, b *StandingEntry, winner models.Side) (*StandingEntry, *StandingEntry) {
	if winner == models.SideA {
		return a, b
	}
	return b, a
}

// tallyGames sums sets and rally points for both sides, skipping malformed
// entries (negative scores).
func tallyGames(games []models.GameScore) (setsA, setsB, ptsA, ptsB int) {
	for _, g := range games {
		if g.A < 0 || g.B < 0 {
			continue
		}
		ptsA += g.A
		ptsB += g.B
		switch {
		case g.A > g.B:
			setsA++
		case g.B > g.A:
			setsB++
		}
	}
	return setsA, setsB, ptsA, ptsB
}

// CompareStandings orders two entries under the given tiebreak chain. It
// returns a negative value when a ranks ahead of b. The order is total: after
// the configured metrics it falls back to the lower seed (then ranking
// number), the earlier registration and finally the id, so two distinct
// entries never compare equal.
func CompareStandings(a, b StandingEntry, order []models.TiebreakRule) int {
	for _, rule := range order {
		var diff int
		switch rule {
		case models.TiebreakSetsDiff:
			diff = a.SetsDiff() - b.SetsDiff()
		case models.TiebreakMatchesWon:
			diff = a.MatchesWon - b.MatchesWon
		case models.TiebreakPointsPerMatch:
			diff = a.Points - b.Points
		case models.TiebreakPointsDiff:
			diff = a.PointsDiff() - b.PointsDiff()
		}
		if diff > 0 {
			return -1
		}
		if diff < 0 {
			return 1
		}
	}

	if ra, rb := seedRank(a), seedRank(b); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		if a.CreatedAt.Before(b.CreatedAt) {
			return -1
		}
		return 1
	}
	return strings.Compare(a.RegistrationID, b.RegistrationID)
}

func seedRank(e StandingEntry) int {
	if e.Seed != nil {
		return *e.Seed
	}
	if e.RankingNumber != nil {
		return *e.RankingNumber
	}
	return math.MaxInt
}
