package engine

import (
	"sort"

	"github.com/padelops/tournament-engine/models"
)

type qualifier struct {
	entry    StandingEntry
	position int
	group    string
}

// SelectQualifiers takes the top finishers of every group and orders them for
// bracket seeding: all group winners first, then all runners-up, and so on.
// Ties within the same position fall back to the standings comparator, then
// to the group label. Combined with the mirrored round-1 pairing of
// BuildBracket this yields the best-vs-worst cross-group seeding.
//
// counts overrides the qualifier count per group label; defaultCount applies
// elsewhere. Both are clamped to a minimum of one.
func SelectQualifiers(standings map[string][]StandingEntry, counts map[string]int, defaultCount int, order []models.TiebreakRule) []string {
	if defaultCount < 1 {
		defaultCount = 1
	}

	groups := make([]string, 0, len(standings))
	for name := range standings {
		groups = append(groups, name)
	}
	sort.Strings(groups)

	picked := make([]qualifier, 0)
	for _, name := range groups {
		count := defaultCount
		if override, ok := counts[name]; ok {
			count = override
		}
		if count < 1 {
			count = 1
		}
		table := standings[name]
		if count > len(table) {
			count = len(table)
		}
		for pos := 0; pos < count; pos++ {
			picked = append(picked, qualifier{entry: table[pos], position: pos, group: name})
		}
	}

	sort.SliceStable(picked, func(i, j int) bool {
		if picked[i].position != picked[j].position {
			return picked[i].position < picked[j].position
		}
		if c := CompareStandings(picked[i].entry, picked[j].entry, order); c != 0 {
			return c < 0
		}
		return picked[i].group < picked[j].group
	})

	ids := make([]string, len(picked))
	for i, q := range picked {
		ids[i] = q.entry.RegistrationID
	}
	return ids
}
