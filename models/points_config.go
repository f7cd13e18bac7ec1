package models

// TiebreakRule identifies one metric of the group standings tiebreak chain.
type TiebreakRule string

const (
	TiebreakSetsDiff       TiebreakRule = "SETS_DIFF"
	TiebreakMatchesWon     TiebreakRule = "MATCHES_WON"
	TiebreakPointsPerMatch TiebreakRule = "POINTS_PER_MATCH"
	TiebreakPointsDiff     TiebreakRule = "POINTS_DIFF"
)

// DefaultTiebreakOrder returns a fresh copy of the canonical rule order.
// Callers may reorder their copy freely; the default itself is never shared.
func DefaultTiebreakOrder() []TiebreakRule {
	return []TiebreakRule{
		TiebreakSetsDiff,
		TiebreakMatchesWon,
		TiebreakPointsPerMatch,
		TiebreakPointsDiff,
	}
}

// NormalizeTiebreakers validates a stored rule order. The order is only
// accepted when it contains each of the four rules exactly once; any invalid,
// partial or duplicated input resets to the canonical default. The result is
// always a fresh slice.
func NormalizeTiebreakers(rules []TiebreakRule) []TiebreakRule {
	if len(rules) != 4 {
		return DefaultTiebreakOrder()
	}
	seen := make(map[TiebreakRule]bool, 4)
	for _, rule := range rules {
		switch rule {
		case TiebreakSetsDiff, TiebreakMatchesWon, TiebreakPointsPerMatch, TiebreakPointsDiff:
		default:
			return DefaultTiebreakOrder()
		}
		if seen[rule] {
			return DefaultTiebreakOrder()
		}
		seen[rule] = true
	}
	out := make([]TiebreakRule, len(rules))
	copy(out, rules)
	return out
}

// GroupPointsConfig is the tournament-wide scoring rule set for group play.
// One config per tournament, applied to every group category.
type GroupPointsConfig struct {
	TournamentID string `json:"tournament_id" db:"tournament_id"`

	// WinWithoutGameLossPoints rewards a clean win (loser took no set),
	// WinPoints a win where the loser took at least one set.
	// LossWithGameWinPoints rewards a loss where the loser still won a set,
	// LossPoints a clean loss.
	WinPoints                int `json:"win_points" db:"win_points"`
	WinWithoutGameLossPoints int `json:"win_without_game_loss_points" db:"win_without_game_loss_points"`
	LossWithGameWinPoints    int `json:"loss_with_game_win_points" db:"loss_with_game_win_points"`
	LossPoints               int `json:"loss_points" db:"loss_points"`

	Tiebreakers []TiebreakRule `json:"tiebreakers" db:"tiebreakers"`
}

// DefaultGroupPointsConfig is used when a tournament has no stored config.
func DefaultGroupPointsConfig() GroupPointsConfig {
	return GroupPointsConfig{
		WinPoints:                2,
		WinWithoutGameLossPoints: 3,
		LossWithGameWinPoints:    1,
		LossPoints:               0,
		Tiebreakers:              DefaultTiebreakOrder(),
	}
}
