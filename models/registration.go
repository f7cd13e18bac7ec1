package models

import (
	"strings"
	"time"
)

const (
	// DefaultGroupName is assigned when a registration has no explicit group.
	DefaultGroupName = "A"
	// MaxGroupNameLength caps explicitly set group labels.
	MaxGroupNameLength = 20
)

// Registration is a pair (or single player) entered in one category.
type Registration struct {
	ID           string  `json:"id" db:"id"`
	TournamentID string  `json:"tournament_id" db:"tournament_id"`
	CategoryID   string  `json:"category_id" db:"category_id"`
	PairName     string  `json:"pair_name" db:"pair_name"`
	GroupName    *string `json:"group_name,omitempty" db:"group_name"`

	// Seed orders entrants before pairing, lower is better. RankingNumber is
	// the fallback ordering key when no seed was assigned.
	Seed          *int      `json:"seed,omitempty" db:"seed"`
	RankingNumber *int      `json:"ranking_number,omitempty" db:"ranking_number"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// NormalizeGroupName trims the label, falls back to DefaultGroupName when it
// is blank and caps it at MaxGroupNameLength. Always returns a fresh value.
func NormalizeGroupName(name *string) string {
	if name == nil {
		return DefaultGroupName
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return DefaultGroupName
	}
	if len(trimmed) > MaxGroupNameLength {
		trimmed = trimmed[:MaxGroupNameLength]
	}
	return trimmed
}
