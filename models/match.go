package models

import "time"

// Stage separates the two phases of a category: round-robin groups and the
// single elimination playoff.
type Stage string

const (
	StageGroup   Stage = "GROUP"
	StagePlayoff Stage = "PLAYOFF"
)

func (s Stage) Valid() bool {
	return s == StageGroup || s == StagePlayoff
}

type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

func (s Side) Opposite() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// OutcomeType describes how a match was resolved. OutcomeSide on the match
// always names the affected (losing) side when the outcome is not PLAYED.
type OutcomeType string

const (
	OutcomePlayed   OutcomeType = "PLAYED"
	OutcomeWalkover OutcomeType = "WALKOVER"
	OutcomeInjury   OutcomeType = "INJURY"
)

func (o OutcomeType) Valid() bool {
	return o == OutcomePlayed || o == OutcomeWalkover || o == OutcomeInjury
}

// MaxGamesPerMatch caps the games list on score entry (best of five).
const MaxGamesPerMatch = 5

// GameScore is one set of a match as entered by the organizer.
type GameScore struct {
	A               int  `json:"a"`
	B               int  `json:"b"`
	DurationMinutes *int `json:"duration_minutes,omitempty"`
}

type Match struct {
	ID           string  `json:"id" db:"id"`
	TournamentID string  `json:"tournament_id" db:"tournament_id"`
	CategoryID   string  `json:"category_id" db:"category_id"`
	Stage        Stage   `json:"stage" db:"stage"`
	GroupName    *string `json:"group_name,omitempty" db:"group_name"`

	// RoundNumber is 1-based: the round-robin round for GROUP matches, the
	// bracket round for PLAYOFF matches. OrderInRound is 0-based and is
	// persisted at generation time so propagation never has to re-derive a
	// match's position from creation order.
	RoundNumber  int `json:"round_number" db:"round_number"`
	OrderInRound int `json:"order_in_round" db:"order_in_round"`

	// Team references are nil while a bracket slot is still unresolved.
	TeamAID *string `json:"team_a_id,omitempty" db:"team_a_id"`
	TeamBID *string `json:"team_b_id,omitempty" db:"team_b_id"`

	ScheduledDate *string `json:"scheduled_date,omitempty" db:"scheduled_date"` // YYYY-MM-DD
	StartTime     *string `json:"start_time,omitempty" db:"start_time"`         // HH:MM
	ClubID        *string `json:"club_id,omitempty" db:"club_id"`
	CourtNumber   *int    `json:"court_number,omitempty" db:"court_number"`

	Games       []GameScore `json:"games" db:"games"`
	WinnerSide  *Side       `json:"winner_side,omitempty" db:"winner_side"`
	OutcomeType OutcomeType `json:"outcome_type" db:"outcome_type"`
	OutcomeSide *Side       `json:"outcome_side,omitempty" db:"outcome_side"`

	IsBronzeMatch bool      `json:"is_bronze_match" db:"is_bronze_match"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// TeamID returns the registration reference for the given side.
func (m *Match) TeamID(side Side) *string {
	if side == SideA {
		return m.TeamAID
	}
	return m.TeamBID
}
