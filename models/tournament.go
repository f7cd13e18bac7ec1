package models

import "time"

// TournamentStatus represents tournament lifecycle states matching the ENUM
// in the database.
type TournamentStatus string

const (
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

type Tournament struct {
	ID     string           `json:"id" db:"id"`
	Name   string           `json:"name" db:"name"`
	Status TournamentStatus `json:"status" db:"status"`

	// GroupRoundsPerDay is the number of round-robin rounds placed on each
	// group play day when generating the calendar.
	GroupRoundsPerDay int       `json:"group_rounds_per_day" db:"group_rounds_per_day"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`

	// Related entities, populated by services when requested.
	Categories []Category `json:"categories,omitempty" db:"-"`
	Clubs      []Club     `json:"clubs,omitempty" db:"-"`
	PlayDays   []PlayDay  `json:"play_days,omitempty" db:"-"`
}

// Category is one competitive bracket of a tournament (e.g. "Men's 4th").
type Category struct {
	ID           string `json:"id" db:"id"`
	TournamentID string `json:"tournament_id" db:"tournament_id"`
	Name         string `json:"name" db:"name"`

	// QualifiersPerGroup is the default number of top finishers each group
	// sends to the playoff; per-group overrides live in qualifier_overrides.
	QualifiersPerGroup int       `json:"qualifiers_per_group" db:"qualifiers_per_group"`
	IncludeBronzeMatch bool      `json:"include_bronze_match" db:"include_bronze_match"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// Club is a venue with a fixed number of courts.
type Club struct {
	ID           string    `json:"id" db:"id"`
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	CourtCount   int       `json:"court_count" db:"court_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}

// PlayDay is one configured day of play with its time window.
type PlayDay struct {
	ID           string `json:"id" db:"id"`
	TournamentID string `json:"tournament_id" db:"tournament_id"`
	Date         string `json:"date" db:"date"`             // YYYY-MM-DD
	StartTime    string `json:"start_time" db:"start_time"` // HH:MM
	EndTime      string `json:"end_time" db:"end_time"`     // HH:MM

	MatchDurationMinutes int `json:"match_duration_minutes" db:"match_duration_minutes"`
	BreakMinutes         int `json:"break_minutes" db:"break_minutes"`
}
