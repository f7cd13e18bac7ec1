package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/padelops/tournament-engine/models"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrCategoryNotFound   = errors.New("category not found")
)

type TournamentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	GetCategory(ctx context.Context, categoryID string) (*models.Category, error)
	GetPointsConfig(ctx context.Context, tournamentID string) (models.GroupPointsConfig, error)
	ListQualifierOverrides(ctx context.Context, categoryID string) (map[string]int, error)
	ListPlayDays(ctx context.Context, tournamentID string) ([]models.PlayDay, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `
		SELECT id, name, status, group_rounds_per_day, created_at
		FROM tournaments
		WHERE id = $1`

	var t models.Tournament
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.Name,
		&t.Status,
		&t.GroupRoundsPerDay,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament %s: %w", id, err)
	}
	return &t, nil
}

func (r *postgresTournamentRepository) GetCategory(ctx context.Context, categoryID string) (*models.Category, error) {
	query := `
		SELECT id, tournament_id, name, qualifiers_per_group, include_bronze_match, created_at
		FROM categories
		WHERE id = $1`

	var c models.Category
	err := r.db.QueryRowContext(ctx, query, categoryID).Scan(
		&c.ID,
		&c.TournamentID,
		&c.Name,
		&c.QualifiersPerGroup,
		&c.IncludeBronzeMatch,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to scan category %s: %w", categoryID, err)
	}
	return &c, nil
}

// GetPointsConfig returns the stored scoring config for a tournament, or the
// default config when none is stored. The tiebreak order is normalized on the
// way out so stale rows can never leak an invalid chain.
func (r *postgresTournamentRepository) GetPointsConfig(ctx context.Context, tournamentID string) (models.GroupPointsConfig, error) {
	query := `
		SELECT tournament_id, win_points, win_without_game_loss_points,
		       loss_with_game_win_points, loss_points, tiebreakers
		FROM group_points_configs
		WHERE tournament_id = $1`

	var cfg models.GroupPointsConfig
	var tiebreakers []string
	err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(
		&cfg.TournamentID,
		&cfg.WinPoints,
		&cfg.WinWithoutGameLossPoints,
		&cfg.LossWithGameWinPoints,
		&cfg.LossPoints,
		pq.Array(&tiebreakers),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			def := models.DefaultGroupPointsConfig()
			def.TournamentID = tournamentID
			return def, nil
		}
		return models.GroupPointsConfig{}, fmt.Errorf("failed to scan points config for tournament %s: %w", tournamentID, err)
	}

	rules := make([]models.TiebreakRule, len(tiebreakers))
	for i, s := range tiebreakers {
		rules[i] = models.TiebreakRule(s)
	}
	cfg.Tiebreakers = models.NormalizeTiebreakers(rules)
	return cfg, nil
}

// ListQualifierOverrides returns per-group qualifier counts keyed by group
// name. Groups without an override are absent from the map.
func (r *postgresTournamentRepository) ListQualifierOverrides(ctx context.Context, categoryID string) (map[string]int, error) {
	query := `
		SELECT group_name, qualifier_count
		FROM qualifier_overrides
		WHERE category_id = $1`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query qualifier overrides for category %s: %w", categoryID, err)
	}
	defer rows.Close()

	overrides := make(map[string]int)
	for rows.Next() {
		var group string
		var count int
		if err := rows.Scan(&group, &count); err != nil {
			return nil, fmt.Errorf("failed to scan qualifier override row: %w", err)
		}
		overrides[group] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during qualifier override rows iteration: %w", err)
	}
	return overrides, nil
}

func (r *postgresTournamentRepository) ListPlayDays(ctx context.Context, tournamentID string) ([]models.PlayDay, error) {
	query := `
		SELECT id, tournament_id, date, start_time, end_time, match_duration_minutes, break_minutes
		FROM play_days
		WHERE tournament_id = $1
		ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query play days for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	days := make([]models.PlayDay, 0)
	for rows.Next() {
		var d models.PlayDay
		if err := rows.Scan(&d.ID, &d.TournamentID, &d.Date, &d.StartTime, &d.EndTime, &d.MatchDurationMinutes, &d.BreakMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan play day row: %w", err)
		}
		days = append(days, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during play day rows iteration: %w", err)
	}
	return days, nil
}
