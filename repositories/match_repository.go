package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/padelops/tournament-engine/models"
)

var (
	ErrMatchNotFound           = errors.New("match not found")
	ErrMatchCategoryInvalid    = errors.New("match category conflict or invalid")
	ErrMatchTeamInvalid        = errors.New("match team reference conflict or invalid")
	ErrMatchSlotAlreadyCreated = errors.New("a match already occupies this bracket slot")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListByCategory(ctx context.Context, categoryID string, stage *models.Stage) ([]*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]*models.Match, error)
	UpdateScore(ctx context.Context, exec SQLExecutor, match *models.Match) error
	UpdateTeamSlot(ctx context.Context, exec SQLExecutor, matchID string, side models.Side, teamID string) error
	UpdateSchedule(ctx context.Context, exec SQLExecutor, matchID string, date, startTime, clubID string, courtNumber int) error
	DeleteByCategoryAndStage(ctx context.Context, exec SQLExecutor, tournamentID, categoryID string, stage models.Stage) (int64, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, tournament_id, category_id, stage, group_name, round_number, order_in_round,
	       team_a_id, team_b_id, scheduled_date, start_time, club_id, court_number,
	       games, winner_side, outcome_type, outcome_side, is_bronze_match, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	games, err := marshalGames(match.Games)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO matches
			(tournament_id, category_id, stage, group_name, round_number, order_in_round,
			 team_a_id, team_b_id, scheduled_date, start_time, club_id, court_number,
			 games, winner_side, outcome_type, outcome_side, is_bronze_match)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at`

	err = exec.QueryRowContext(ctx, query,
		match.TournamentID,
		match.CategoryID,
		match.Stage,
		match.GroupName,
		match.RoundNumber,
		match.OrderInRound,
		match.TeamAID,
		match.TeamBID,
		match.ScheduledDate,
		match.StartTime,
		match.ClubID,
		match.CourtNumber,
		games,
		match.WinnerSide,
		match.OutcomeType,
		match.OutcomeSide,
		match.IsBronzeMatch,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	match, err := r.scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan match %s: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByCategory(ctx context.Context, categoryID string, stage *models.Stage) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE category_id = $1`)

	args := []interface{}{categoryID}
	if stage != nil {
		queryBuilder.WriteString(" AND stage = $")
		queryBuilder.WriteString(strconv.Itoa(len(args) + 1))
		args = append(args, *stage)
	}
	queryBuilder.WriteString(" ORDER BY round_number ASC, order_in_round ASC, created_at ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for category %s: %w", categoryID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1
		ORDER BY stage ASC, round_number ASC, order_in_round ASC, created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateScore(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	games, err := marshalGames(match.Games)
	if err != nil {
		return err
	}

	query := `
		UPDATE matches
		SET games = $1, winner_side = $2, outcome_type = $3, outcome_side = $4
		WHERE id = $5`

	result, err := exec.ExecContext(ctx, query, games, match.WinnerSide, match.OutcomeType, match.OutcomeSide, match.ID)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateTeamSlot(ctx context.Context, exec SQLExecutor, matchID string, side models.Side, teamID string) error {
	column := "team_a_id"
	if side == models.SideB {
		column = "team_b_id"
	}
	query := `UPDATE matches SET ` + column + ` = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, teamID, matchID)
	if err != nil {
		return fmt.Errorf("UpdateTeamSlot: failed to execute query for match %s: %w", matchID, r.handleMatchError(err))
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateSchedule(ctx context.Context, exec SQLExecutor, matchID string, date, startTime, clubID string, courtNumber int) error {
	query := `
		UPDATE matches
		SET scheduled_date = $1, start_time = $2, club_id = $3, court_number = $4
		WHERE id = $5`
	result, err := exec.ExecContext(ctx, query, date, startTime, clubID, courtNumber, matchID)
	if err != nil {
		return fmt.Errorf("UpdateSchedule: failed to execute query for match %s: %w", matchID, r.handleMatchError(err))
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByCategoryAndStage(ctx context.Context, exec SQLExecutor, tournamentID, categoryID string, stage models.Stage) (int64, error) {
	query := `DELETE FROM matches WHERE tournament_id = $1 AND category_id = $2 AND stage = $3`
	result, err := exec.ExecContext(ctx, query, tournamentID, categoryID, stage)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s matches for category %s: %w", stage, categoryID, err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return deleted, nil
}

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var match models.Match
	var games []byte
	err := row.Scan(
		&match.ID,
		&match.TournamentID,
		&match.CategoryID,
		&match.Stage,
		&match.GroupName,
		&match.RoundNumber,
		&match.OrderInRound,
		&match.TeamAID,
		&match.TeamBID,
		&match.ScheduledDate,
		&match.StartTime,
		&match.ClubID,
		&match.CourtNumber,
		&games,
		&match.WinnerSide,
		&match.OutcomeType,
		&match.OutcomeSide,
		&match.IsBronzeMatch,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if len(games) > 0 {
		if err := json.Unmarshal(games, &match.Games); err != nil {
			return nil, fmt.Errorf("failed to decode games for match %s: %w", match.ID, err)
		}
	}
	return &match, nil
}

func marshalGames(games []models.GameScore) ([]byte, error) {
	if games == nil {
		games = []models.GameScore{}
	}
	encoded, err := json.Marshal(games)
	if err != nil {
		return nil, fmt.Errorf("failed to encode games: %w", err)
	}
	return encoded, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "matches_category_id_fkey", "matches_tournament_id_fkey":
			return ErrMatchCategoryInvalid
		case "matches_team_a_id_fkey", "matches_team_b_id_fkey":
			return ErrMatchTeamInvalid
		case "matches_playoff_slot_key":
			// Unique (category_id, stage, round_number, order_in_round) for
			// PLAYOFF rows; concurrent generation trips this instead of
			// duplicating a slot.
			return ErrMatchSlotAlreadyCreated
		}
	}
	return err
}
