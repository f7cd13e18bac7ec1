package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/padelops/tournament-engine/models"
)

var ErrClubNotFound = errors.New("club not found")

type ClubRepository interface {
	GetByID(ctx context.Context, id string) (*models.Club, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Club, error)
	UpdateLogoKey(ctx context.Context, clubID string, logoKey *string) error
}

type postgresClubRepository struct {
	db *sql.DB
}

func NewPostgresClubRepository(db *sql.DB) ClubRepository {
	return &postgresClubRepository{db: db}
}

const clubColumns = `id, tournament_id, name, court_count, logo_key, created_at`

func (r *postgresClubRepository) scanClub(row interface{ Scan(...interface{}) error }) (*models.Club, error) {
	var club models.Club
	err := row.Scan(
		&club.ID,
		&club.TournamentID,
		&club.Name,
		&club.CourtCount,
		&club.LogoKey,
		&club.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &club, nil
}

func (r *postgresClubRepository) GetByID(ctx context.Context, id string) (*models.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE id = $1`
	club, err := r.scanClub(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, ErrClubNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan club %s: %w", id, err)
	}
	return club, nil
}

func (r *postgresClubRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE tournament_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clubs for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	clubs := make([]models.Club, 0)
	for rows.Next() {
		club, scanErr := r.scanClub(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan club row: %w", scanErr)
		}
		clubs = append(clubs, *club)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during club rows iteration: %w", err)
	}
	return clubs, nil
}

func (r *postgresClubRepository) UpdateLogoKey(ctx context.Context, clubID string, logoKey *string) error {
	query := `UPDATE clubs SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, clubID)
	if err != nil {
		return fmt.Errorf("UpdateLogoKey: failed to execute query for club %s: %w", clubID, err)
	}
	return checkAffectedRows(result, ErrClubNotFound)
}
