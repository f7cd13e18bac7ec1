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
	ErrRegistrationNotFound        = errors.New("registration not found")
	ErrRegistrationCategoryInvalid = errors.New("registration category conflict or invalid")
)

type RegistrationRepository interface {
	GetByID(ctx context.Context, id string) (*models.Registration, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*models.Registration, error)
	UpdateGroupName(ctx context.Context, exec SQLExecutor, id string, groupName string) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

const registrationColumns = `id, tournament_id, category_id, pair_name, group_name, seed, ranking_number, created_at`

func (r *postgresRegistrationRepository) scanRegistration(row interface{ Scan(...interface{}) error }) (*models.Registration, error) {
	var reg models.Registration
	err := row.Scan(
		&reg.ID,
		&reg.TournamentID,
		&reg.CategoryID,
		&reg.PairName,
		&reg.GroupName,
		&reg.Seed,
		&reg.RankingNumber,
		&reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (r *postgresRegistrationRepository) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	reg, err := r.scanRegistration(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, ErrRegistrationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan registration %s: %w", id, err)
	}
	return reg, nil
}

func (r *postgresRegistrationRepository) ListByCategory(ctx context.Context, categoryID string) ([]*models.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE category_id = $1
		ORDER BY seed ASC NULLS LAST, ranking_number ASC NULLS LAST, created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations for category %s: %w", categoryID, err)
	}
	defer rows.Close()

	regs := make([]*models.Registration, 0)
	for rows.Next() {
		reg, scanErr := r.scanRegistration(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", scanErr)
		}
		regs = append(regs, reg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during registration rows iteration: %w", err)
	}
	return regs, nil
}

func (r *postgresRegistrationRepository) UpdateGroupName(ctx context.Context, exec SQLExecutor, id string, groupName string) error {
	query := `UPDATE registrations SET group_name = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, groupName, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "registrations_category_id_fkey" {
			return ErrRegistrationCategoryInvalid
		}
		return fmt.Errorf("UpdateGroupName: failed to execute query for registration %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}
