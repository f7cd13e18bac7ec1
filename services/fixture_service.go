package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/padelops/tournament-engine/engine"
	"github.com/padelops/tournament-engine/models"
	"github.com/padelops/tournament-engine/repositories"
)

// FixtureService generates and maintains the round-robin group stage of a
// category.
type FixtureService struct {
	db               *sql.DB
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	logger           *slog.Logger
}

func NewFixtureService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) *FixtureService {
	return &FixtureService{
		db:               db,
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		logger:           logger,
	}
}

// GroupAssignment reassigns one registration to a group label.
type GroupAssignment struct {
	RegistrationID string  `json:"registration_id"`
	GroupName      *string `json:"group_name"`
}

// SaveGroupDraw bulk-updates group labels for a category's registrations.
// Labels are normalized (blank becomes "A", 20 character cap) and every
// registration must belong to the category.
func (s *FixtureService) SaveGroupDraw(ctx context.Context, categoryID string, assignments []GroupAssignment) error {
	regs, err := s.registrationRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(regs))
	for _, reg := range regs {
		known[reg.ID] = true
	}
	for _, a := range assignments {
		if !known[a.RegistrationID] {
			return fmt.Errorf("%w: %s", ErrDrawRegistrationStray, a.RegistrationID)
		}
	}

	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, a := range assignments {
			name := models.NormalizeGroupName(a.GroupName)
			if err := s.registrationRepo.UpdateGroupName(ctx, tx, a.RegistrationID, name); err != nil {
				return err
			}
		}
		return nil
	})
}

// GenerateGroupMatches creates the missing round-robin matches of every group
// in the category. Pairs that already have a match are skipped, so the call
// is idempotent and safe to repeat after adding late registrations.
func (s *FixtureService) GenerateGroupMatches(ctx context.Context, categoryID string) ([]*models.Match, error) {
	category, err := s.tournamentRepo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	regs, err := s.registrationRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(regs) < 2 {
		return nil, ErrNotEnoughEntrants
	}

	stage := models.StageGroup
	existing, err := s.matchRepo.ListByCategory(ctx, categoryID, &stage)
	if err != nil {
		return nil, err
	}
	existingPairs := make(map[string]bool, len(existing))
	for _, m := range existing {
		if m.TeamAID == nil || m.TeamBID == nil {
			continue
		}
		existingPairs[pairKey(derefString(m.GroupName), *m.TeamAID, *m.TeamBID)] = true
	}

	var created []*models.Match
	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		created, err = s.createGroupMatches(ctx, tx, category, regs, existingPairs)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "group matches generated",
		"category_id", categoryID, "created", len(created), "skipped_existing", len(existingPairs))
	return created, nil
}

// RegenerateGroupMatches wipes the category's group stage and rebuilds it
// from the current draw, all in one transaction.
func (s *FixtureService) RegenerateGroupMatches(ctx context.Context, categoryID string) ([]*models.Match, error) {
	category, err := s.tournamentRepo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	regs, err := s.registrationRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(regs) < 2 {
		return nil, ErrNotEnoughEntrants
	}

	var created []*models.Match
	var deleted int64
	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		deleted, err = s.matchRepo.DeleteByCategoryAndStage(ctx, tx, category.TournamentID, categoryID, models.StageGroup)
		if err != nil {
			return err
		}
		created, err = s.createGroupMatches(ctx, tx, category, regs, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "group matches regenerated",
		"category_id", categoryID, "deleted", deleted, "created", len(created))
	return created, nil
}

func (s *FixtureService) createGroupMatches(
	ctx context.Context,
	tx *sql.Tx,
	category *models.Category,
	regs []*models.Registration,
	existingPairs map[string]bool,
) ([]*models.Match, error) {
	byGroup, names := groupRegistrations(regs)

	var created []*models.Match
	for _, name := range names {
		rounds := engine.BuildRoundRobinRounds(byGroup[name])
		for roundIdx, round := range rounds {
			for orderIdx, pairing := range round {
				if existingPairs[pairKey(name, pairing.TeamAID, pairing.TeamBID)] {
					continue
				}
				groupName := name
				teamA, teamB := pairing.TeamAID, pairing.TeamBID
				match := &models.Match{
					TournamentID: category.TournamentID,
					CategoryID:   category.ID,
					Stage:        models.StageGroup,
					GroupName:    &groupName,
					RoundNumber:  roundIdx + 1,
					OrderInRound: orderIdx,
					TeamAID:      &teamA,
					TeamBID:      &teamB,
					OutcomeType:  models.OutcomePlayed,
				}
				if err := s.matchRepo.Create(ctx, tx, match); err != nil {
					return nil, fmt.Errorf("failed to create group match %s vs %s: %w", teamA, teamB, err)
				}
				created = append(created, match)
			}
		}
	}
	return created, nil
}
