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

// BracketService generates the single elimination playoff of a category.
type BracketService struct {
	db               *sql.DB
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	standings        *StandingsService
	logger           *slog.Logger
}

func NewBracketService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	standings *StandingsService,
	logger *slog.Logger,
) *BracketService {
	return &BracketService{
		db:               db,
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		standings:        standings,
		logger:           logger,
	}
}

// GeneratePlayoffs builds the playoff bracket for a category. Entrants come
// from the group standings when the category played a group stage, otherwise
// directly from the registrations in seed order. It refuses to touch an
// already generated bracket; use RegeneratePlayoffs for that.
func (s *BracketService) GeneratePlayoffs(ctx context.Context, categoryID string) ([]*models.Match, error) {
	category, err := s.tournamentRepo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	stage := models.StagePlayoff
	existing, err := s.matchRepo.ListByCategory(ctx, categoryID, &stage)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrPlayoffsAlreadyExist
	}

	entrants, err := s.seededEntrants(ctx, category)
	if err != nil {
		return nil, err
	}

	var created []*models.Match
	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		created, err = s.createBracket(ctx, tx, category, entrants)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "playoff bracket generated",
		"category_id", categoryID, "entrants", len(entrants), "matches", len(created))
	return created, nil
}

// RegeneratePlayoffs deletes the existing bracket and builds a fresh one from
// the current standings, in one transaction.
func (s *BracketService) RegeneratePlayoffs(ctx context.Context, categoryID string) ([]*models.Match, error) {
	category, err := s.tournamentRepo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	entrants, err := s.seededEntrants(ctx, category)
	if err != nil {
		return nil, err
	}

	var created []*models.Match
	var deleted int64
	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		deleted, err = s.matchRepo.DeleteByCategoryAndStage(ctx, tx, category.TournamentID, categoryID, models.StagePlayoff)
		if err != nil {
			return err
		}
		created, err = s.createBracket(ctx, tx, category, entrants)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "playoff bracket regenerated",
		"category_id", categoryID, "deleted", deleted, "created", len(created))
	return created, nil
}

// seededEntrants returns the playoff entrant ids in seeding order.
func (s *BracketService) seededEntrants(ctx context.Context, category *models.Category) ([]string, error) {
	stage := models.StageGroup
	groupMatches, err := s.matchRepo.ListByCategory(ctx, category.ID, &stage)
	if err != nil {
		return nil, err
	}

	if len(groupMatches) > 0 {
		qualifiers, err := s.standings.Qualifiers(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		if len(qualifiers) == 0 {
			return nil, ErrNoQualifiers
		}
		if len(qualifiers) < 2 {
			return nil, ErrNotEnoughEntrants
		}
		return qualifiers, nil
	}

	// No group stage: the playoff is seeded straight from the registrations,
	// which the repository already orders by seed.
	regs, err := s.registrationRepo.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	if len(regs) < 2 {
		return nil, ErrNotEnoughEntrants
	}
	ids := make([]string, len(regs))
	for i, reg := range regs {
		ids[i] = reg.ID
	}
	return ids, nil
}

func (s *BracketService) createBracket(ctx context.Context, tx *sql.Tx, category *models.Category, entrantIDs []string) ([]*models.Match, error) {
	entrants := make([]engine.Slot, len(entrantIDs))
	for i, id := range entrantIDs {
		entrants[i] = engine.Occupied(id)
	}

	template := engine.BuildBracket(entrants, category.IncludeBronzeMatch)

	created := make([]*models.Match, 0, len(template))
	for _, bm := range template {
		match := &models.Match{
			TournamentID:  category.TournamentID,
			CategoryID:    category.ID,
			Stage:         models.StagePlayoff,
			RoundNumber:   bm.RoundNumber,
			OrderInRound:  bm.OrderInRound,
			TeamAID:       storedSlot(bm.TeamA),
			TeamBID:       storedSlot(bm.TeamB),
			OutcomeType:   models.OutcomePlayed,
			IsBronzeMatch: bm.IsBronze,
		}
		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			return nil, fmt.Errorf("failed to create playoff match r%d/%d: %w", bm.RoundNumber, bm.OrderInRound, err)
		}
		created = append(created, match)
	}
	return created, nil
}

// storedSlot converts a bracket slot to its persisted form. Only occupied
// slots carry a reference; byes and awaiting slots are stored as NULL.
func storedSlot(slot engine.Slot) *string {
	if id, ok := slot.RegistrationID(); ok {
		return &id
	}
	return nil
}
