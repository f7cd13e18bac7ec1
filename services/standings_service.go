package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/padelops/tournament-engine/engine"
	"github.com/padelops/tournament-engine/models"
	"github.com/padelops/tournament-engine/repositories"
)

// StandingsService exposes the group tables and the qualifier list of a
// category. Both are always recomputed from the stored matches, never cached.
type StandingsService struct {
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
) *StandingsService {
	return &StandingsService{
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
	}
}

type categorySnapshot struct {
	category      *models.Category
	registrations []models.Registration
	groupMatches  []models.Match
	config        models.GroupPointsConfig
}

// loadSnapshot reads everything a standings computation needs. The three
// reads after the category lookup are independent and run in parallel.
func (s *StandingsService) loadSnapshot(ctx context.Context, categoryID string) (*categorySnapshot, error) {
	category, err := s.tournamentRepo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	snap := &categorySnapshot{category: category}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		regs, err := s.registrationRepo.ListByCategory(gctx, categoryID)
		if err != nil {
			return fmt.Errorf("failed to load registrations: %w", err)
		}
		snap.registrations = make([]models.Registration, len(regs))
		for i, r := range regs {
			snap.registrations[i] = *r
		}
		return nil
	})
	g.Go(func() error {
		stage := models.StageGroup
		matches, err := s.matchRepo.ListByCategory(gctx, categoryID, &stage)
		if err != nil {
			return fmt.Errorf("failed to load group matches: %w", err)
		}
		snap.groupMatches = make([]models.Match, len(matches))
		for i, m := range matches {
			snap.groupMatches[i] = *m
		}
		return nil
	})
	g.Go(func() error {
		cfg, err := s.tournamentRepo.GetPointsConfig(gctx, category.TournamentID)
		if err != nil {
			return fmt.Errorf("failed to load points config: %w", err)
		}
		snap.config = cfg
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Standings returns one ordered table per group label of the category.
func (s *StandingsService) Standings(ctx context.Context, categoryID string) (map[string][]engine.StandingEntry, error) {
	snap, err := s.loadSnapshot(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return engine.ComputeStandings(snap.registrations, snap.groupMatches, snap.config), nil
}

// Qualifiers returns the cross-group seeded entrant list for the playoff,
// honoring per-group overrides of the category's qualifier count.
func (s *StandingsService) Qualifiers(ctx context.Context, categoryID string) ([]string, error) {
	snap, err := s.loadSnapshot(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	overrides, err := s.tournamentRepo.ListQualifierOverrides(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	standings := engine.ComputeStandings(snap.registrations, snap.groupMatches, snap.config)
	order := models.NormalizeTiebreakers(snap.config.Tiebreakers)
	return engine.SelectQualifiers(standings, overrides, snap.category.QualifiersPerGroup, order), nil
}
