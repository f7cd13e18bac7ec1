package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/padelops/tournament-engine/engine"
	"github.com/padelops/tournament-engine/models"
	"github.com/padelops/tournament-engine/repositories"
)

// ScheduleService assigns every match of a tournament to a date, time and
// court across the configured play days.
type ScheduleService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	clubRepo       repositories.ClubRepository
	matchRepo      repositories.MatchRepository
	logger         *slog.Logger
}

func NewScheduleService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	clubRepo repositories.ClubRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) *ScheduleService {
	return &ScheduleService{
		db:             db,
		tournamentRepo: tournamentRepo,
		clubRepo:       clubRepo,
		matchRepo:      matchRepo,
		logger:         logger,
	}
}

// GenerateSchedule plans the full tournament calendar and persists the
// assignments. Group rounds land on every play day except the last two,
// playoffs on the final two days. Matches with a single participant resolve
// by auto-advance and are never placed on a court.
func (s *ScheduleService) GenerateSchedule(ctx context.Context, tournamentID string) ([]engine.Assignment, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	var (
		days    []models.PlayDay
		clubs   []models.Club
		matches []*models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		days, err = s.tournamentRepo.ListPlayDays(gctx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		clubs, err = s.clubRepo.ListByTournament(gctx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gctx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	in := engine.CalendarInput{
		GroupRounds:    collectGroupRounds(matches),
		PlayoffMatches: collectPlayoffMatches(matches),
		Days:           toDayWindows(days),
		Courts:         engine.ExpandCourts(toCourtInventory(clubs)),
		RoundsPerDay:   tournament.GroupRoundsPerDay,
	}

	assignments, err := engine.PlanCalendar(in)
	if err != nil {
		return nil, err
	}

	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, a := range assignments {
			if err := s.matchRepo.UpdateSchedule(ctx, tx, a.MatchID, a.Date, a.StartTime, a.ClubID, a.CourtNumber); err != nil {
				return fmt.Errorf("failed to persist assignment for match %s: %w", a.MatchID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "schedule generated",
		"tournament_id", tournamentID, "assignments", len(assignments), "days", len(days))
	return assignments, nil
}

// collectGroupRounds merges the group matches of all categories into shared
// calendar rounds: round N of every category plays in the same time block.
func collectGroupRounds(matches []*models.Match) [][]string {
	byRound := make(map[int][]string)
	for _, m := range matches {
		if m.Stage != models.StageGroup {
			continue
		}
		byRound[m.RoundNumber] = append(byRound[m.RoundNumber], m.ID)
	}
	numbers := make([]int, 0, len(byRound))
	for n := range byRound {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	rounds := make([][]string, 0, len(numbers))
	for _, n := range numbers {
		rounds = append(rounds, byRound[n])
	}
	return rounds
}

// collectPlayoffMatches returns the playable playoff match ids in bracket
// order. Bye-only matches are excluded.
func collectPlayoffMatches(matches []*models.Match) []string {
	var ids []string
	for _, m := range matches {
		if m.Stage != models.StagePlayoff {
			continue
		}
		if engine.ByeOnly(*m) {
			continue
		}
		ids = append(ids, m.ID)
	}
	return ids
}

func toDayWindows(days []models.PlayDay) []engine.DayWindow {
	out := make([]engine.DayWindow, len(days))
	for i, d := range days {
		out[i] = engine.DayWindow{
			Date:                 d.Date,
			StartTime:            d.StartTime,
			EndTime:              d.EndTime,
			MatchDurationMinutes: d.MatchDurationMinutes,
			BreakMinutes:         d.BreakMinutes,
		}
	}
	return out
}

func toCourtInventory(clubs []models.Club) []engine.CourtInventory {
	out := make([]engine.CourtInventory, len(clubs))
	for i, c := range clubs {
		out[i] = engine.CourtInventory{ClubID: c.ID, CourtCount: c.CourtCount}
	}
	return out
}
