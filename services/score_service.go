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

// ScoreService records match results and runs bracket propagation.
type ScoreService struct {
	db        *sql.DB
	matchRepo repositories.MatchRepository
	logger    *slog.Logger
}

func NewScoreService(db *sql.DB, matchRepo repositories.MatchRepository, logger *slog.Logger) *ScoreService {
	return &ScoreService{db: db, matchRepo: matchRepo, logger: logger}
}

// ScoreInput is the organizer's result entry for one match.
type ScoreInput struct {
	Games       []models.GameScore `json:"games"`
	WinnerSide  *models.Side       `json:"winner_side,omitempty"`
	OutcomeType models.OutcomeType `json:"outcome_type"`
	OutcomeSide *models.Side       `json:"outcome_side,omitempty"`
}

func (in ScoreInput) validate() error {
	if len(in.Games) > models.MaxGamesPerMatch {
		return fmt.Errorf("%w: at most %d games", ErrInvalidScorePayload, models.MaxGamesPerMatch)
	}
	for i, g := range in.Games {
		if g.A < 0 || g.B < 0 {
			return fmt.Errorf("%w: game %d has a negative score", ErrInvalidScorePayload, i+1)
		}
		if g.DurationMinutes != nil && *g.DurationMinutes < 0 {
			return fmt.Errorf("%w: game %d has a negative duration", ErrInvalidScorePayload, i+1)
		}
	}
	if !in.OutcomeType.Valid() {
		return fmt.Errorf("%w: unknown outcome type %q", ErrInvalidScorePayload, in.OutcomeType)
	}
	if in.WinnerSide != nil && !in.WinnerSide.Valid() {
		return fmt.Errorf("%w: unknown winner side %q", ErrInvalidScorePayload, *in.WinnerSide)
	}
	if in.OutcomeSide != nil && !in.OutcomeSide.Valid() {
		return fmt.Errorf("%w: unknown outcome side %q", ErrInvalidScorePayload, *in.OutcomeSide)
	}
	if in.OutcomeType != models.OutcomePlayed && in.OutcomeSide == nil && in.WinnerSide == nil {
		return fmt.Errorf("%w: %s outcome needs the affected side", ErrInvalidScorePayload, in.OutcomeType)
	}
	return nil
}

// SubmitScore validates and stores a result. For playoff matches it then
// advances the winner into the next round and refreshes the bronze match
// slots, all in the same transaction as the score write.
func (s *ScoreService) SubmitScore(ctx context.Context, matchID string, input ScoreInput) (*models.Match, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Stage == models.StagePlayoff {
		if match.TeamAID == nil || match.TeamBID == nil {
			return nil, ErrMatchNotEditable
		}
	}

	match.Games = input.Games
	match.WinnerSide = input.WinnerSide
	match.OutcomeType = input.OutcomeType
	match.OutcomeSide = input.OutcomeSide

	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.matchRepo.UpdateScore(ctx, tx, match); err != nil {
			return err
		}
		if match.Stage != models.StagePlayoff {
			return nil
		}
		return s.propagate(ctx, tx, match)
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

// propagate pushes the stored result through the bracket. Winner propagation
// is applied to the in-memory snapshot before the bronze pass so a semifinal
// result feeds both the final and the bronze match in one call.
func (s *ScoreService) propagate(ctx context.Context, tx *sql.Tx, updated *models.Match) error {
	stage := models.StagePlayoff
	stored, err := s.matchRepo.ListByCategory(ctx, updated.CategoryID, &stage)
	if err != nil {
		return err
	}

	playoffs := make([]models.Match, len(stored))
	for i, m := range stored {
		if m.ID == updated.ID {
			playoffs[i] = *updated
		} else {
			playoffs[i] = *m
		}
	}

	apply := func(u engine.SlotUpdate) error {
		if err := s.matchRepo.UpdateTeamSlot(ctx, tx, u.MatchID, u.Side, u.TeamID); err != nil {
			return err
		}
		for i := range playoffs {
			if playoffs[i].ID != u.MatchID {
				continue
			}
			teamID := u.TeamID
			if u.Side == models.SideA {
				playoffs[i].TeamAID = &teamID
			} else {
				playoffs[i].TeamBID = &teamID
			}
		}
		s.logger.InfoContext(ctx, "bracket slot filled",
			"match_id", u.MatchID, "side", u.Side, "team_id", u.TeamID)
		return nil
	}

	if u := engine.PropagateWinner(playoffs, *updated); u != nil {
		if err := apply(*u); err != nil {
			return err
		}
	}
	for _, u := range engine.PropagateBronze(playoffs) {
		if err := apply(u); err != nil {
			return err
		}
	}
	return nil
}
