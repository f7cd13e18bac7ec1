package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padelops/tournament-engine/models"
)

func sidePtr(s models.Side) *models.Side { return &s }
func intPtr(n int) *int                  { return &n }

func TestScoreInputValidate(t *testing.T) {
	valid := ScoreInput{
		Games:       []models.GameScore{{A: 6, B: 3}, {A: 6, B: 4}},
		OutcomeType: models.OutcomePlayed,
	}
	assert.NoError(t, valid.validate())

	tooMany := valid
	tooMany.Games = make([]models.GameScore, models.MaxGamesPerMatch+1)
	assert.ErrorIs(t, tooMany.validate(), ErrInvalidScorePayload)

	negative := valid
	negative.Games = []models.GameScore{{A: 6, B: -1}}
	assert.ErrorIs(t, negative.validate(), ErrInvalidScorePayload)

	negDuration := valid
	negDuration.Games = []models.GameScore{{A: 6, B: 3, DurationMinutes: intPtr(-5)}}
	assert.ErrorIs(t, negDuration.validate(), ErrInvalidScorePayload)

	badOutcome := valid
	badOutcome.OutcomeType = "RETIRED"
	assert.ErrorIs(t, badOutcome.validate(), ErrInvalidScorePayload)

	badSide := valid
	badSide.WinnerSide = sidePtr("C")
	assert.ErrorIs(t, badSide.validate(), ErrInvalidScorePayload)

	// A walkover must name a side, either the affected one or a bare winner.
	walkover := ScoreInput{OutcomeType: models.OutcomeWalkover}
	assert.ErrorIs(t, walkover.validate(), ErrInvalidScorePayload)

	walkover.OutcomeSide = sidePtr(models.SideB)
	assert.NoError(t, walkover.validate())
}
