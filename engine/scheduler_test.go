package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padelops/tournament-engine/models"
)

func TestBuildTimeSlots(t *testing.T) {
	day := DayWindow{Date: "2026-05-02", StartTime: "09:00", EndTime: "11:00", MatchDurationMinutes: 50, BreakMinutes: 10}
	assert.Equal(t, []string{"09:00", "10:00"}, BuildTimeSlots(day))

	day.EndTime = "11:50"
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, BuildTimeSlots(day))

	day.MatchDurationMinutes = 0
	assert.Nil(t, BuildTimeSlots(day))

	day.MatchDurationMinutes = 30
	day.BreakMinutes = -30
	assert.Nil(t, BuildTimeSlots(day), "non-positive spacing yields no slots")

	day.BreakMinutes = 0
	day.StartTime = "9am"
	assert.Nil(t, BuildTimeSlots(day), "malformed times yield no slots")
}

func TestScheduleDay_SlotMajorAssignment(t *testing.T) {
	day := DayWindow{Date: "2026-05-02", StartTime: "09:00", EndTime: "11:00", MatchDurationMinutes: 50, BreakMinutes: 10}
	courts := []CourtRef{{ClubID: "club-1", CourtNumber: 1}, {ClubID: "club-1", CourtNumber: 2}}

	assignments, err := ScheduleDay([]string{"m1", "m2", "m3"}, day, courts)
	require.NoError(t, err)
	require.Len(t, assignments, 3)

	// Both courts of the first slot fill before the second slot starts.
	assert.Equal(t, Assignment{MatchID: "m1", Date: "2026-05-02", StartTime: "09:00", ClubID: "club-1", CourtNumber: 1}, assignments[0])
	assert.Equal(t, Assignment{MatchID: "m2", Date: "2026-05-02", StartTime: "09:00", ClubID: "club-1", CourtNumber: 2}, assignments[1])
	assert.Equal(t, Assignment{MatchID: "m3", Date: "2026-05-02", StartTime: "10:00", ClubID: "club-1", CourtNumber: 1}, assignments[2])
}

func TestScheduleDay_CapacityFailureNamesDay(t *testing.T) {
	day := DayWindow{Date: "2026-05-02", StartTime: "09:00", EndTime: "11:00", MatchDurationMinutes: 50, BreakMinutes: 10}
	courts := []CourtRef{{ClubID: "club-1", CourtNumber: 1}, {ClubID: "club-1", CourtNumber: 2}}

	// Two slots x two courts = capacity four; five matches must fail.
	_, err := ScheduleDay([]string{"m1", "m2", "m3", "m4", "m5"}, day, courts)
	require.Error(t, err)

	var capErr *DayCapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, "2026-05-02", capErr.Date)
	assert.Equal(t, 4, capErr.Capacity)
	assert.Equal(t, 5, capErr.Required)
	assert.Contains(t, err.Error(), "2026-05-02")
}

func TestPlanCalendar_GroupAndPlayoffSplit(t *testing.T) {
	days := []DayWindow{
		{Date: "2026-05-01", StartTime: "09:00", EndTime: "13:00", MatchDurationMinutes: 50, BreakMinutes: 10},
		{Date: "2026-05-02", StartTime: "09:00", EndTime: "13:00", MatchDurationMinutes: 50, BreakMinutes: 10},
		{Date: "2026-05-03", StartTime: "09:00", EndTime: "13:00", MatchDurationMinutes: 50, BreakMinutes: 10},
		{Date: "2026-05-04", StartTime: "09:00", EndTime: "13:00", MatchDurationMinutes: 50, BreakMinutes: 10},
	}
	courts := []CourtRef{{ClubID: "club-1", CourtNumber: 1}, {ClubID: "club-1", CourtNumber: 2}}

	in := CalendarInput{
		GroupRounds: [][]string{
			{"g1", "g2"},
			{"g3", "g4"},
			{"g5", "g6"},
			{"g7", "g8"},
		},
		PlayoffMatches: []string{"p1", "p2", "p3"},
		Days:           days,
		Courts:         courts,
		RoundsPerDay:   2,
	}

	assignments, err := PlanCalendar(in)
	require.NoError(t, err)
	require.Len(t, assignments, 11)

	byMatch := make(map[string]Assignment)
	for _, a := range assignments {
		byMatch[a.MatchID] = a
	}

	// Two rounds per group day: rounds 1-2 on day one, rounds 3-4 on day two.
	assert.Equal(t, "2026-05-01", byMatch["g1"].Date)
	assert.Equal(t, "2026-05-01", byMatch["g4"].Date)
	assert.Equal(t, "2026-05-02", byMatch["g5"].Date)
	assert.Equal(t, "2026-05-02", byMatch["g8"].Date)

	// Playoffs live exclusively on the last two days.
	assert.Equal(t, "2026-05-03", byMatch["p1"].Date)
	assert.Equal(t, "2026-05-03", byMatch["p2"].Date)
	assert.Equal(t, "2026-05-03", byMatch["p3"].Date)
}

func TestPlanCalendar_GroupRoundsMustFitGroupDays(t *testing.T) {
	days := []DayWindow{
		{Date: "2026-05-01", StartTime: "09:00", EndTime: "11:00", MatchDurationMinutes: 50, BreakMinutes: 10},
		{Date: "2026-05-02", StartTime: "09:00", EndTime: "11:00", MatchDurationMinutes: 50, BreakMinutes: 10},
		{Date: "2026-05-03", StartTime: "09:00", EndTime: "11:00", MatchDurationMinutes: 50, BreakMinutes: 10},
	}
	in := CalendarInput{
		GroupRounds:  [][]string{{"g1"}, {"g2"}, {"g3"}},
		Days:         days,
		Courts:       []CourtRef{{ClubID: "club-1", CourtNumber: 1}},
		RoundsPerDay: 1,
	}

	// Only one group day is available (two are reserved for playoffs).
	_, err := PlanCalendar(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoGroupDays)
}

func TestPlanCalendar_PlayoffOverflowFails(t *testing.T) {
	days := []DayWindow{
		{Date: "2026-05-01", StartTime: "09:00", EndTime: "10:00", MatchDurationMinutes: 50, BreakMinutes: 10},
		{Date: "2026-05-02", StartTime: "09:00", EndTime: "10:00", MatchDurationMinutes: 50, BreakMinutes: 10},
	}
	in := CalendarInput{
		PlayoffMatches: []string{"p1", "p2", "p3"},
		Days:           days,
		Courts:         []CourtRef{{ClubID: "club-1", CourtNumber: 1}},
	}

	_, err := PlanCalendar(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlayoffsOverflow)
}

func TestPlanCalendar_InputValidation(t *testing.T) {
	_, err := PlanCalendar(CalendarInput{Days: []DayWindow{{Date: "2026-05-01"}}})
	assert.ErrorIs(t, err, ErrNoCourts)

	_, err = PlanCalendar(CalendarInput{Courts: []CourtRef{{ClubID: "c", CourtNumber: 1}}})
	assert.ErrorIs(t, err, ErrNoPlayDays)
}

func TestExpandCourts(t *testing.T) {
	courts := ExpandCourts([]CourtInventory{
		{ClubID: "club-1", CourtCount: 2},
		{ClubID: "club-2", CourtCount: 1},
	})
	assert.Equal(t, []CourtRef{
		{ClubID: "club-1", CourtNumber: 1},
		{ClubID: "club-1", CourtNumber: 2},
		{ClubID: "club-2", CourtNumber: 1},
	}, courts)
}

func TestByeOnly(t *testing.T) {
	real := strPtr("reg-1")
	assert.True(t, ByeOnly(models.Match{TeamAID: real}))
	assert.True(t, ByeOnly(models.Match{TeamBID: real, TeamAID: strPtr("bye-3")}))
	assert.False(t, ByeOnly(models.Match{TeamAID: real, TeamBID: strPtr("reg-2")}))
	assert.False(t, ByeOnly(models.Match{}))
}
