package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/padelops/tournament-engine/models"
)

var (
	ErrNoCourts         = errors.New("no courts available for scheduling")
	ErrNoPlayDays       = errors.New("no play days configured")
	ErrNoGroupDays      = errors.New("no play days left for the group stage")
	ErrPlayoffsOverflow = errors.New("playoff matches do not fit in the final play days")
)

// DayWindow is one day's schedule configuration.
type DayWindow struct {
	Date                 string // YYYY-MM-DD
	StartTime            string // HH:MM
	EndTime              string // HH:MM
	MatchDurationMinutes int
	BreakMinutes         int
}

// CourtRef identifies one court of one club.
type CourtRef struct {
	ClubID      string
	CourtNumber int
}

// Assignment places a match on a court at a time.
type Assignment struct {
	MatchID     string
	Date        string
	StartTime   string
	ClubID      string
	CourtNumber int
}

// DayCapacityError reports that a day's grid cannot fit the matches assigned
// to it. The caller must add days or courts, or reduce rounds per day;
// matches are never silently dropped or pushed to the next day.
type DayCapacityError struct {
	Date     string
	Capacity int
	Required int
}

func (e *DayCapacityError) Error() string {
	return fmt.Sprintf("day %s can hold %d matches but %d were requested", e.Date, e.Capacity, e.Required)
}

// BuildTimeSlots emits the start times of a day's grid: successive slots
// spaced duration+break minutes apart, starting at the window start, stopping
// once a slot would run past the window end. Non-positive duration or
// spacing yields no slots.
func BuildTimeSlots(day DayWindow) []string {
	start, err := parseClock(day.StartTime)
	if err != nil {
		return nil
	}
	end, err := parseClock(day.EndTime)
	if err != nil {
		return nil
	}
	if day.MatchDurationMinutes <= 0 {
		return nil
	}
	spacing := day.MatchDurationMinutes + day.BreakMinutes
	if spacing <= 0 {
		return nil
	}

	var slots []string
	for t := start; t+day.MatchDurationMinutes <= end; t += spacing {
		slots = append(slots, formatClock(t))
	}
	return slots
}

// ScheduleDay assigns matches onto one day's (time slot x court) grid in
// slot-major order: every court of the first slot is filled before moving to
// the next slot, spreading play across courts. It fails with a
// DayCapacityError when the matches exceed slots*courts.
func ScheduleDay(matchIDs []string, day DayWindow, courts []CourtRef) ([]Assignment, error) {
	slots := BuildTimeSlots(day)
	capacity := len(slots) * len(courts)
	if len(matchIDs) > capacity {
		return nil, &DayCapacityError{Date: day.Date, Capacity: capacity, Required: len(matchIDs)}
	}

	assignments := make([]Assignment, 0, len(matchIDs))
	next := 0
	for _, slot := range slots {
		for _, court := range courts {
			if next >= len(matchIDs) {
				return assignments, nil
			}
			assignments = append(assignments, Assignment{
				MatchID:     matchIDs[next],
				Date:        day.Date,
				StartTime:   slot,
				ClubID:      court.ClubID,
				CourtNumber: court.CourtNumber,
			})
			next++
		}
	}
	return assignments, nil
}

// CalendarInput is the multi-day scheduling request: group rounds in playing
// order, playoff matches in bracket order, the configured play days and the
// expanded court inventory.
type CalendarInput struct {
	GroupRounds    [][]string
	PlayoffMatches []string
	Days           []DayWindow
	Courts         []CourtRef
	RoundsPerDay   int
}

// PlanCalendar partitions the group rounds across all play days except the
// last two at RoundsPerDay rounds per day, and packs the playoff matches onto
// the final two days. Any day that cannot hold its share fails with a
// DayCapacityError naming it.
func PlanCalendar(in CalendarInput) ([]Assignment, error) {
	if len(in.Courts) == 0 {
		return nil, ErrNoCourts
	}
	if len(in.Days) == 0 {
		return nil, ErrNoPlayDays
	}
	roundsPerDay := in.RoundsPerDay
	if roundsPerDay < 1 {
		roundsPerDay = 1
	}

	groupDays := in.Days[:0]
	playoffDays := in.Days
	if len(in.Days) > 2 {
		groupDays = in.Days[:len(in.Days)-2]
		playoffDays = in.Days[len(in.Days)-2:]
	}

	var out []Assignment

	nextRound := 0
	for _, day := range groupDays {
		if nextRound >= len(in.GroupRounds) {
			break
		}
		var ids []string
		for r := 0; r < roundsPerDay && nextRound < len(in.GroupRounds); r++ {
			ids = append(ids, in.GroupRounds[nextRound]...)
			nextRound++
		}
		assignments, err := ScheduleDay(ids, day, in.Courts)
		if err != nil {
			return nil, err
		}
		out = append(out, assignments...)
	}
	if nextRound < len(in.GroupRounds) {
		return nil, fmt.Errorf("%w: %d of %d group rounds unplaced", ErrNoGroupDays, len(in.GroupRounds)-nextRound, len(in.GroupRounds))
	}

	remaining := in.PlayoffMatches
	for _, day := range playoffDays {
		if len(remaining) == 0 {
			break
		}
		capacity := len(BuildTimeSlots(day)) * len(in.Courts)
		take := capacity
		if take > len(remaining) {
			take = len(remaining)
		}
		assignments, err := ScheduleDay(remaining[:take], day, in.Courts)
		if err != nil {
			return nil, err
		}
		out = append(out, assignments...)
		remaining = remaining[take:]
	}
	if len(remaining) > 0 {
		return nil, fmt.Errorf("%w: %d matches unplaced", ErrPlayoffsOverflow, len(remaining))
	}

	return out, nil
}

// ExpandCourts turns each club's court count into individual court
// references, in club order.
func ExpandCourts(clubs []CourtInventory) []CourtRef {
	var courts []CourtRef
	for _, club := range clubs {
		for n := 1; n <= club.CourtCount; n++ {
			courts = append(courts, CourtRef{ClubID: club.ClubID, CourtNumber: n})
		}
	}
	return courts
}

// CourtInventory is a club's contribution to the scheduling grid.
type CourtInventory struct {
	ClubID     string
	CourtCount int
}

// ByeOnly reports whether a match has exactly one real participant. Such
// matches resolve by auto-advance and are never scheduled on a court.
func ByeOnly(m models.Match) bool {
	_, okA := SlotFromStored(m.TeamAID).RegistrationID()
	_, okB := SlotFromStored(m.TeamBID).RegistrationID()
	return okA != okB
}

func parseClock(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hours*60 + minutes, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
