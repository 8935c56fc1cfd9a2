package services

import (
	"sort"
	"time"

	"github.com/benjihealth/sanctuary/internal/models"
)

// Gap between two flow days that still counts as the same period. A flow day
// exactly clusterGapDays after the previous one belongs to the same cluster.
const clusterGapDays = 5

// How far FindPeriodStart traces backward through continuous flow days when
// the reference day itself has flow.
const backwardTraceDays = 6

const dayFormat = "2006-01-02"

// ParseDay parses a "2006-01-02" date string into a UTC midnight time.
func ParseDay(value string) (time.Time, error) {
	return time.ParseInLocation(dayFormat, value, time.UTC)
}

// FormatDay renders a time as its "2006-01-02" log key.
func FormatDay(day time.Time) string {
	return day.Format(dayFormat)
}

// dateOnly strips the time of day and pins the calendar date to UTC. Log
// keys parse to UTC midnights while query times carry the server zone, so
// both sides must land on the same plane before day arithmetic.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

// flowDays returns the log's flow-bearing dates in ascending order. Entries
// logged with flow "none" are excluded: they count as data for the day but
// not as bleeding.
func flowDays(log models.FlowLog) []time.Time {
	days := make([]time.Time, 0, len(log))
	for key, entry := range log {
		if !entry.HasFlow() {
			continue
		}
		day, err := ParseDay(key)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

// FindLastPeriodStart locates the start of the most recent period: flow days
// are clustered walking backward from the latest one, a gap of more than
// clusterGapDays breaking the cluster. The earliest day of the latest
// cluster is the period start. Returns false when no flow is logged.
func FindLastPeriodStart(log models.FlowLog) (time.Time, bool) {
	days := flowDays(log)
	if len(days) == 0 {
		return time.Time{}, false
	}

	start := days[len(days)-1]
	for index := len(days) - 2; index >= 0; index-- {
		if daysBetween(days[index], start) > clusterGapDays {
			break
		}
		start = days[index]
	}
	return start, true
}

// FindPeriodStart resolves the period start relative to a reference day.
// When the reference day itself has flow, it traces backward through up to
// backwardTraceDays of continuous flow to find where that period began;
// otherwise it falls back to FindLastPeriodStart.
func FindPeriodStart(log models.FlowLog, reference time.Time) (time.Time, bool) {
	day := dateOnly(reference)
	if entry, ok := log[FormatDay(day)]; ok && entry.HasFlow() {
		start := day
		for offset := 1; offset <= backwardTraceDays; offset++ {
			previous := day.AddDate(0, 0, -offset)
			entry, ok := log[FormatDay(previous)]
			if !ok || !entry.HasFlow() {
				break
			}
			start = previous
		}
		return start, true
	}
	return FindLastPeriodStart(log)
}

// CycleDay returns the 1-based day within the nominal 28-day cycle for a
// date relative to the period start. Dates before the start are unknown, not
// negative.
func CycleDay(periodStart, date time.Time) (int, bool) {
	diff := daysBetween(periodStart, date)
	if diff < 0 {
		return 0, false
	}
	return (diff % models.CycleLength) + 1, true
}

// CycleDayFromLog derives the cycle day for a date straight from the log.
func CycleDayFromLog(log models.FlowLog, date time.Time) (int, bool) {
	start, ok := FindPeriodStart(log, date)
	if !ok {
		return 0, false
	}
	return CycleDay(start, date)
}

// PhaseForDay returns the phase whose inclusive range contains cycleDay.
func PhaseForDay(cycleDay int) (models.Phase, bool) {
	for _, phase := range models.Phases() {
		if cycleDay >= phase.Start && cycleDay <= phase.End {
			return phase, true
		}
	}
	return models.Phase{}, false
}

// DayHasData reports whether anything at all is logged for the day,
// including flow "none" entries.
func DayHasData(log models.FlowLog, date string) bool {
	_, ok := log[date]
	return ok
}
