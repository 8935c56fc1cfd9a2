package services

import (
	"time"

	"github.com/benjihealth/sanctuary/internal/models"
)

// CalendarDay is one rendered day of the cycle calendar.
type CalendarDay struct {
	Date     string `json:"date"`
	Day      int    `json:"day"`
	IsToday  bool   `json:"isToday"`
	IsFuture bool   `json:"isFuture"`
	CycleDay int    `json:"cycleDay,omitempty"`
	Phase    string `json:"phase,omitempty"`
	HasFlow  bool   `json:"hasFlow"`
	HasData  bool   `json:"hasData"`
	FlowDots int    `json:"flowDots"`
}

// BuildCalendarMonth derives the day states for a calendar month. Days with
// logged flow show flow dots, days with any other data show a data marker,
// and days without data carry the predicted phase for background shading.
func BuildCalendarMonth(log models.FlowLog, year int, month time.Month, now time.Time) []CalendarDay {
	today := dateOnly(now)
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := monthStart.AddDate(0, 1, -1).Day()

	days := make([]CalendarDay, 0, daysInMonth)
	for dayNumber := 1; dayNumber <= daysInMonth; dayNumber++ {
		date := monthStart.AddDate(0, 0, dayNumber-1)
		key := FormatDay(date)
		entry, hasEntry := log[key]

		state := CalendarDay{
			Date:     key,
			Day:      dayNumber,
			IsToday:  key == FormatDay(today),
			IsFuture: date.After(today),
			HasFlow:  hasEntry && entry.HasFlow(),
			HasData:  hasEntry,
		}
		if state.HasFlow {
			state.FlowDots = models.FlowDots(entry.Flow)
			if state.FlowDots == 0 {
				state.FlowDots = 1
			}
		}

		if cycleDay, ok := CycleDayFromLog(log, date); ok {
			state.CycleDay = cycleDay
			if phase, ok := PhaseForDay(cycleDay); ok {
				state.Phase = phase.Name
			}
		}

		days = append(days, state)
	}

	return days
}
