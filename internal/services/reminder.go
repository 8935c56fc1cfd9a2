package services

import (
	"sync"
	"time"

	"github.com/benjihealth/sanctuary/internal/models"
)

// Flow logged this many consecutive days from the period start triggers the
// "still logging flow?" reminder.
const reminderFlowDays = 7

// FlowReminder decides whether the prolonged-flow banner should show.
// Dismissals are remembered per period start and only for the lifetime of
// this instance, matching the original session-scoped behavior. Instances
// belong to a single user's state and must not be shared across users.
type FlowReminder struct {
	mu        sync.Mutex
	dismissed string
}

func NewFlowReminder() *FlowReminder {
	return &FlowReminder{}
}

// ShouldShow reports whether the reminder applies: at least
// reminderFlowDays of uninterrupted flow counted forward from the last
// period start, and not yet dismissed for that period.
func (reminder *FlowReminder) ShouldShow(log models.FlowLog, now time.Time) bool {
	start, ok := FindLastPeriodStart(log)
	if !ok {
		return false
	}

	reminder.mu.Lock()
	dismissed := reminder.dismissed
	reminder.mu.Unlock()
	if dismissed == FormatDay(start) {
		return false
	}

	today := dateOnly(now)
	consecutive := 0
	for day := dateOnly(start); !day.After(today); day = day.AddDate(0, 0, 1) {
		entry, ok := log[FormatDay(day)]
		if !ok || !entry.HasFlow() {
			break
		}
		consecutive++
	}
	return consecutive >= reminderFlowDays
}

// Dismiss hides the reminder for the current period start.
func (reminder *FlowReminder) Dismiss(log models.FlowLog) {
	start, ok := FindLastPeriodStart(log)
	if !ok {
		return
	}
	reminder.mu.Lock()
	reminder.dismissed = FormatDay(start)
	reminder.mu.Unlock()
}
