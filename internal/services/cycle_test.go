package services

import (
	"testing"
	"time"

	"github.com/benjihealth/sanctuary/internal/models"
)

func flowLog(dates ...string) models.FlowLog {
	log := models.FlowLog{}
	for _, date := range dates {
		log[date] = models.FlowEntry{Flow: models.FlowMedium}
	}
	return log
}

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := ParseDay(raw)
	if err != nil {
		t.Fatalf("parse day %s: %v", raw, err)
	}
	return day
}

func TestFindLastPeriodStartPicksLatestCluster(t *testing.T) {
	log := flowLog("2024-01-01", "2024-01-03", "2024-01-20")

	start, ok := FindLastPeriodStart(log)
	if !ok {
		t.Fatal("expected a period start")
	}
	// 01-01 and 01-03 cluster together, but 01-20 starts a newer cluster
	// and the latest cluster wins.
	if FormatDay(start) != "2024-01-20" {
		t.Fatalf("expected start 2024-01-20, got %s", FormatDay(start))
	}
}

func TestFindLastPeriodStartGapBoundary(t *testing.T) {
	// A gap of exactly 5 days keeps the cluster together.
	log := flowLog("2024-02-01", "2024-02-06")
	start, ok := FindLastPeriodStart(log)
	if !ok || FormatDay(start) != "2024-02-01" {
		t.Fatalf("expected start 2024-02-01, got %s (ok=%v)", FormatDay(start), ok)
	}

	// A gap of 6 days breaks it.
	log = flowLog("2024-02-01", "2024-02-07")
	start, ok = FindLastPeriodStart(log)
	if !ok || FormatDay(start) != "2024-02-07" {
		t.Fatalf("expected start 2024-02-07, got %s (ok=%v)", FormatDay(start), ok)
	}
}

func TestFindLastPeriodStartIgnoresNonFlowEntries(t *testing.T) {
	log := models.FlowLog{
		"2024-03-01": {Flow: models.FlowLight},
		"2024-03-10": {Flow: models.FlowNone, CrampPain: 2},
		"2024-03-12": {Symptoms: []string{"headache"}},
	}

	start, ok := FindLastPeriodStart(log)
	if !ok || FormatDay(start) != "2024-03-01" {
		t.Fatalf("expected start 2024-03-01, got %s (ok=%v)", FormatDay(start), ok)
	}

	if _, ok := FindLastPeriodStart(models.FlowLog{}); ok {
		t.Fatal("empty log must have no period start")
	}
}

func TestFindPeriodStartTracesBackwardFromReference(t *testing.T) {
	log := flowLog("2024-04-08", "2024-04-09", "2024-04-10")

	start, ok := FindPeriodStart(log, mustParseDay(t, "2024-04-10"))
	if !ok || FormatDay(start) != "2024-04-08" {
		t.Fatalf("expected start 2024-04-08, got %s (ok=%v)", FormatDay(start), ok)
	}

	// Reference without flow falls back to the cluster heuristic.
	start, ok = FindPeriodStart(log, mustParseDay(t, "2024-04-20"))
	if !ok || FormatDay(start) != "2024-04-08" {
		t.Fatalf("expected fallback start 2024-04-08, got %s (ok=%v)", FormatDay(start), ok)
	}
}

func TestFindPeriodStartBackwardTraceStopsAtGap(t *testing.T) {
	// Continuous flow 04-12..04-14, a break on 04-11, older flow before it.
	log := flowLog("2024-04-08", "2024-04-09", "2024-04-12", "2024-04-13", "2024-04-14")

	start, ok := FindPeriodStart(log, mustParseDay(t, "2024-04-14"))
	if !ok || FormatDay(start) != "2024-04-12" {
		t.Fatalf("expected start 2024-04-12, got %s (ok=%v)", FormatDay(start), ok)
	}
}

func TestCycleDay(t *testing.T) {
	start := mustParseDay(t, "2024-01-01")

	tests := []struct {
		date    string
		want    int
		unknown bool
	}{
		{date: "2024-01-01", want: 1},
		{date: "2024-01-05", want: 5},
		{date: "2024-01-28", want: 28},
		{date: "2024-01-29", want: 1}, // wraps modulo 28
		{date: "2023-12-31", unknown: true},
	}

	for _, test := range tests {
		day, ok := CycleDay(start, mustParseDay(t, test.date))
		if test.unknown {
			if ok {
				t.Fatalf("CycleDay(%s) expected unknown, got %d", test.date, day)
			}
			continue
		}
		if !ok || day != test.want {
			t.Fatalf("CycleDay(%s) = %d (ok=%v), want %d", test.date, day, ok, test.want)
		}
	}
}

func TestCycleDayZonedQueryTime(t *testing.T) {
	start := mustParseDay(t, "2024-01-01")

	// Query times arrive with the server zone attached; the cycle day must
	// follow the local calendar date no matter which side of UTC that is.
	east := time.FixedZone("UTC+2", 2*60*60)
	west := time.FixedZone("UTC-10", -10*60*60)

	tests := []struct {
		name  string
		query time.Time
		want  int
	}{
		{name: "east of UTC", query: time.Date(2024, 1, 2, 12, 0, 0, 0, east), want: 2},
		{name: "east of UTC before local noon", query: time.Date(2024, 1, 2, 0, 30, 0, 0, east), want: 2},
		{name: "west of UTC", query: time.Date(2024, 1, 2, 23, 0, 0, 0, west), want: 2},
		{name: "start day east of UTC", query: time.Date(2024, 1, 1, 8, 0, 0, 0, east), want: 1},
	}

	for _, test := range tests {
		day, ok := CycleDay(start, test.query)
		if !ok || day != test.want {
			t.Fatalf("%s: CycleDay = %d (ok=%v), want %d", test.name, day, ok, test.want)
		}
	}
}

func TestPhaseForDay(t *testing.T) {
	tests := []struct {
		day     int
		want    string
		unknown bool
	}{
		{day: 1, want: models.PhaseMenstrual},
		{day: 5, want: models.PhaseMenstrual},
		{day: 6, want: models.PhaseFollicular},
		{day: 14, want: models.PhaseOvulation},
		{day: 17, want: models.PhaseLuteal},
		{day: 28, want: models.PhaseLuteal},
		{day: 29, unknown: true},
		{day: 0, unknown: true},
	}

	for _, test := range tests {
		phase, ok := PhaseForDay(test.day)
		if test.unknown {
			if ok {
				t.Fatalf("PhaseForDay(%d) expected unknown, got %s", test.day, phase.Name)
			}
			continue
		}
		if !ok || phase.Name != test.want {
			t.Fatalf("PhaseForDay(%d) = %s (ok=%v), want %s", test.day, phase.Name, ok, test.want)
		}
	}
}

func TestDayHasDataCountsNonFlowEntries(t *testing.T) {
	log := models.FlowLog{
		"2024-05-01": {Flow: models.FlowNone},
	}
	if !DayHasData(log, "2024-05-01") {
		t.Fatal("flow none entry must still count as data for the day")
	}
	if DayHasData(log, "2024-05-02") {
		t.Fatal("absent date must not count as data")
	}
}
