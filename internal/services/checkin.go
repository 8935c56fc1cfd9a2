package services

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/benjihealth/sanctuary/internal/models"
	"github.com/benjihealth/sanctuary/internal/security"
)

const (
	checkInKeyPrefix = "checkin:"
	insightKeyPrefix = "insight:"
)

var ErrCheckInSave = errors.New("save check-in failed")

// CheckInService keeps the check-in journal and the agent insights that go
// with it. Each record is stored under its own timestamped key so single
// entries can be read and removed without rewriting the whole journal.
type CheckInService struct {
	kv  KeyValue
	now func() time.Time
}

func NewCheckInService(kv KeyValue) *CheckInService {
	return &CheckInService{kv: kv, now: time.Now}
}

// Save stores a check-in. A missing ID or timestamp is filled in; the
// timestamp also forms the storage key, so two saves never collide.
func (service *CheckInService) Save(checkIn *models.CheckIn) error {
	if checkIn.Timestamp.IsZero() {
		checkIn.Timestamp = service.now()
	}
	if checkIn.ID == "" {
		checkIn.ID = security.NewID("checkin")
	}

	data, err := json.Marshal(checkIn)
	if err != nil {
		return ErrCheckInSave
	}
	if err := service.kv.Set(checkInKey(checkIn.Timestamp), string(data)); err != nil {
		return ErrCheckInSave
	}
	return nil
}

func checkInKey(ts time.Time) string {
	return checkInKeyPrefix + ts.UTC().Format(time.RFC3339Nano)
}

// All returns stored check-ins newest first. Values that no longer parse
// are skipped rather than failing the whole read.
func (service *CheckInService) All() ([]models.CheckIn, error) {
	keys, err := service.kv.List(checkInKeyPrefix)
	if err != nil {
		return nil, err
	}

	checkIns := make([]models.CheckIn, 0, len(keys))
	for _, key := range keys {
		raw, found, err := service.kv.Get(key)
		if err != nil || !found {
			continue
		}
		var checkIn models.CheckIn
		if err := json.Unmarshal([]byte(raw), &checkIn); err != nil {
			continue
		}
		checkIns = append(checkIns, checkIn)
	}

	sort.SliceStable(checkIns, func(i, j int) bool {
		return checkIns[i].Timestamp.After(checkIns[j].Timestamp)
	})
	return checkIns, nil
}

// Recent returns check-ins from the last given number of days, newest first.
func (service *CheckInService) Recent(days int) ([]models.CheckIn, error) {
	all, err := service.All()
	if err != nil {
		return nil, err
	}
	cutoff := service.now().AddDate(0, 0, -days)
	recent := make([]models.CheckIn, 0, len(all))
	for _, checkIn := range all {
		if checkIn.Timestamp.After(cutoff) {
			recent = append(recent, checkIn)
		}
	}
	return recent, nil
}

// Statistics aggregates the stored journal.
func (service *CheckInService) Statistics() (models.CheckInStats, error) {
	all, err := service.All()
	if err != nil {
		return models.CheckInStats{}, err
	}

	stats := models.CheckInStats{TotalCheckIns: len(all)}
	if len(all) == 0 {
		return stats, nil
	}

	stats.NewestCheckIn = all[0].Timestamp
	stats.OldestCheckIn = all[len(all)-1].Timestamp

	weekCutoff := service.now().AddDate(0, 0, -7)
	var energy, stress, sleep int
	for _, checkIn := range all {
		if checkIn.Timestamp.After(weekCutoff) {
			stats.CheckInsLast7Day++
		}
		energy += checkIn.Physical.EnergyLevel
		stress += checkIn.Mental.StressLevel
		sleep += checkIn.Physical.SleepQuality
	}
	count := float64(len(all))
	stats.AverageEnergy = float64(energy) / count
	stats.AverageStress = float64(stress) / count
	stats.AverageSleep = float64(sleep) / count
	return stats, nil
}

// SaveInsight stores an agent response alongside the journal.
func (service *CheckInService) SaveInsight(insight *models.Insight) error {
	if insight.Timestamp.IsZero() {
		insight.Timestamp = service.now()
	}
	if insight.ID == "" {
		insight.ID = security.NewID("insight")
	}

	data, err := json.Marshal(insight)
	if err != nil {
		return ErrCheckInSave
	}
	key := insightKeyPrefix + insight.Timestamp.UTC().Format(time.RFC3339Nano)
	if err := service.kv.Set(key, string(data)); err != nil {
		return ErrCheckInSave
	}
	return nil
}

// Insights returns stored insights newest first.
func (service *CheckInService) Insights() ([]models.Insight, error) {
	keys, err := service.kv.List(insightKeyPrefix)
	if err != nil {
		return nil, err
	}

	insights := make([]models.Insight, 0, len(keys))
	for _, key := range keys {
		raw, found, err := service.kv.Get(key)
		if err != nil || !found {
			continue
		}
		var insight models.Insight
		if err := json.Unmarshal([]byte(raw), &insight); err != nil {
			continue
		}
		insights = append(insights, insight)
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Timestamp.After(insights[j].Timestamp)
	})
	return insights, nil
}

// ExportBundle is the downloadable copy of the journal.
type ExportBundle struct {
	ExportedAt time.Time        `json:"exportedAt"`
	CheckIns   []models.CheckIn `json:"checkIns"`
	Insights   []models.Insight `json:"insights"`
}

// Export collects the full journal for download.
func (service *CheckInService) Export() (ExportBundle, error) {
	checkIns, err := service.All()
	if err != nil {
		return ExportBundle{}, err
	}
	insights, err := service.Insights()
	if err != nil {
		return ExportBundle{}, err
	}
	return ExportBundle{
		ExportedAt: service.now(),
		CheckIns:   checkIns,
		Insights:   insights,
	}, nil
}

// ClearAll removes every check-in and insight.
func (service *CheckInService) ClearAll() error {
	for _, prefix := range []string{checkInKeyPrefix, insightKeyPrefix} {
		keys, err := service.kv.List(prefix)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := service.kv.Delete(key); err != nil {
				return err
			}
		}
	}
	return nil
}
