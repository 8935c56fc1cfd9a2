package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/benjihealth/sanctuary/internal/models"
)

var (
	ErrInvalidFlowDate  = errors.New("invalid flow log date")
	ErrInvalidFlowValue = errors.New("invalid flow value")
	ErrFlowLogSave      = errors.New("save flow entry failed")
)

// FlowEntryRepository is the local persisted mirror of the flow log.
type FlowEntryRepository interface {
	ListByUser(userID string) ([]models.FlowRecord, error)
	Upsert(record *models.FlowRecord) error
	DeleteByUserAndDate(userID string, date string) error
	ReplaceAll(userID string, records []models.FlowRecord) error
}

// MenstrualStore is the remote mirror of the flow log.
type MenstrualStore interface {
	GetMenstrual(ctx context.Context, userID string) (models.FlowLog, bool, error)
	PutMenstrual(ctx context.Context, userID string, entries models.FlowLog) error
}

// FlowLogService owns a user's flow log: in-memory working copy, local
// repository as durable store and offline fallback, remote mirror synced
// best-effort. A generation counter guards loads so a slow remote response
// cannot clobber edits made while it was in flight.
type FlowLogService struct {
	mu         sync.Mutex
	repo       FlowEntryRepository
	remote     MenstrualStore
	userID     string
	entries    models.FlowLog
	generation uint64
}

// NewFlowLogService builds a service seeded from the local repository.
// remote may be nil for offline operation.
func NewFlowLogService(repo FlowEntryRepository, remote MenstrualStore, userID string) *FlowLogService {
	service := &FlowLogService{
		repo:    repo,
		remote:  remote,
		userID:  userID,
		entries: models.FlowLog{},
	}
	if records, err := repo.ListByUser(userID); err == nil {
		service.entries = recordsToLog(records)
	}
	return service
}

func recordsToLog(records []models.FlowRecord) models.FlowLog {
	log := make(models.FlowLog, len(records))
	for _, record := range records {
		log[record.Date] = record.Entry()
	}
	return log
}

func logToRecords(userID string, entries models.FlowLog) []models.FlowRecord {
	records := make([]models.FlowRecord, 0, len(entries))
	for date, entry := range entries {
		records = append(records, models.NewFlowRecord(userID, date, entry))
	}
	return records
}

// Load refreshes the working copy from the remote mirror. Remote failures
// fall back to the local copy; a remote 404 with local data present pushes
// the local log up as the initial migration. The result is discarded when a
// newer load or a local edit happened while the fetch was in flight.
func (service *FlowLogService) Load(ctx context.Context) error {
	service.mu.Lock()
	service.generation++
	generation := service.generation
	service.mu.Unlock()

	if service.remote == nil {
		return nil
	}

	remoteLog, found, err := service.remote.GetMenstrual(ctx, service.userID)
	if err != nil {
		log.Printf("flow log: remote load failed, using local copy: %v", err)
		return nil
	}

	if !found {
		service.mu.Lock()
		stale := service.generation != generation
		snapshot := service.snapshotLocked()
		service.mu.Unlock()
		if !stale && len(snapshot) > 0 {
			if err := service.remote.PutMenstrual(ctx, service.userID, snapshot); err != nil {
				log.Printf("flow log: initial migration push failed: %v", err)
			}
		}
		return nil
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	if service.generation != generation {
		// A newer load or a local edit won the race; drop this response.
		return nil
	}
	service.entries = remoteLog
	if err := service.repo.ReplaceAll(service.userID, logToRecords(service.userID, remoteLog)); err != nil {
		log.Printf("flow log: local mirror update failed: %v", err)
	}
	return nil
}

// Upsert stores the entry for a date. An entry with nothing set deletes the
// date instead; empty records are never persisted.
func (service *FlowLogService) Upsert(ctx context.Context, date string, entry models.FlowEntry) error {
	if _, err := ParseDay(date); err != nil {
		return ErrInvalidFlowDate
	}
	if !models.IsValidFlow(entry.Flow) {
		return ErrInvalidFlowValue
	}

	if entry.IsEmpty() {
		return service.Delete(ctx, date)
	}

	service.mu.Lock()
	service.generation++
	service.entries[date] = entry
	record := models.NewFlowRecord(service.userID, date, entry)
	if err := service.repo.Upsert(&record); err != nil {
		service.mu.Unlock()
		return ErrFlowLogSave
	}
	snapshot := service.snapshotLocked()
	service.mu.Unlock()

	service.pushRemote(ctx, snapshot)
	return nil
}

// Delete removes the entry for a date.
func (service *FlowLogService) Delete(ctx context.Context, date string) error {
	if _, err := ParseDay(date); err != nil {
		return ErrInvalidFlowDate
	}

	service.mu.Lock()
	service.generation++
	delete(service.entries, date)
	if err := service.repo.DeleteByUserAndDate(service.userID, date); err != nil {
		service.mu.Unlock()
		return ErrFlowLogSave
	}
	snapshot := service.snapshotLocked()
	service.mu.Unlock()

	service.pushRemote(ctx, snapshot)
	return nil
}

func (service *FlowLogService) pushRemote(ctx context.Context, snapshot models.FlowLog) {
	if service.remote == nil {
		return
	}
	if err := service.remote.PutMenstrual(ctx, service.userID, snapshot); err != nil {
		log.Printf("flow log: remote sync failed: %v", err)
	}
}

func (service *FlowLogService) snapshotLocked() models.FlowLog {
	snapshot := make(models.FlowLog, len(service.entries))
	for date, entry := range service.entries {
		snapshot[date] = entry
	}
	return snapshot
}

// Entry returns the entry for a date, if present.
func (service *FlowLogService) Entry(date string) (models.FlowEntry, bool) {
	service.mu.Lock()
	defer service.mu.Unlock()
	entry, ok := service.entries[date]
	return entry, ok
}

// Entries returns a copy of the full log.
func (service *FlowLogService) Entries() models.FlowLog {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.snapshotLocked()
}
