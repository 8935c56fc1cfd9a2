package services

import (
	"context"
	"errors"
	"testing"

	"github.com/benjihealth/sanctuary/internal/models"
)

type memoryFlowRepo struct {
	records map[string]models.FlowRecord
}

func newMemoryFlowRepo() *memoryFlowRepo {
	return &memoryFlowRepo{records: map[string]models.FlowRecord{}}
}

func (repo *memoryFlowRepo) ListByUser(userID string) ([]models.FlowRecord, error) {
	list := make([]models.FlowRecord, 0, len(repo.records))
	for _, record := range repo.records {
		if record.UserID == userID {
			list = append(list, record)
		}
	}
	return list, nil
}

func (repo *memoryFlowRepo) Upsert(record *models.FlowRecord) error {
	repo.records[record.Date] = *record
	return nil
}

func (repo *memoryFlowRepo) DeleteByUserAndDate(userID string, date string) error {
	delete(repo.records, date)
	return nil
}

func (repo *memoryFlowRepo) ReplaceAll(userID string, records []models.FlowRecord) error {
	repo.records = map[string]models.FlowRecord{}
	for _, record := range records {
		repo.records[record.Date] = record
	}
	return nil
}

type fakeMenstrualStore struct {
	log     models.FlowLog
	found   bool
	err     error
	puts    []models.FlowLog
	onFetch func()
}

func (store *fakeMenstrualStore) GetMenstrual(ctx context.Context, userID string) (models.FlowLog, bool, error) {
	if store.onFetch != nil {
		store.onFetch()
	}
	return store.log, store.found, store.err
}

func (store *fakeMenstrualStore) PutMenstrual(ctx context.Context, userID string, entries models.FlowLog) error {
	store.puts = append(store.puts, entries)
	return nil
}

func TestFlowLogUpsertAndEntry(t *testing.T) {
	repo := newMemoryFlowRepo()
	service := NewFlowLogService(repo, nil, "user-1")

	entry := models.FlowEntry{Flow: models.FlowMedium, Symptoms: []string{"cramps"}, CrampPain: 4}
	if err := service.Upsert(context.Background(), "2024-03-10", entry); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, ok := service.Entry("2024-03-10")
	if !ok {
		t.Fatal("expected entry for 2024-03-10")
	}
	if got.Flow != models.FlowMedium || got.CrampPain != 4 {
		t.Errorf("unexpected entry %+v", got)
	}
	if _, ok := repo.records["2024-03-10"]; !ok {
		t.Error("entry not persisted to repository")
	}
}

func TestFlowLogUpsertEmptyEntryDeletesDate(t *testing.T) {
	repo := newMemoryFlowRepo()
	service := NewFlowLogService(repo, nil, "user-1")

	if err := service.Upsert(context.Background(), "2024-03-10", models.FlowEntry{Flow: models.FlowLight}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := service.Upsert(context.Background(), "2024-03-10", models.FlowEntry{}); err != nil {
		t.Fatalf("upsert empty: %v", err)
	}

	if _, ok := service.Entry("2024-03-10"); ok {
		t.Error("date key should be absent after clearing all fields")
	}
	if _, ok := repo.records["2024-03-10"]; ok {
		t.Error("repository should not keep an empty record")
	}
}

func TestFlowLogUpsertValidation(t *testing.T) {
	service := NewFlowLogService(newMemoryFlowRepo(), nil, "user-1")

	if err := service.Upsert(context.Background(), "10/03/2024", models.FlowEntry{Flow: models.FlowLight}); !errors.Is(err, ErrInvalidFlowDate) {
		t.Errorf("bad date: got %v, want ErrInvalidFlowDate", err)
	}
	if err := service.Upsert(context.Background(), "2024-03-10", models.FlowEntry{Flow: "torrential"}); !errors.Is(err, ErrInvalidFlowValue) {
		t.Errorf("bad flow: got %v, want ErrInvalidFlowValue", err)
	}
}

func TestFlowLogLoadAppliesRemote(t *testing.T) {
	repo := newMemoryFlowRepo()
	remote := &fakeMenstrualStore{
		log:   models.FlowLog{"2024-02-01": {Flow: models.FlowHeavy}},
		found: true,
	}
	service := NewFlowLogService(repo, remote, "user-1")

	if err := service.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, ok := service.Entry("2024-02-01"); !ok {
		t.Error("remote entry not applied")
	}
	if _, ok := repo.records["2024-02-01"]; !ok {
		t.Error("remote entry not mirrored to repository")
	}
}

func TestFlowLogLoadMigratesLocalOnMissingRemote(t *testing.T) {
	repo := newMemoryFlowRepo()
	record := models.NewFlowRecord("user-1", "2024-02-01", models.FlowEntry{Flow: models.FlowLight})
	repo.records["2024-02-01"] = record
	remote := &fakeMenstrualStore{found: false}
	service := NewFlowLogService(repo, remote, "user-1")

	if err := service.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(remote.puts) != 1 {
		t.Fatalf("expected one migration push, got %d", len(remote.puts))
	}
	if _, ok := remote.puts[0]["2024-02-01"]; !ok {
		t.Error("migration push missing local entry")
	}
}

func TestFlowLogLoadFallsBackOnRemoteError(t *testing.T) {
	repo := newMemoryFlowRepo()
	repo.records["2024-02-01"] = models.NewFlowRecord("user-1", "2024-02-01", models.FlowEntry{Flow: models.FlowLight})
	remote := &fakeMenstrualStore{err: errors.New("connection refused")}
	service := NewFlowLogService(repo, remote, "user-1")

	if err := service.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := service.Entry("2024-02-01"); !ok {
		t.Error("local copy should survive a failed remote load")
	}
}

func TestFlowLogStaleLoadDoesNotClobberEdit(t *testing.T) {
	repo := newMemoryFlowRepo()
	remote := &fakeMenstrualStore{
		log:   models.FlowLog{"2024-02-01": {Flow: models.FlowLight}},
		found: true,
	}
	service := NewFlowLogService(repo, remote, "user-1")

	// Edit lands while the remote response is still in flight.
	remote.onFetch = func() {
		if err := service.Upsert(context.Background(), "2024-03-10", models.FlowEntry{Flow: models.FlowHeavy}); err != nil {
			t.Errorf("mid-load upsert: %v", err)
		}
	}

	if err := service.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, ok := service.Entry("2024-03-10"); !ok {
		t.Error("local edit lost to a stale remote response")
	}
	if _, ok := service.Entry("2024-02-01"); ok {
		t.Error("stale remote response should have been discarded")
	}
}
