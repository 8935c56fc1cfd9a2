package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/benjihealth/sanctuary/internal/models"
	"github.com/benjihealth/sanctuary/internal/security"
)

const (
	legacyMedicationsKey  = "Benji_medications"
	aiScheduleCachePrefix = "Benji_medication_schedule_ai_cache_"
)

var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrMedicationName     = errors.New("medication name is required")
	ErrMedicationSave     = errors.New("save medication failed")
)

// MedicationRepository is the local persisted medication list.
type MedicationRepository interface {
	ListByUser(userID string) ([]models.Medication, error)
	Save(medication *models.Medication) error
	Delete(userID string, id string) error
}

// MedicationBackend syncs the list and serves schedules.
type MedicationBackend interface {
	PutMedications(ctx context.Context, userID string, medications []models.Medication) error
	GetMedicationSchedule(ctx context.Context, userID string, useAI bool) (models.MedicationSchedule, error)
}

// MedicationService keeps the medication list local-first: the repository is
// the source of truth, the backend mirror is best-effort. Records written by
// earlier releases under the browser-storage key are migrated into the
// repository once, on first construction against an empty repository.
type MedicationService struct {
	mu      sync.Mutex
	repo    MedicationRepository
	backend MedicationBackend
	kv      KeyValue
	userID  string
}

func NewMedicationService(repo MedicationRepository, backend MedicationBackend, kv KeyValue, userID string) *MedicationService {
	service := &MedicationService{
		repo:    repo,
		backend: backend,
		kv:      kv,
		userID:  userID,
	}
	service.migrateLegacyList()
	return service
}

// migrateLegacyList imports the old browser-storage list when the repository
// has nothing for this user yet. Elements are either full records or, from
// the oldest releases, bare name strings.
func (service *MedicationService) migrateLegacyList() {
	existing, err := service.repo.ListByUser(service.userID)
	if err != nil || len(existing) > 0 {
		return
	}

	raw, found, err := service.kv.Get(legacyMedicationsKey)
	if err != nil || !found {
		return
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		return
	}

	for _, element := range elements {
		var medication models.Medication
		if err := json.Unmarshal(element, &medication); err != nil {
			var name string
			if err := json.Unmarshal(element, &name); err != nil || strings.TrimSpace(name) == "" {
				continue
			}
			medication = models.Medication{Name: strings.TrimSpace(name)}
		}
		if medication.Name == "" {
			continue
		}
		if medication.ID == "" {
			medication.ID = security.NewID("med")
		}
		medication.UserID = service.userID
		if err := service.repo.Save(&medication); err != nil {
			log.Printf("medications: legacy import failed for %q: %v", medication.Name, err)
		}
	}
	_ = service.kv.Delete(legacyMedicationsKey)
}

// List returns the user's medications.
func (service *MedicationService) List() ([]models.Medication, error) {
	return service.repo.ListByUser(service.userID)
}

// Add stores a new medication and syncs the list.
func (service *MedicationService) Add(ctx context.Context, name, strength, frequency string) (models.Medication, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Medication{}, ErrMedicationName
	}

	medication := models.Medication{
		ID:        security.NewID("med"),
		UserID:    service.userID,
		Name:      name,
		Strength:  strings.TrimSpace(strength),
		Frequency: strings.TrimSpace(frequency),
	}

	service.mu.Lock()
	err := service.repo.Save(&medication)
	service.mu.Unlock()
	if err != nil {
		return models.Medication{}, ErrMedicationSave
	}

	service.syncBackend(ctx)
	return medication, nil
}

// Update replaces the named fields of an existing medication.
func (service *MedicationService) Update(ctx context.Context, id, name, strength, frequency string) (models.Medication, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Medication{}, ErrMedicationName
	}

	service.mu.Lock()
	medications, err := service.repo.ListByUser(service.userID)
	if err != nil {
		service.mu.Unlock()
		return models.Medication{}, ErrMedicationSave
	}

	var updated *models.Medication
	for i := range medications {
		if medications[i].ID == id {
			updated = &medications[i]
			break
		}
	}
	if updated == nil {
		service.mu.Unlock()
		return models.Medication{}, ErrMedicationNotFound
	}

	updated.Name = name
	updated.Strength = strings.TrimSpace(strength)
	updated.Frequency = strings.TrimSpace(frequency)
	if err := service.repo.Save(updated); err != nil {
		service.mu.Unlock()
		return models.Medication{}, ErrMedicationSave
	}
	result := *updated
	service.mu.Unlock()

	service.syncBackend(ctx)
	return result, nil
}

// Delete removes a medication, invalidates the AI schedule cache and syncs.
func (service *MedicationService) Delete(ctx context.Context, id string) error {
	service.mu.Lock()
	err := service.repo.Delete(service.userID, id)
	service.mu.Unlock()
	if err != nil {
		return ErrMedicationSave
	}

	service.clearScheduleCache()
	service.syncBackend(ctx)
	return nil
}

func (service *MedicationService) syncBackend(ctx context.Context) {
	if service.backend == nil {
		return
	}
	medications, err := service.repo.ListByUser(service.userID)
	if err != nil {
		return
	}
	if err := service.backend.PutMedications(ctx, service.userID, medications); err != nil {
		log.Printf("medications: backend sync failed: %v", err)
	}
}

// Schedule fetches the medication schedule. AI-personalized schedules are
// cached locally so the agent only runs when the user asks for a refresh.
func (service *MedicationService) Schedule(ctx context.Context, useAI bool, refresh bool) (models.MedicationSchedule, error) {
	if service.backend == nil {
		return models.EmptyMedicationSchedule(), nil
	}

	cacheKey := aiScheduleCachePrefix + service.userID
	if useAI && !refresh {
		if raw, found, err := service.kv.Get(cacheKey); err == nil && found {
			var schedule models.MedicationSchedule
			if err := json.Unmarshal([]byte(raw), &schedule); err == nil {
				return schedule, nil
			}
		}
	}

	schedule, err := service.backend.GetMedicationSchedule(ctx, service.userID, useAI)
	if err != nil {
		return models.MedicationSchedule{}, err
	}

	if useAI {
		if data, err := json.Marshal(schedule); err == nil {
			_ = service.kv.Set(cacheKey, string(data))
		}
	}
	return schedule, nil
}

func (service *MedicationService) clearScheduleCache() {
	_ = service.kv.Delete(aiScheduleCachePrefix + service.userID)
}
