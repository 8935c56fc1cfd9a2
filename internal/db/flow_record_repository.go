package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/benjihealth/sanctuary/internal/models"
)

type FlowRecordRepository struct {
	database *gorm.DB
}

func NewFlowRecordRepository(database *gorm.DB) *FlowRecordRepository {
	return &FlowRecordRepository{database: database}
}

func (repo *FlowRecordRepository) ListByUser(userID string) ([]models.FlowRecord, error) {
	records := make([]models.FlowRecord, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *FlowRecordRepository) Find(userID string, date string) (models.FlowRecord, bool, error) {
	record := models.FlowRecord{}
	result := repo.database.
		Where("user_id = ? AND date = ?", userID, date).
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.FlowRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.FlowRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *FlowRecordRepository) Upsert(record *models.FlowRecord) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"flow", "symptoms", "cramp_pain", "discharge", "updated_at",
		}),
	}).Create(record).Error
}

func (repo *FlowRecordRepository) DeleteByUserAndDate(userID string, date string) error {
	return repo.database.
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&models.FlowRecord{}).Error
}

// ReplaceAll swaps the user's whole log for the given records in one
// transaction, used when the remote copy wins a sync.
func (repo *FlowRecordRepository) ReplaceAll(userID string, records []models.FlowRecord) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.FlowRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}
