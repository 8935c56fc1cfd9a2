package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/benjihealth/sanctuary/internal/models"
)

type MedicationRepository struct {
	database *gorm.DB
}

func NewMedicationRepository(database *gorm.DB) *MedicationRepository {
	return &MedicationRepository{database: database}
}

func (repo *MedicationRepository) ListByUser(userID string) ([]models.Medication, error) {
	medications := make([]models.Medication, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&medications).Error; err != nil {
		return nil, err
	}
	return medications, nil
}

func (repo *MedicationRepository) Save(medication *models.Medication) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "strength", "frequency", "updated_at",
		}),
	}).Create(medication).Error
}

func (repo *MedicationRepository) Delete(userID string, id string) error {
	return repo.database.
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.Medication{}).Error
}
