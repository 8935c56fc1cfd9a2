package db

import "gorm.io/gorm"

type Repositories struct {
	FlowRecords *FlowRecordRepository
	Medications *MedicationRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		FlowRecords: NewFlowRecordRepository(database),
		Medications: NewMedicationRepository(database),
	}
}
