package models

import "time"

// Medication is one tracked medication. IDs look like med_<unix-ms>_<suffix>
// to stay compatible with records created by earlier releases.
type Medication struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Strength  string    `gorm:"not null;default:''" json:"strength"`
	Frequency string    `gorm:"not null;default:''" json:"frequency"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// MedicationSchedule is the backend's schedule payload, AI-personalized or
// rule-based depending on how it was requested.
type MedicationSchedule struct {
	TimeSlots            ScheduleTimeSlots    `json:"timeSlots"`
	FoodInstructions     []string             `json:"foodInstructions"`
	Warnings             []string             `json:"warnings"`
	SpacingNotes         []string             `json:"spacingNotes"`
	TimeSlotsDetailed    []ScheduleDetailSlot `json:"timeSlotsDetailed"`
	PersonalizationNotes string               `json:"personalizationNotes,omitempty"`
}

type ScheduleTimeSlots struct {
	Morning   []string `json:"morning"`
	Afternoon []string `json:"afternoon"`
	Evening   []string `json:"evening"`
	Night     []string `json:"night"`
}

type ScheduleDetailSlot struct {
	Time        string   `json:"time"`
	Medications []string `json:"medications"`
	Notes       string   `json:"notes,omitempty"`
}

// EmptyMedicationSchedule mirrors the default shape returned when the
// backend has no schedule for the user yet.
func EmptyMedicationSchedule() MedicationSchedule {
	return MedicationSchedule{
		TimeSlots: ScheduleTimeSlots{
			Morning:   []string{},
			Afternoon: []string{},
			Evening:   []string{},
			Night:     []string{},
		},
		FoodInstructions:  []string{},
		Warnings:          []string{},
		SpacingNotes:      []string{},
		TimeSlotsDetailed: []ScheduleDetailSlot{},
	}
}
