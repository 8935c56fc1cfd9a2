package models

import "time"

// FlowRecord is the persisted form of a FlowEntry, one row per user per day.
type FlowRecord struct {
	ID        uint     `gorm:"primaryKey"`
	UserID    string   `gorm:"not null;uniqueIndex:uidx_flow_user_date"`
	Date      string   `gorm:"type:text;not null;uniqueIndex:uidx_flow_user_date"`
	Flow      string   `gorm:"not null;default:''"`
	Symptoms  []string `gorm:"serializer:json"`
	CrampPain int      `gorm:"not null;default:0"`
	Discharge string   `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (record FlowRecord) Entry() FlowEntry {
	return FlowEntry{
		Flow:      record.Flow,
		Symptoms:  record.Symptoms,
		CrampPain: record.CrampPain,
		Discharge: record.Discharge,
	}
}

func NewFlowRecord(userID string, date string, entry FlowEntry) FlowRecord {
	return FlowRecord{
		UserID:    userID,
		Date:      date,
		Flow:      entry.Flow,
		Symptoms:  entry.Symptoms,
		CrampPain: entry.CrampPain,
		Discharge: entry.Discharge,
	}
}
