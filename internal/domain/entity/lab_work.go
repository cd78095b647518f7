package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LabWorkStatusPending    = "pending"
	LabWorkStatusInProgress = "in_progress"
	LabWorkStatusCompleted  = "completed"
	LabWorkStatusCancelled  = "cancelled"
)

// LabWork is an order sent to an external lab, tracked from start to completion
type LabWork struct {
	ID            int                 `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID     string              `gorm:"type:varchar(50);not null;index" json:"patient_id"`
	WorkType      string              `gorm:"type:varchar(100);not null" json:"work_type"`
	Status        string              `gorm:"type:varchar(20);not null;index" json:"status"`
	Description   string              `gorm:"type:text" json:"description"`
	Shade         string              `gorm:"type:varchar(20)" json:"shade"`
	StartDate     time.Time           `gorm:"type:date;not null" json:"start_date"`
	DueDate       time.Time           `gorm:"type:date;not null" json:"due_date"`
	CompletedDate *time.Time          `gorm:"type:date" json:"completed_date,omitempty"`
	Technician    string              `gorm:"type:varchar(255)" json:"technician"`
	Cost          decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"cost"`
	Notes         string              `gorm:"type:text" json:"notes"`
}

func (LabWork) TableName() string {
	return "lab_works"
}

// IsOpen reports whether the lab has not finished the work yet.
func (l *LabWork) IsOpen() bool {
	return l.Status == LabWorkStatusPending || l.Status == LabWorkStatusInProgress
}
