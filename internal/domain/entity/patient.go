package entity

import "time"

// Patient is identified externally by PatientID (e.g. PT2026-0001);
// every patient-scoped table references that code, not ID.
type Patient struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID   string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"patient_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Age         int       `gorm:"not null" json:"age"`
	Sex         string    `gorm:"type:varchar(20);not null" json:"sex"`
	Address     string    `gorm:"type:text;not null" json:"address"`
	PhoneNumber string    `gorm:"type:varchar(30);not null" json:"phone_number"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Patient) TableName() string {
	return "patients"
}
