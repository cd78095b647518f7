package entity

import "time"

type Appointment struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID     string    `gorm:"type:varchar(50);not null;index" json:"patient_id"`
	Date          time.Time `gorm:"type:date;not null;index" json:"date"`
	DoctorName    string    `gorm:"type:varchar(255);not null" json:"doctor_name"`
	TreatmentDone string    `gorm:"type:text" json:"treatment_done"`
	Notes         string    `gorm:"type:text" json:"notes"`
	VisitID       *int      `gorm:"index" json:"visit_id,omitempty"`
	InvoiceID     *int      `gorm:"index" json:"invoice_id,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
