package entity

import "time"

type DoctorSignature struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorName     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"doctor_name"`
	SignatureImage string    `gorm:"type:text;not null" json:"signature_image"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DoctorSignature) TableName() string {
	return "doctor_signatures"
}
