package entity

import "time"

const (
	FollowUpStatusScheduled = "Scheduled"
	FollowUpStatusCompleted = "Completed"
	FollowUpStatusCancelled = "Cancelled"
)

type FollowUp struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	VisitID   int       `gorm:"not null;index" json:"visit_id"`
	PatientID string    `gorm:"type:varchar(50);not null;index" json:"patient_id"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	Reason    string    `gorm:"type:text" json:"reason"`
	Status    string    `gorm:"type:varchar(20);not null;default:'Scheduled'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FollowUp) TableName() string {
	return "follow_ups"
}
