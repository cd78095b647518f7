package entity

import "time"

type StaffAttendance struct {
	ID      int       `gorm:"primaryKey;autoIncrement" json:"id"`
	StaffID int       `gorm:"not null;uniqueIndex:idx_staff_attendance_staff_date" json:"staff_id"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex:idx_staff_attendance_staff_date" json:"date"`
	Present bool      `gorm:"not null" json:"present"`
	Remarks string    `gorm:"type:text" json:"remarks"`
}

func (StaffAttendance) TableName() string {
	return "staff_attendance"
}
