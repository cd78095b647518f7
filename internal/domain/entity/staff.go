package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Staff struct {
	ID          int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Role        string          `gorm:"type:varchar(100);not null" json:"role"`
	ContactInfo string          `gorm:"type:varchar(255);not null" json:"contact_info"`
	Address     string          `gorm:"type:text" json:"address"`
	JoinDate    time.Time       `gorm:"type:date;not null" json:"join_date"`
	Salary      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"salary"`
	IsActive    bool            `gorm:"not null" json:"is_active"`
}

func (Staff) TableName() string {
	return "staff"
}
