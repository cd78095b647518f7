package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SalaryStatusPending = "pending"
	SalaryStatusPaid    = "paid"
)

type StaffSalary struct {
	ID            int             `gorm:"primaryKey;autoIncrement" json:"id"`
	StaffID       int             `gorm:"not null;index" json:"staff_id"`
	Month         string          `gorm:"type:varchar(20);not null" json:"month"`
	Year          int             `gorm:"not null" json:"year"`
	BaseSalary    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_salary"`
	Bonus         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"bonus"`
	Deduction     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"deduction"`
	NetAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"net_amount"`
	PaymentDate   *time.Time      `gorm:"type:date" json:"payment_date,omitempty"`
	PaymentStatus string          `gorm:"type:varchar(20);not null" json:"payment_status"`
	Notes         string          `gorm:"type:text" json:"notes"`
}

func (StaffSalary) TableName() string {
	return "staff_salary"
}

// ComputeNet sets NetAmount to base + bonus - deduction.
func (s *StaffSalary) ComputeNet() {
	s.NetAmount = s.BaseSalary.Add(s.Bonus).Sub(s.Deduction)
}
