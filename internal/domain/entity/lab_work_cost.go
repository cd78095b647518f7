package entity

import "github.com/shopspring/decimal"

// LabWorkCost is the agreed price of a work type at a given lab technician
type LabWorkCost struct {
	ID            int             `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkType      string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_lab_work_costs_type_technician" json:"work_type"`
	LabTechnician string          `gorm:"type:varchar(255);not null;default:'';uniqueIndex:idx_lab_work_costs_type_technician" json:"lab_technician"`
	Cost          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"cost"`
}

func (LabWorkCost) TableName() string {
	return "lab_work_costs"
}
