package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type LabInventoryItem struct {
	ID          int                 `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemName    string              `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity    int                 `gorm:"not null" json:"quantity"`
	Threshold   *int                `json:"threshold,omitempty"`
	UnitCost    decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"unit_cost"`
	Supplier    string              `gorm:"type:varchar(255)" json:"supplier"`
	LastRestock *time.Time          `gorm:"type:date" json:"last_restock,omitempty"`
}

func (LabInventoryItem) TableName() string {
	return "lab_inventory"
}

// IsLow reports whether the stock has fallen to or below its threshold.
func (i *LabInventoryItem) IsLow() bool {
	return i.Threshold != nil && i.Quantity <= *i.Threshold
}
