package entity

import "github.com/shopspring/decimal"

type InvoiceItem struct {
	ID          int             `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceID   int             `gorm:"not null;index" json:"invoice_id"`
	Item        string          `gorm:"type:varchar(255);not null" json:"item"`
	Description string          `gorm:"type:text" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}
