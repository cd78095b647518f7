package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice ids double as invoice numbers; see InvoiceRepository.NextID.
type Invoice struct {
	ID            int             `gorm:"primaryKey;autoIncrement:false" json:"id"`
	PatientID     string          `gorm:"type:varchar(50);not null;index" json:"patient_id"`
	VisitID       *int            `gorm:"index" json:"visit_id,omitempty"`
	Date          time.Time       `gorm:"type:date;not null;index" json:"date"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status        string          `gorm:"type:varchar(20);not null" json:"status"`
	PaymentMethod *string         `gorm:"type:varchar(50)" json:"payment_method,omitempty"`
	PaymentDate   *time.Time      `gorm:"type:date" json:"payment_date,omitempty"`
	Notes         string          `gorm:"type:text" json:"notes"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// SetStatus applies a status change. Paying stamps today's date;
// any other status clears the payment details.
func (i *Invoice) SetStatus(status string, paymentMethod *string, today time.Time) {
	i.Status = status
	if status == InvoiceStatusPaid {
		i.PaymentDate = &today
		if paymentMethod != nil {
			i.PaymentMethod = paymentMethod
		}
		return
	}
	i.PaymentDate = nil
	i.PaymentMethod = nil
}
