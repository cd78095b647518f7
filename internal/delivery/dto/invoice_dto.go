package dto

import (
	"github.com/shopspring/decimal"
)

// Request DTOs

type InvoiceItemInput struct {
	Item        string          `json:"item" validate:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
}

type CreateInvoiceRequest struct {
	PatientID     string             `json:"patient_id" validate:"required"`
	VisitID       *int               `json:"visit_id,omitempty" validate:"omitempty,gt=0"`
	Date          string             `json:"date" validate:"required,datetime=2006-01-02"`
	TotalAmount   *decimal.Decimal   `json:"total_amount,omitempty" validate:"omitempty,gte=0"`
	Status        string             `json:"status" validate:"required,oneof=pending paid cancelled"`
	PaymentMethod *string            `json:"payment_method,omitempty"`
	PaymentDate   *string            `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string             `json:"notes"`
	Items         []InvoiceItemInput `json:"items,omitempty" validate:"dive"`
}

type UpdateInvoiceRequest struct {
	VisitID       *int             `json:"visit_id,omitempty" validate:"omitempty,gt=0"`
	Date          *string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TotalAmount   *decimal.Decimal `json:"total_amount,omitempty" validate:"omitempty,gte=0"`
	Status        *string          `json:"status,omitempty" validate:"omitempty,oneof=pending paid cancelled"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	PaymentDate   *string          `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         *string          `json:"notes,omitempty"`
}

// PatchInvoiceStatusRequest is the quick status change used by the
// invoices list (mark as paid, cancel).
type PatchInvoiceStatusRequest struct {
	Status        string  `json:"status" validate:"required,oneof=pending paid cancelled"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

type CreateInvoiceItemRequest struct {
	InvoiceID   int             `json:"invoice_id" validate:"required,gt=0"`
	Item        string          `json:"item" validate:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
}

type UpdateInvoiceItemRequest struct {
	Item        *string          `json:"item,omitempty" validate:"omitempty,min=1"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gte=0"`
}

// Response DTOs

type InvoiceItemResponse struct {
	ID          int             `json:"id"`
	InvoiceID   int             `json:"invoice_id"`
	Item        string          `json:"item"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type InvoiceResponse struct {
	ID            int                   `json:"id"`
	PatientID     string                `json:"patient_id"`
	VisitID       *int                  `json:"visit_id,omitempty"`
	Date          string                `json:"date"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	Status        string                `json:"status"`
	PaymentMethod *string               `json:"payment_method,omitempty"`
	PaymentDate   *string               `json:"payment_date,omitempty"`
	Notes         string                `json:"notes"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
}
