package dto

import (
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateLabWorkRequest struct {
	PatientID     string           `json:"patient_id" validate:"required"`
	WorkType      string           `json:"work_type" validate:"required"`
	Status        string           `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
	Description   string           `json:"description"`
	Shade         string           `json:"shade" validate:"max=20"`
	StartDate     string           `json:"start_date" validate:"required,datetime=2006-01-02"`
	DueDate       string           `json:"due_date" validate:"required,datetime=2006-01-02"`
	CompletedDate *string          `json:"completed_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Technician    string           `json:"technician"`
	Cost          *decimal.Decimal `json:"cost,omitempty" validate:"omitempty,gte=0"`
	Notes         string           `json:"notes"`
}

type UpdateLabWorkRequest struct {
	WorkType      *string          `json:"work_type,omitempty" validate:"omitempty,min=1"`
	Status        *string          `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Description   *string          `json:"description,omitempty"`
	Shade         *string          `json:"shade,omitempty" validate:"omitempty,max=20"`
	StartDate     *string          `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DueDate       *string          `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CompletedDate *string          `json:"completed_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Technician    *string          `json:"technician,omitempty"`
	Cost          *decimal.Decimal `json:"cost,omitempty" validate:"omitempty,gte=0"`
	Notes         *string          `json:"notes,omitempty"`
}

type CreateLabWorkCostRequest struct {
	WorkType      string          `json:"work_type" validate:"required"`
	LabTechnician string          `json:"lab_technician"`
	Cost          decimal.Decimal `json:"cost" validate:"gte=0"`
}

type UpdateLabWorkCostRequest struct {
	WorkType      *string          `json:"work_type,omitempty" validate:"omitempty,min=1"`
	LabTechnician *string          `json:"lab_technician,omitempty"`
	Cost          *decimal.Decimal `json:"cost,omitempty" validate:"omitempty,gte=0"`
}

type CreateLabInventoryItemRequest struct {
	ItemName    string           `json:"item_name" validate:"required"`
	Quantity    int              `json:"quantity" validate:"gte=0"`
	Threshold   *int             `json:"threshold,omitempty" validate:"omitempty,gte=0"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty" validate:"omitempty,gte=0"`
	Supplier    string           `json:"supplier"`
	LastRestock *string          `json:"last_restock,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateLabInventoryItemRequest struct {
	ItemName    *string          `json:"item_name,omitempty" validate:"omitempty,min=1"`
	Quantity    *int             `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Threshold   *int             `json:"threshold,omitempty" validate:"omitempty,gte=0"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty" validate:"omitempty,gte=0"`
	Supplier    *string          `json:"supplier,omitempty"`
	LastRestock *string          `json:"last_restock,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type LabWorkResponse struct {
	ID            int                 `json:"id"`
	PatientID     string              `json:"patient_id"`
	WorkType      string              `json:"work_type"`
	Status        string              `json:"status"`
	Description   string              `json:"description"`
	Shade         string              `json:"shade"`
	StartDate     string              `json:"start_date"`
	DueDate       string              `json:"due_date"`
	CompletedDate *string             `json:"completed_date,omitempty"`
	Technician    string              `json:"technician"`
	Cost          decimal.NullDecimal `json:"cost"`
	Notes         string              `json:"notes"`
}

type LabWorkCostResponse struct {
	ID            int             `json:"id"`
	WorkType      string          `json:"work_type"`
	LabTechnician string          `json:"lab_technician"`
	Cost          decimal.Decimal `json:"cost"`
}

type LabInventoryItemResponse struct {
	ID          int                 `json:"id"`
	ItemName    string              `json:"item_name"`
	Quantity    int                 `json:"quantity"`
	Threshold   *int                `json:"threshold,omitempty"`
	UnitCost    decimal.NullDecimal `json:"unit_cost"`
	Supplier    string              `json:"supplier"`
	LastRestock *string             `json:"last_restock,omitempty"`
	LowStock    bool                `json:"low_stock"`
}
