package dto

import (
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateStaffRequest struct {
	Name        string          `json:"name" validate:"required,min=2"`
	Role        string          `json:"role" validate:"required"`
	ContactInfo string          `json:"contact_info" validate:"required"`
	Address     string          `json:"address"`
	JoinDate    string          `json:"join_date" validate:"required,datetime=2006-01-02"`
	Salary      decimal.Decimal `json:"salary" validate:"gte=0"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

type UpdateStaffRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=2"`
	Role        *string          `json:"role,omitempty" validate:"omitempty,min=1"`
	ContactInfo *string          `json:"contact_info,omitempty" validate:"omitempty,min=1"`
	Address     *string          `json:"address,omitempty"`
	JoinDate    *string          `json:"join_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Salary      *decimal.Decimal `json:"salary,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

type CreateAttendanceRequest struct {
	StaffID int    `json:"staff_id" validate:"required,gt=0"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Present *bool  `json:"present" validate:"required"`
	Remarks string `json:"remarks"`
}

type UpdateAttendanceRequest struct {
	Date    *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Present *bool   `json:"present,omitempty"`
	Remarks *string `json:"remarks,omitempty"`
}

type CreateSalaryRequest struct {
	StaffID       int              `json:"staff_id" validate:"required,gt=0"`
	Month         string           `json:"month" validate:"required"`
	Year          int              `json:"year" validate:"required,gte=2000,lte=2100"`
	BaseSalary    decimal.Decimal  `json:"base_salary" validate:"gte=0"`
	Bonus         *decimal.Decimal `json:"bonus,omitempty" validate:"omitempty,gte=0"`
	Deduction     *decimal.Decimal `json:"deduction,omitempty" validate:"omitempty,gte=0"`
	PaymentDate   *string          `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaymentStatus string           `json:"payment_status" validate:"required,oneof=pending paid"`
	Notes         string           `json:"notes"`
}

type UpdateSalaryRequest struct {
	Month         *string          `json:"month,omitempty" validate:"omitempty,min=1"`
	Year          *int             `json:"year,omitempty" validate:"omitempty,gte=2000,lte=2100"`
	BaseSalary    *decimal.Decimal `json:"base_salary,omitempty" validate:"omitempty,gte=0"`
	Bonus         *decimal.Decimal `json:"bonus,omitempty" validate:"omitempty,gte=0"`
	Deduction     *decimal.Decimal `json:"deduction,omitempty" validate:"omitempty,gte=0"`
	PaymentDate   *string          `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaymentStatus *string          `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid"`
	Notes         *string          `json:"notes,omitempty"`
}

// Response DTOs

type StaffResponse struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Role        string          `json:"role"`
	ContactInfo string          `json:"contact_info"`
	Address     string          `json:"address"`
	JoinDate    string          `json:"join_date"`
	Salary      decimal.Decimal `json:"salary"`
	IsActive    bool            `json:"is_active"`
}

type AttendanceResponse struct {
	ID      int    `json:"id"`
	StaffID int    `json:"staff_id"`
	Date    string `json:"date"`
	Present bool   `json:"present"`
	Remarks string `json:"remarks"`
}

type SalaryResponse struct {
	ID            int             `json:"id"`
	StaffID       int             `json:"staff_id"`
	Month         string          `json:"month"`
	Year          int             `json:"year"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	Bonus         decimal.Decimal `json:"bonus"`
	Deduction     decimal.Decimal `json:"deduction"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	PaymentDate   *string         `json:"payment_date,omitempty"`
	PaymentStatus string          `json:"payment_status"`
	Notes         string          `json:"notes"`
}
