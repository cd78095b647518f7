package dto

import (
	"github.com/shopspring/decimal"
)

type DashboardSummaryResponse struct {
	TodayAppointments int64           `json:"today_appointments"`
	PendingLabWorks   int64           `json:"pending_lab_works"`
	TodayRevenue      decimal.Decimal `json:"today_revenue"`
	TotalPatients     int64           `json:"total_patients"`
}

type PaymentMethodSummary struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type RevenueReportResponse struct {
	StartDate      string                 `json:"start_date"`
	EndDate        string                 `json:"end_date"`
	InvoiceCount   int                    `json:"invoice_count"`
	TotalBilled    decimal.Decimal        `json:"total_billed"`
	TotalCollected decimal.Decimal        `json:"total_collected"`
	TotalPending   decimal.Decimal        `json:"total_pending"`
	ByMethod       []PaymentMethodSummary `json:"by_payment_method"`
	Invoices       []InvoiceResponse      `json:"invoices"`
}

type UploadedFileResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Type     string `json:"type"`
	Size     int    `json:"size"`
}
