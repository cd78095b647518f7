package usecase

import (
	"context"
	"errors"
	"sort"

	"dental-clinic/internal/converter"
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidDateRange = errors.New("start date must not be after end date")

const unspecifiedPaymentMethod = "unspecified"

type ReportUsecase interface {
	DashboardSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error)
	// Revenue summarises invoices dated between start and end inclusive.
	// Empty bounds default to the first of the current month and today.
	Revenue(ctx context.Context, start, end string) (*dto.RevenueReportResponse, error)
}

type reportUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	labWorkRepo     repository.LabWorkRepository
	invoiceRepo     repository.InvoiceRepository
	patientRepo     repository.PatientRepository
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	labWorkRepo repository.LabWorkRepository,
	invoiceRepo repository.InvoiceRepository,
	patientRepo repository.PatientRepository,
) ReportUsecase {
	return &reportUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		labWorkRepo:     labWorkRepo,
		invoiceRepo:     invoiceRepo,
		patientRepo:     patientRepo,
	}
}

func (u *reportUsecase) DashboardSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	db := u.db.WithContext(ctx)
	day := today()

	appointments, err := u.appointmentRepo.CountOnDate(db, day)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}

	labWorks, err := u.labWorkRepo.CountByStatus(db, entity.LabWorkStatusPending, entity.LabWorkStatusInProgress)
	if err != nil {
		u.log.Warnf("Failed to count lab works: %+v", err)
		return nil, err
	}

	invoices, err := u.invoiceRepo.FindByDateRange(db, day, day)
	if err != nil {
		u.log.Warnf("Failed to find invoices: %+v", err)
		return nil, err
	}

	patients, err := u.patientRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	revenue := decimal.Zero
	for _, invoice := range invoices {
		if invoice.Status == entity.InvoiceStatusPaid {
			revenue = revenue.Add(invoice.TotalAmount)
		}
	}

	return &dto.DashboardSummaryResponse{
		TodayAppointments: appointments,
		PendingLabWorks:   labWorks,
		TodayRevenue:      revenue,
		TotalPatients:     patients,
	}, nil
}

func (u *reportUsecase) Revenue(ctx context.Context, start, end string) (*dto.RevenueReportResponse, error) {
	day := today()

	endDate := day
	if end != "" {
		t, err := parseDate(end)
		if err != nil {
			return nil, err
		}
		endDate = t
	}

	startDate := endDate.AddDate(0, 0, 1-endDate.Day())
	if start != "" {
		t, err := parseDate(start)
		if err != nil {
			return nil, err
		}
		startDate = t
	}

	if startDate.After(endDate) {
		return nil, ErrInvalidDateRange
	}

	invoices, err := u.invoiceRepo.FindByDateRange(u.db.WithContext(ctx), startDate, endDate)
	if err != nil {
		u.log.Warnf("Failed to find invoices: %+v", err)
		return nil, err
	}

	report := &dto.RevenueReportResponse{
		StartDate:      startDate.Format(dateLayout),
		EndDate:        endDate.Format(dateLayout),
		InvoiceCount:   len(invoices),
		TotalBilled:    decimal.Zero,
		TotalCollected: decimal.Zero,
		TotalPending:   decimal.Zero,
		Invoices:       converter.InvoicesToResponses(invoices),
	}

	byMethod := map[string]*dto.PaymentMethodSummary{}
	for _, invoice := range invoices {
		switch invoice.Status {
		case entity.InvoiceStatusCancelled:
			continue
		case entity.InvoiceStatusPaid:
			report.TotalCollected = report.TotalCollected.Add(invoice.TotalAmount)

			method := unspecifiedPaymentMethod
			if invoice.PaymentMethod != nil && *invoice.PaymentMethod != "" {
				method = *invoice.PaymentMethod
			}
			summary, ok := byMethod[method]
			if !ok {
				summary = &dto.PaymentMethodSummary{Method: method, Amount: decimal.Zero}
				byMethod[method] = summary
			}
			summary.Count++
			summary.Amount = summary.Amount.Add(invoice.TotalAmount)
		default:
			report.TotalPending = report.TotalPending.Add(invoice.TotalAmount)
		}
		report.TotalBilled = report.TotalBilled.Add(invoice.TotalAmount)
	}

	report.ByMethod = make([]dto.PaymentMethodSummary, 0, len(byMethod))
	for _, summary := range byMethod {
		report.ByMethod = append(report.ByMethod, *summary)
	}
	sort.Slice(report.ByMethod, func(i, j int) bool {
		return report.ByMethod[i].Method < report.ByMethod[j].Method
	})

	return report, nil
}
