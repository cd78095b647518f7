package usecase

import (
	"context"
	"testing"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) reports() ReportUsecase {
	return NewReportUsecase(e.db, e.log,
		repository.NewAppointmentRepository(),
		repository.NewLabWorkRepository(),
		repository.NewInvoiceRepository(),
		repository.NewPatientRepository())
}

func createPricedInvoice(t *testing.T, uc InvoiceUsecase, date, status string, amount int64, method *string) {
	t.Helper()
	total := decimal.NewFromInt(amount)
	_, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{
		PatientID:     "PT2026-0001",
		Date:          date,
		TotalAmount:   &total,
		Status:        status,
		PaymentMethod: method,
	})
	require.NoError(t, err)
}

func TestReportRevenue(t *testing.T) {
	freezeTime(t, "2026-03-20")
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	invoices := env.invoices(false)

	createPricedInvoice(t, invoices, "2026-03-02", entity.InvoiceStatusPaid, 100, strPtr("cash"))
	createPricedInvoice(t, invoices, "2026-03-05", entity.InvoiceStatusPaid, 250, strPtr("card"))
	createPricedInvoice(t, invoices, "2026-03-06", entity.InvoiceStatusPaid, 50, nil)
	createPricedInvoice(t, invoices, "2026-03-10", entity.InvoiceStatusPending, 70, nil)
	createPricedInvoice(t, invoices, "2026-03-11", entity.InvoiceStatusCancelled, 999, nil)
	createPricedInvoice(t, invoices, "2026-02-27", entity.InvoiceStatusPaid, 500, strPtr("cash"))

	report, err := env.reports().Revenue(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", report.StartDate)
	assert.Equal(t, "2026-03-20", report.EndDate)
	assert.Equal(t, 5, report.InvoiceCount)
	assert.True(t, decimal.NewFromInt(470).Equal(report.TotalBilled), report.TotalBilled.String())
	assert.True(t, decimal.NewFromInt(400).Equal(report.TotalCollected), report.TotalCollected.String())
	assert.True(t, decimal.NewFromInt(70).Equal(report.TotalPending), report.TotalPending.String())

	require.Len(t, report.ByMethod, 3)
	assert.Equal(t, "card", report.ByMethod[0].Method)
	assert.Equal(t, "cash", report.ByMethod[1].Method)
	assert.Equal(t, 1, report.ByMethod[1].Count)
	assert.Equal(t, unspecifiedPaymentMethod, report.ByMethod[2].Method)
}

func TestReportRevenue_InvalidInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.reports().Revenue(ctx, "2026-03-10", "2026-03-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = env.reports().Revenue(ctx, "March", "")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestReportDashboardSummary(t *testing.T) {
	freezeTime(t, "2026-03-20")
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	env.createPatient(t, "PT2026-0002")
	ctx := context.Background()

	_, err := env.appointments().Create(ctx, &dto.CreateAppointmentRequest{PatientID: "PT2026-0001", Date: "2026-03-20", DoctorName: "Dr. Smith"})
	require.NoError(t, err)
	_, err = env.appointments().Create(ctx, &dto.CreateAppointmentRequest{PatientID: "PT2026-0002", Date: "2026-03-21", DoctorName: "Dr. Smith"})
	require.NoError(t, err)

	labWorks := NewLabWorkUsecase(env.db, env.log, repository.NewLabWorkRepository(), repository.NewPatientRepository(), env.audit)
	for _, status := range []string{entity.LabWorkStatusPending, entity.LabWorkStatusInProgress, entity.LabWorkStatusCompleted} {
		_, err := labWorks.Create(ctx, &dto.CreateLabWorkRequest{
			PatientID: "PT2026-0001",
			WorkType:  "Crown",
			Status:    status,
			StartDate: "2026-03-01",
			DueDate:   "2026-03-25",
		})
		require.NoError(t, err)
	}

	invoices := env.invoices(false)
	createPricedInvoice(t, invoices, "2026-03-20", entity.InvoiceStatusPaid, 120, strPtr("cash"))
	createPricedInvoice(t, invoices, "2026-03-20", entity.InvoiceStatusPending, 80, nil)

	summary, err := env.reports().DashboardSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TodayAppointments)
	assert.Equal(t, int64(2), summary.PendingLabWorks)
	assert.Equal(t, int64(2), summary.TotalPatients)
	assert.True(t, decimal.NewFromInt(120).Equal(summary.TodayRevenue), summary.TodayRevenue.String())
}
