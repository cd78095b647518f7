package usecase

import (
	"context"
	"testing"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	domainRepo "dental-clinic/internal/domain/repository"
	"dental-clinic/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createInvoice(t *testing.T, uc InvoiceUsecase, patientCode string, items ...dto.InvoiceItemInput) *dto.InvoiceResponse {
	t.Helper()
	invoice, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{
		PatientID: patientCode,
		Date:      "2026-03-15",
		Status:    entity.InvoiceStatusPending,
		Items:     items,
	})
	require.NoError(t, err)
	return invoice
}

func TestInvoiceCreate_SumsItems(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	uc := env.invoices(false)

	invoice := createInvoice(t, uc, "PT2026-0001",
		dto.InvoiceItemInput{Item: "Scaling", Amount: decimal.NewFromInt(150)},
		dto.InvoiceItemInput{Item: "X-ray", Amount: decimal.RequireFromString("49.50")},
	)

	assert.Equal(t, 1, invoice.ID)
	assert.True(t, decimal.RequireFromString("199.50").Equal(invoice.TotalAmount), invoice.TotalAmount.String())
	require.Len(t, invoice.Items, 2)

	stored, err := uc.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
}

func TestInvoiceCreate_UnknownPatient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.invoices(false).Create(context.Background(), &dto.CreateInvoiceRequest{
		PatientID: "PT-NONE",
		Date:      "2026-03-15",
		Status:    entity.InvoiceStatusPending,
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestInvoiceCreate_ReusesSmallestFreeID(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	uc := env.invoices(false)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		createInvoice(t, uc, "PT2026-0001")
	}
	require.NoError(t, uc.Delete(ctx, 2))

	reused := createInvoice(t, uc, "PT2026-0001")
	assert.Equal(t, 2, reused.ID)

	appended := createInvoice(t, uc, "PT2026-0001")
	assert.Equal(t, 4, appended.ID)
}

func TestInvoicePatchStatus(t *testing.T) {
	freezeTime(t, "2026-03-20")
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	uc := env.invoices(false)
	ctx := context.Background()

	invoice := createInvoice(t, uc, "PT2026-0001")

	paid, err := uc.PatchStatus(ctx, invoice.ID, &dto.PatchInvoiceStatusRequest{
		Status:        entity.InvoiceStatusPaid,
		PaymentMethod: strPtr("cash"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, "2026-03-20", *paid.PaymentDate)
	require.NotNil(t, paid.PaymentMethod)
	assert.Equal(t, "cash", *paid.PaymentMethod)

	reopened, err := uc.PatchStatus(ctx, invoice.ID, &dto.PatchInvoiceStatusRequest{Status: entity.InvoiceStatusPending})
	require.NoError(t, err)
	assert.Nil(t, reopened.PaymentDate)
	assert.Nil(t, reopened.PaymentMethod)

	_, err = uc.PatchStatus(ctx, 99, &dto.PatchInvoiceStatusRequest{Status: entity.InvoiceStatusPaid})
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestInvoiceItems_RecomputeTotal(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	uc := env.invoices(false)
	ctx := context.Background()

	invoice := createInvoice(t, uc, "PT2026-0001")

	item, err := uc.CreateItem(ctx, &dto.CreateInvoiceItemRequest{InvoiceID: invoice.ID, Item: "Filling", Amount: decimal.NewFromInt(80)})
	require.NoError(t, err)
	_, err = uc.CreateItem(ctx, &dto.CreateInvoiceItemRequest{InvoiceID: invoice.ID, Item: "Polish", Amount: decimal.NewFromInt(20)})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(got.TotalAmount), got.TotalAmount.String())

	amount := decimal.NewFromInt(120)
	_, err = uc.UpdateItem(ctx, item.ID, &dto.UpdateInvoiceItemRequest{Amount: &amount})
	require.NoError(t, err)

	got, err = uc.GetByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(140).Equal(got.TotalAmount), got.TotalAmount.String())

	require.NoError(t, uc.DeleteItem(ctx, item.ID))
	got, err = uc.GetByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(got.TotalAmount), got.TotalAmount.String())

	_, err = uc.CreateItem(ctx, &dto.CreateInvoiceItemRequest{InvoiceID: 42, Item: "Ghost", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestInvoiceDelete_UnlinksAppointments(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	uc := env.invoices(false)
	ctx := context.Background()

	invoice := createInvoice(t, uc, "PT2026-0001", dto.InvoiceItemInput{Item: "Scaling", Amount: decimal.NewFromInt(50)})

	appointment, err := env.appointments().Create(ctx, &dto.CreateAppointmentRequest{
		PatientID:  "PT2026-0001",
		Date:       "2026-03-15",
		DoctorName: "Dr. Smith",
		InvoiceID:  intPtr(invoice.ID),
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, invoice.ID))

	stored, err := env.appointments().GetByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.InvoiceID)

	var items int64
	require.NoError(t, env.db.Model(&entity.InvoiceItem{}).Count(&items).Error)
	assert.Zero(t, items)

	assert.ErrorIs(t, uc.Delete(ctx, invoice.ID), ErrInvoiceNotFound)
}

func TestInvoiceResetSequence_Disabled(t *testing.T) {
	env := newTestEnv(t)
	assert.ErrorIs(t, env.invoices(false).ResetSequence(context.Background()), ErrResetNotAllowed)
}

// staleIDRepository hands out id 1 for its first staleCalls NextID calls,
// as a concurrent create that already took it would see.
type staleIDRepository struct {
	domainRepo.InvoiceRepository
	staleCalls int
	calls      int
}

func (r *staleIDRepository) NextID(db *gorm.DB) (int, error) {
	r.calls++
	if r.calls <= r.staleCalls {
		return 1, nil
	}
	return r.InvoiceRepository.NextID(db)
}

func (e *testEnv) invoicesWithRepo(invoiceRepo domainRepo.InvoiceRepository) InvoiceUsecase {
	return NewInvoiceUsecase(e.db, e.log,
		invoiceRepo,
		repository.NewInvoiceItemRepository(),
		repository.NewAppointmentRepository(),
		repository.NewPatientRepository(),
		e.audit, false)
}

func TestInvoiceCreate_RetriesTakenID(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	createInvoice(t, env.invoices(false), "PT2026-0001")

	stale := &staleIDRepository{InvoiceRepository: repository.NewInvoiceRepository(), staleCalls: 1}
	invoice := createInvoice(t, env.invoicesWithRepo(stale), "PT2026-0001",
		dto.InvoiceItemInput{Item: "Scaling", Amount: decimal.NewFromInt(60)})

	assert.Equal(t, 2, invoice.ID)
	assert.Equal(t, 2, stale.calls)

	stored, err := env.invoices(false).GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(60)))
}

func TestInvoiceCreate_GivesUpAfterRepeatedCollisions(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	createInvoice(t, env.invoices(false), "PT2026-0001")

	stale := &staleIDRepository{InvoiceRepository: repository.NewInvoiceRepository(), staleCalls: maxInvoiceIDAttempts}
	_, err := env.invoicesWithRepo(stale).Create(context.Background(), &dto.CreateInvoiceRequest{
		PatientID: "PT2026-0001",
		Date:      "2026-03-15",
		Status:    entity.InvoiceStatusPending,
	})
	assert.ErrorIs(t, err, ErrInvoiceIDConflict)
	assert.Equal(t, maxInvoiceIDAttempts, stale.calls)

	var count int64
	require.NoError(t, env.db.Model(&entity.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
