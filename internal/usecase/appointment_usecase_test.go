package usecase

import (
	"context"
	"testing"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentCreate_UnknownPatient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.appointments().Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID:  "PT-NONE",
		Date:       "2026-03-15",
		DoctorName: "Dr. Smith",
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestAppointmentUpdate_CreatesPendingInvoice(t *testing.T) {
	freezeTime(t, "2026-03-18")
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")
	uc := env.appointments()
	ctx := context.Background()

	appointment, err := uc.Create(ctx, &dto.CreateAppointmentRequest{
		PatientID:  "PT2026-0001",
		Date:       "2026-03-15",
		DoctorName: "Dr. Smith",
		VisitID:    &visit.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, appointment.InvoiceID)

	updated, err := uc.Update(ctx, appointment.ID, &dto.UpdateAppointmentRequest{TreatmentDone: strPtr("Extraction")})
	require.NoError(t, err)
	require.NotNil(t, updated.InvoiceID)

	invoice, err := env.invoices(false).GetByID(ctx, *updated.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, "PT2026-0001", invoice.PatientID)
	assert.Equal(t, "2026-03-18", invoice.Date)
	assert.Nil(t, invoice.VisitID)
	assert.True(t, invoice.TotalAmount.IsZero())

	// already linked, no second invoice
	again, err := uc.Update(ctx, appointment.ID, &dto.UpdateAppointmentRequest{Notes: strPtr("done")})
	require.NoError(t, err)
	assert.Equal(t, *updated.InvoiceID, *again.InvoiceID)

	var count int64
	require.NoError(t, env.db.Model(&entity.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAppointmentUpdate_EmptyAndMissing(t *testing.T) {
	env := newTestEnv(t)
	uc := env.appointments()
	ctx := context.Background()

	_, err := uc.Update(ctx, 1, &dto.UpdateAppointmentRequest{Notes: strPtr("x")})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	env.createPatient(t, "PT2026-0001")
	appointment, err := uc.Create(ctx, &dto.CreateAppointmentRequest{PatientID: "PT2026-0001", Date: "2026-03-15", DoctorName: "Dr. Smith"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, appointment.ID, &dto.UpdateAppointmentRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	_, err = uc.Update(ctx, appointment.ID, &dto.UpdateAppointmentRequest{Date: strPtr("15/03/2026")})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
