package usecase

import (
	"context"
	"testing"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) medications() MedicationUsecase {
	return NewMedicationUsecase(e.db, e.log, repository.NewMedicationRepository(), e.audit)
}

func (e *testEnv) prescriptions() PrescriptionUsecase {
	return NewPrescriptionUsecase(e.db, e.log,
		repository.NewPrescriptionRepository(),
		repository.NewMedicationRepository(),
		repository.NewPatientVisitRepository(),
		e.audit)
}

func (e *testEnv) createMedication(t *testing.T, name string) *dto.MedicationResponse {
	t.Helper()
	medication, err := e.medications().Create(context.Background(), &dto.CreateMedicationRequest{Name: name, Quantity: 20})
	require.NoError(t, err)
	return medication
}

func TestMedication_CRUD(t *testing.T) {
	env := newTestEnv(t)
	uc := env.medications()
	ctx := context.Background()

	created, err := uc.Create(ctx, &dto.CreateMedicationRequest{Name: "Amoxicillin 500mg", Quantity: 40, Notes: "capsules"})
	require.NoError(t, err)
	assert.Equal(t, defaultMedicationThreshold, created.Threshold)

	fetched, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amoxicillin 500mg", fetched.Name)
	assert.Equal(t, 40, fetched.Quantity)
	assert.Equal(t, "capsules", fetched.Notes)

	updated, err := uc.Update(ctx, created.ID, &dto.UpdateMedicationRequest{Quantity: intPtr(35)})
	require.NoError(t, err)
	assert.Equal(t, 35, updated.Quantity)
	assert.Equal(t, "Amoxicillin 500mg", updated.Name)
	assert.Equal(t, "capsules", updated.Notes)

	require.NoError(t, uc.Delete(ctx, created.ID))

	all, err := uc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrMedicationNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), ErrMedicationNotFound)
}

func TestMedication_UniqueName(t *testing.T) {
	env := newTestEnv(t)
	uc := env.medications()
	ctx := context.Background()

	env.createMedication(t, "Ibuprofen")
	other := env.createMedication(t, "Paracetamol")

	_, err := uc.Create(ctx, &dto.CreateMedicationRequest{Name: "Ibuprofen"})
	assert.ErrorIs(t, err, ErrMedicationExists)

	_, err = uc.Update(ctx, other.ID, &dto.UpdateMedicationRequest{Name: strPtr("Ibuprofen")})
	assert.ErrorIs(t, err, ErrMedicationExists)
}

func TestMedication_Validation(t *testing.T) {
	env := newTestEnv(t)
	uc := env.medications()
	ctx := context.Background()

	_, err := uc.Create(ctx, &dto.CreateMedicationRequest{Name: "Ibuprofen", Quantity: -1})
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	created := env.createMedication(t, "Ibuprofen")

	_, err = uc.Update(ctx, created.ID, &dto.UpdateMedicationRequest{Quantity: intPtr(-5)})
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	_, err = uc.Update(ctx, created.ID, &dto.UpdateMedicationRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	_, err = uc.Update(ctx, 999, &dto.UpdateMedicationRequest{Quantity: intPtr(1)})
	assert.ErrorIs(t, err, ErrMedicationNotFound)
}

func TestPrescription_CreateDefaultsAndOrdering(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")
	ibuprofen := env.createMedication(t, "Ibuprofen")
	amoxicillin := env.createMedication(t, "Amoxicillin")
	uc := env.prescriptions()
	ctx := context.Background()

	second, err := uc.Create(ctx, &dto.CreatePrescriptionRequest{
		VisitID: visit.ID, MedicationID: ibuprofen.ID, SlNo: 2,
		BeforeAfterFood: entity.FoodTimingBefore, Morning: "1", Night: "1", Duration: "3 days",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ibuprofen", second.MedicationName)
	assert.Equal(t, entity.FoodTimingBefore, second.BeforeAfterFood)
	assert.Equal(t, "1", second.Morning)
	assert.Equal(t, entity.NoDose, second.Afternoon)

	first, err := uc.Create(ctx, &dto.CreatePrescriptionRequest{VisitID: visit.ID, MedicationID: amoxicillin.ID, SlNo: 1})
	require.NoError(t, err)
	assert.Equal(t, entity.FoodTimingAfter, first.BeforeAfterFood)
	assert.Equal(t, entity.NoDose, first.Morning)
	assert.Equal(t, entity.NoDose, first.Afternoon)
	assert.Equal(t, entity.NoDose, first.Evening)
	assert.Equal(t, entity.NoDose, first.Night)

	stored, err := uc.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FoodTimingAfter, stored.BeforeAfterFood)
	assert.Equal(t, entity.NoDose, stored.Night)

	list, err := uc.GetByVisit(ctx, visit.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].SlNo)
	assert.Equal(t, "Amoxicillin", list[0].MedicationName)
	assert.Equal(t, 2, list[1].SlNo)
	assert.Equal(t, "Ibuprofen", list[1].MedicationName)
}

func TestPrescription_References(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")
	medication := env.createMedication(t, "Ibuprofen")
	uc := env.prescriptions()
	ctx := context.Background()

	_, err := uc.Create(ctx, &dto.CreatePrescriptionRequest{VisitID: visit.ID, MedicationID: 999, SlNo: 1})
	assert.ErrorIs(t, err, ErrMedicationNotFound)

	_, err = uc.Create(ctx, &dto.CreatePrescriptionRequest{VisitID: 999, MedicationID: medication.ID, SlNo: 1})
	assert.ErrorIs(t, err, ErrVisitNotFound)

	created, err := uc.Create(ctx, &dto.CreatePrescriptionRequest{VisitID: visit.ID, MedicationID: medication.ID, SlNo: 1})
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, &dto.UpdatePrescriptionRequest{MedicationID: intPtr(999)})
	assert.ErrorIs(t, err, ErrMedicationNotFound)
}

func TestPrescription_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")
	ibuprofen := env.createMedication(t, "Ibuprofen")
	paracetamol := env.createMedication(t, "Paracetamol")
	uc := env.prescriptions()
	ctx := context.Background()

	created, err := uc.Create(ctx, &dto.CreatePrescriptionRequest{VisitID: visit.ID, MedicationID: ibuprofen.ID, SlNo: 1, Duration: "5 days"})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, &dto.UpdatePrescriptionRequest{MedicationID: intPtr(paracetamol.ID), Evening: strPtr("1")})
	require.NoError(t, err)
	assert.Equal(t, paracetamol.ID, updated.MedicationID)
	assert.Equal(t, "Paracetamol", updated.MedicationName)
	assert.Equal(t, "1", updated.Evening)
	assert.Equal(t, "5 days", updated.Duration)

	_, err = uc.Update(ctx, created.ID, &dto.UpdatePrescriptionRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	require.NoError(t, uc.Delete(ctx, created.ID))
	list, err := uc.GetByVisit(ctx, visit.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), ErrPrescriptionNotFound)
}

func TestPrescription_RemovedWithMedication(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")
	medication := env.createMedication(t, "Ibuprofen")
	uc := env.prescriptions()
	ctx := context.Background()

	_, err := uc.Create(ctx, &dto.CreatePrescriptionRequest{VisitID: visit.ID, MedicationID: medication.ID, SlNo: 1})
	require.NoError(t, err)

	require.NoError(t, env.medications().Delete(ctx, medication.ID))

	list, err := uc.GetByVisit(ctx, visit.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
