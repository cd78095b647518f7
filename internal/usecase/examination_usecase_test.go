package usecase

import (
	"context"
	"testing"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) examinations() ExaminationUsecase {
	return NewExaminationUsecase(e.db, e.log,
		repository.NewPatientVisitRepository(),
		repository.NewToothFindingRepository(),
		repository.NewGeneralizedFindingRepository(),
		repository.NewInvestigationRepository(),
		e.audit)
}

func TestToothFinding_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")
	uc := env.examinations()
	ctx := context.Background()

	created, err := uc.CreateToothFinding(ctx, &dto.CreateToothFindingRequest{VisitID: visit.ID, ToothNumber: "14", Finding: "Caries"})
	require.NoError(t, err)

	updated, err := uc.UpdateToothFinding(ctx, created.ID, &dto.UpdateToothFindingRequest{Finding: strPtr("Fractured cusp")})
	require.NoError(t, err)
	assert.Equal(t, "14", updated.ToothNumber)
	assert.Equal(t, "Fractured cusp", updated.Finding)

	_, err = uc.UpdateToothFinding(ctx, created.ID, &dto.UpdateToothFindingRequest{ToothNumber: strPtr("40")})
	assert.ErrorIs(t, err, ErrInvalidToothNumber)
	_, err = uc.UpdateToothFinding(ctx, created.ID, &dto.UpdateToothFindingRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
	_, err = uc.UpdateToothFinding(ctx, 999, &dto.UpdateToothFindingRequest{Finding: strPtr("x")})
	assert.ErrorIs(t, err, ErrToothFindingNotFound)

	require.NoError(t, uc.DeleteToothFinding(ctx, created.ID))
	list, err := uc.GetToothFindings(ctx, visit.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.ErrorIs(t, uc.DeleteToothFinding(ctx, created.ID), ErrToothFindingNotFound)
}

func TestGeneralizedFinding_CRUD(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")
	uc := env.examinations()
	ctx := context.Background()

	_, err := uc.CreateGeneralizedFinding(ctx, &dto.CreateGeneralizedFindingRequest{VisitID: 999, Finding: "Gingivitis"})
	assert.ErrorIs(t, err, ErrVisitNotFound)

	created, err := uc.CreateGeneralizedFinding(ctx, &dto.CreateGeneralizedFindingRequest{VisitID: visit.ID, Finding: "Gingivitis"})
	require.NoError(t, err)

	updated, err := uc.UpdateGeneralizedFinding(ctx, created.ID, &dto.UpdateGeneralizedFindingRequest{Finding: strPtr("Generalized calculus")})
	require.NoError(t, err)
	assert.Equal(t, "Generalized calculus", updated.Finding)

	list, err := uc.GetGeneralizedFindings(ctx, visit.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Generalized calculus", list[0].Finding)

	_, err = uc.UpdateGeneralizedFinding(ctx, 999, &dto.UpdateGeneralizedFindingRequest{Finding: strPtr("x")})
	assert.ErrorIs(t, err, ErrGeneralizedFindingNotFound)

	require.NoError(t, uc.DeleteGeneralizedFinding(ctx, created.ID))
	list, err = uc.GetGeneralizedFindings(ctx, visit.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.ErrorIs(t, uc.DeleteGeneralizedFinding(ctx, created.ID), ErrGeneralizedFindingNotFound)
}

func TestInvestigation_CRUD(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")
	uc := env.examinations()
	ctx := context.Background()

	created, err := uc.CreateInvestigation(ctx, &dto.CreateInvestigationRequest{VisitID: visit.ID, Type: "IOPA", Findings: "Periapical radiolucency"})
	require.NoError(t, err)

	updated, err := uc.UpdateInvestigation(ctx, created.ID, &dto.UpdateInvestigationRequest{Type: strPtr("OPG")})
	require.NoError(t, err)
	assert.Equal(t, "OPG", updated.Type)
	assert.Equal(t, "Periapical radiolucency", updated.Findings)

	_, err = uc.UpdateInvestigation(ctx, created.ID, &dto.UpdateInvestigationRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	require.NoError(t, uc.DeleteInvestigation(ctx, created.ID))
	list, err := uc.GetInvestigations(ctx, visit.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.ErrorIs(t, uc.DeleteInvestigation(ctx, created.ID), ErrInvestigationNotFound)
}
