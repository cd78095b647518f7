package usecase

import (
	"context"
	"testing"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestNextPatientNumber(t *testing.T) {
	codes := []string{"PT2026-0001", "PT2026-0009", "PT2026-abc", "PT2025-0042", "PT2026-0010"}
	assert.Equal(t, 11, nextPatientNumber("PT2026-", codes))
	assert.Equal(t, 1, nextPatientNumber("PT2026-", nil))
}

func TestFormatPatientCode(t *testing.T) {
	assert.Equal(t, "PT2026-0007", formatPatientCode("PT2026-", 4, 7))
	assert.Equal(t, "P12345", formatPatientCode("P", 2, 12345))
}

func TestPatientCreate_GeneratesSequentialCodes(t *testing.T) {
	freezeTime(t, "2026-03-15")
	env := newTestEnv(t)

	first := env.createPatient(t, "")
	second := env.createPatient(t, "")

	assert.Equal(t, "PT2026-0001", first.PatientID)
	assert.Equal(t, "PT2026-0002", second.PatientID)

	next, err := env.patients().NextCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PT2026-0003", next)
}

func TestPatientCreate_UsesFormatSetting(t *testing.T) {
	freezeTime(t, "2026-03-15")
	env := newTestEnv(t)

	require.NoError(t, env.db.Create(&entity.Setting{
		SettingKey:   entity.SettingKeyPatientIDFormat,
		SettingValue: datatypes.JSON(`{"prefix":"DC","yearInFormat":false,"digitCount":3,"separator":"/"}`),
		Category:     "system",
	}).Error)

	patient := env.createPatient(t, "")
	assert.Equal(t, "DC/001", patient.PatientID)
}

func TestPatientCreate_DuplicateExplicitCode(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT-CUSTOM")

	_, err := env.patients().Create(context.Background(), &dto.CreatePatientRequest{
		PatientID:   "PT-CUSTOM",
		Name:        "John Roe",
		Age:         40,
		Sex:         "male",
		Address:     "1 Side Road",
		PhoneNumber: "5559876",
	})
	assert.ErrorIs(t, err, ErrPatientCodeExists)
}

func TestPatientGetByIdentifier(t *testing.T) {
	env := newTestEnv(t)
	created := env.createPatient(t, "PT2026-0005")
	uc := env.patients()
	ctx := context.Background()

	byCode, err := uc.GetByIdentifier(ctx, "PT2026-0005")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	byID, err := uc.GetByIdentifier(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "PT2026-0005", byID.PatientID)

	_, err = uc.GetByIdentifier(ctx, "missing")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestPatientUpdate(t *testing.T) {
	env := newTestEnv(t)
	created := env.createPatient(t, "PT2026-0001")
	uc := env.patients()
	ctx := context.Background()

	_, err := uc.Update(ctx, created.ID, &dto.UpdatePatientRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	updated, err := uc.UpdateByCode(ctx, "PT2026-0001", &dto.UpdatePatientRequest{Age: intPtr(35)})
	require.NoError(t, err)
	assert.Equal(t, 35, updated.Age)
	assert.Equal(t, "Jane Doe", updated.Name)

	_, err = uc.Update(ctx, 999, &dto.UpdatePatientRequest{Name: strPtr("Nobody")})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestPatientDelete_WritesAudit(t *testing.T) {
	env := newTestEnv(t)
	created := env.createPatient(t, "PT2026-0001")
	ctx := context.Background()

	require.NoError(t, env.patients().Delete(ctx, created.ID))
	assert.ErrorIs(t, env.patients().Delete(ctx, created.ID), ErrPatientNotFound)

	var actions []string
	require.NoError(t, env.db.Model(&entity.AuditLog{}).Order("id ASC").Pluck("action", &actions).Error)
	assert.Equal(t, []string{"patient.create", "patient.delete"}, actions)
}
