package usecase

import (
	"context"
	"testing"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sigA = "data:image/png;base64,AAAA"
	sigB = "data:image/png;base64,BBBB"
)

func (e *testEnv) signatures() DoctorSignatureUsecase {
	return NewDoctorSignatureUsecase(e.db, e.log, repository.NewDoctorSignatureRepository(), e.audit)
}

func TestDoctorSignature_SaveUpsertsByName(t *testing.T) {
	env := newTestEnv(t)
	uc := env.signatures()
	ctx := context.Background()

	first, err := uc.Save(ctx, &dto.CreateDoctorSignatureRequest{DoctorName: "Dr. Rao", SignatureImage: sigA})
	require.NoError(t, err)

	second, err := uc.Save(ctx, &dto.CreateDoctorSignatureRequest{DoctorName: "Dr. Rao", SignatureImage: sigB})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, sigB, second.SignatureImage)

	all, err := uc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	found, err := uc.GetByDoctorName(ctx, "Dr. Rao")
	require.NoError(t, err)
	assert.Equal(t, sigB, found.SignatureImage)

	_, err = uc.GetByDoctorName(ctx, "Dr. Nobody")
	assert.ErrorIs(t, err, ErrSignatureNotFound)
}

func TestDoctorSignature_UpdateKeepsImageWhenOmitted(t *testing.T) {
	env := newTestEnv(t)
	uc := env.signatures()
	ctx := context.Background()

	created, err := uc.Save(ctx, &dto.CreateDoctorSignatureRequest{DoctorName: "Dr. Rao", SignatureImage: sigA})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, &dto.UpdateDoctorSignatureRequest{DoctorName: strPtr("Dr. S. Rao")})
	require.NoError(t, err)
	assert.Equal(t, "Dr. S. Rao", updated.DoctorName)
	assert.Equal(t, sigA, updated.SignatureImage)

	_, err = uc.Update(ctx, created.ID, &dto.UpdateDoctorSignatureRequest{SignatureImage: strPtr("")})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	_, err = uc.Update(ctx, 999, &dto.UpdateDoctorSignatureRequest{DoctorName: strPtr("x")})
	assert.ErrorIs(t, err, ErrSignatureNotFound)
}

func TestDoctorSignature_RenameToExistingConflicts(t *testing.T) {
	env := newTestEnv(t)
	uc := env.signatures()
	ctx := context.Background()

	_, err := uc.Save(ctx, &dto.CreateDoctorSignatureRequest{DoctorName: "Dr. Rao", SignatureImage: sigA})
	require.NoError(t, err)
	other, err := uc.Save(ctx, &dto.CreateDoctorSignatureRequest{DoctorName: "Dr. Iyer", SignatureImage: sigB})
	require.NoError(t, err)

	_, err = uc.Update(ctx, other.ID, &dto.UpdateDoctorSignatureRequest{DoctorName: strPtr("Dr. Rao")})
	assert.ErrorIs(t, err, ErrSignatureExists)
}

func TestDoctorSignature_Delete(t *testing.T) {
	env := newTestEnv(t)
	uc := env.signatures()
	ctx := context.Background()

	created, err := uc.Save(ctx, &dto.CreateDoctorSignatureRequest{DoctorName: "Dr. Rao", SignatureImage: sigA})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))

	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrSignatureNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), ErrSignatureNotFound)
}
