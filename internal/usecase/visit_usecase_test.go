package usecase

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/infrastructure/storage"
	"dental-clinic/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*storage.LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	files, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	return files, dir
}

func TestVisitCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.visits(nil).Create(ctx, &dto.CreateVisitRequest{PatientID: "PT-NONE", Date: "2026-03-15", ChiefComplaint: "Pain"})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	env.createPatient(t, "PT2026-0001")
	_, err = env.visits(nil).Create(ctx, &dto.CreateVisitRequest{
		PatientID:       "PT2026-0001",
		PreviousVisitID: intPtr(77),
		Date:            "2026-03-15",
		ChiefComplaint:  "Pain",
	})
	assert.ErrorIs(t, err, ErrPreviousVisitNotFound)

	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")
	assert.NotNil(t, visit.Attachments)
	assert.NotNil(t, visit.ConsentForms)
}

func TestVisitCreateFollowUpVisit(t *testing.T) {
	freezeTime(t, "2026-04-01")
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	uc := env.visits(nil)
	ctx := context.Background()

	original := env.createVisit(t, "PT2026-0001", "2026-03-15")

	followUp, err := uc.CreateFollowUpVisit(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, "PT2026-0001", followUp.PatientID)
	assert.Equal(t, "2026-04-01", followUp.Date)
	assert.Equal(t, "Follow-up: Toothache", followUp.ChiefComplaint)
	require.NotNil(t, followUp.PreviousVisitID)
	assert.Equal(t, original.ID, *followUp.PreviousVisitID)

	chain, err := uc.GetFollowUpVisits(ctx, original.ID)
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, followUp.ID, chain[0].ID)

	_, err = uc.CreateFollowUpVisit(ctx, 999)
	assert.ErrorIs(t, err, ErrVisitNotFound)
}

func TestVisitAttachments(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	files, dir := newTestStorage(t)
	uc := env.visits(files)
	ctx := context.Background()

	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")

	_, err := uc.AddAttachments(ctx, visit.ID, nil)
	assert.ErrorIs(t, err, ErrNoFiles)

	_, err = uc.AddAttachments(ctx, visit.ID, []UploadedFile{{Name: "huge.bin", Data: make([]byte, MaxUploadSize+1)}})
	assert.ErrorIs(t, err, ErrFileTooLarge)

	added, err := uc.AddAttachments(ctx, visit.ID, []UploadedFile{
		{Name: "notes.txt", Data: []byte("first")},
		{Name: "scan.txt", Data: []byte("second")},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Contains(t, added[0].Type, "text/plain")
	assert.Equal(t, storage.URLPrefix+added[0].Filename, added[0].URL)

	stored, err := uc.GetByID(ctx, visit.ID)
	require.NoError(t, err)
	require.Len(t, stored.Attachments, 2)

	// by id: record and file both go
	require.NoError(t, uc.DeleteAttachment(ctx, visit.ID, added[0].ID))
	_, err = os.Stat(filepath.Join(dir, added[0].Filename))
	assert.True(t, os.IsNotExist(err))
	assert.ErrorIs(t, uc.DeleteAttachment(ctx, visit.ID, added[0].ID), ErrAttachmentNotFound)

	// by index: only the record goes
	require.NoError(t, uc.DeleteAttachmentAt(ctx, visit.ID, 0))
	_, err = os.Stat(filepath.Join(dir, added[1].Filename))
	assert.NoError(t, err)
	assert.ErrorIs(t, uc.DeleteAttachmentAt(ctx, visit.ID, 0), ErrAttachmentNotFound)

	stored, err = uc.GetByID(ctx, visit.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Attachments)
}

func TestVisitAttachments_UnknownVisitLeavesNoFiles(t *testing.T) {
	env := newTestEnv(t)
	files, dir := newTestStorage(t)

	_, err := env.visits(files).AddAttachments(context.Background(), 5, []UploadedFile{{Name: "a.txt", Data: []byte("a")}})
	assert.ErrorIs(t, err, ErrVisitNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestVisitConsentForms(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	uc := env.visits(nil)
	ctx := context.Background()
	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")

	forms := []json.RawMessage{json.RawMessage(`{"title":"Extraction"}`), json.RawMessage(`{"title":"Anesthesia"}`)}
	updated, err := uc.Update(ctx, visit.ID, &dto.UpdateVisitRequest{ConsentForms: &forms})
	require.NoError(t, err)
	require.Len(t, updated.ConsentForms, 2)

	require.NoError(t, uc.DeleteConsentFormAt(ctx, visit.ID, 0))
	assert.ErrorIs(t, uc.DeleteConsentFormAt(ctx, visit.ID, 5), ErrConsentFormNotFound)

	stored, err := uc.GetByID(ctx, visit.ID)
	require.NoError(t, err)
	require.Len(t, stored.ConsentForms, 1)
	assert.JSONEq(t, `{"title":"Anesthesia"}`, string(stored.ConsentForms[0]))
}

func TestExamination_ToothNumberRange(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")
	uc := env.examinations()
	ctx := context.Background()

	for _, number := range []string{"0", "33", "x"} {
		_, err := uc.CreateToothFinding(ctx, &dto.CreateToothFindingRequest{VisitID: visit.ID, ToothNumber: number, Finding: "Caries"})
		assert.ErrorIs(t, err, ErrInvalidToothNumber, number)
	}

	finding, err := uc.CreateToothFinding(ctx, &dto.CreateToothFindingRequest{VisitID: visit.ID, ToothNumber: "18", Finding: "Caries"})
	require.NoError(t, err)
	assert.Equal(t, "18", finding.ToothNumber)

	_, err = uc.CreateToothFinding(ctx, &dto.CreateToothFindingRequest{VisitID: 999, ToothNumber: "18", Finding: "Caries"})
	assert.ErrorIs(t, err, ErrVisitNotFound)
}

func TestFollowUp_DefaultStatus(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")
	uc := NewFollowUpUsecase(env.db, env.log, repository.NewFollowUpRepository(), repository.NewPatientVisitRepository(), env.audit)

	followUp, err := uc.Create(context.Background(), &dto.CreateFollowUpRequest{
		VisitID:   visit.ID,
		PatientID: "PT2026-0001",
		Date:      "2026-03-29",
		Reason:    "Check healing",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.FollowUpStatusScheduled, followUp.Status)
	assert.Equal(t, "2026-03-29", followUp.Date)
}

func TestFollowUp_PatientComesFromVisit(t *testing.T) {
	env := newTestEnv(t)
	env.createPatient(t, "PT2026-0001")
	env.createPatient(t, "PT2026-0002")
	visit := env.createVisit(t, "PT2026-0001", "2026-03-15")
	uc := NewFollowUpUsecase(env.db, env.log, repository.NewFollowUpRepository(), repository.NewPatientVisitRepository(), env.audit)
	ctx := context.Background()

	_, err := uc.Create(ctx, &dto.CreateFollowUpRequest{VisitID: visit.ID, PatientID: "PT2026-0002", Date: "2026-03-29"})
	assert.ErrorIs(t, err, ErrFollowUpPatientMismatch)

	followUp, err := uc.Create(ctx, &dto.CreateFollowUpRequest{VisitID: visit.ID, Date: "2026-03-29"})
	require.NoError(t, err)
	assert.Equal(t, "PT2026-0001", followUp.PatientID)

	_, err = uc.Create(ctx, &dto.CreateFollowUpRequest{VisitID: 999, Date: "2026-03-29"})
	assert.ErrorIs(t, err, ErrVisitNotFound)

	list, err := uc.GetByVisit(ctx, visit.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
