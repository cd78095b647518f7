package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"dental-clinic/internal/converter"
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/domain/repository"
	"dental-clinic/internal/infrastructure/storage"
	"dental-clinic/internal/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrVisitNotFound         = errors.New("visit not found")
	ErrPreviousVisitNotFound = errors.New("previous visit not found")
	ErrAttachmentNotFound    = errors.New("attachment not found")
	ErrConsentFormNotFound   = errors.New("consent form not found")
	ErrNoFiles               = errors.New("no files uploaded")
	ErrFileTooLarge          = errors.New("file exceeds the 5 MB limit")
)

// MaxUploadSize is the per-file limit for visit attachments.
const MaxUploadSize = 5 << 20

const auditEntityVisit = "patient_visit"

// FileStore persists uploaded files.
type FileStore interface {
	Save(originalName string, data []byte) (*storage.StoredFile, error)
	Delete(filename string) error
}

// UploadedFile is one file taken from a multipart request.
type UploadedFile struct {
	Name string
	Data []byte
}

type VisitUsecase interface {
	Create(ctx context.Context, req *dto.CreateVisitRequest) (*dto.VisitResponse, error)
	GetAll(ctx context.Context) ([]dto.VisitResponse, error)
	GetByID(ctx context.Context, id int) (*dto.VisitResponse, error)
	GetByPatient(ctx context.Context, patientCode string) ([]dto.VisitResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateVisitRequest) (*dto.VisitResponse, error)
	Delete(ctx context.Context, id int) error

	CreateFollowUpVisit(ctx context.Context, visitID int) (*dto.VisitResponse, error)
	GetFollowUpVisits(ctx context.Context, visitID int) ([]dto.VisitResponse, error)

	AddAttachments(ctx context.Context, visitID int, files []UploadedFile) ([]entity.Attachment, error)
	DeleteAttachment(ctx context.Context, visitID int, fileID string) error
	DeleteAttachmentAt(ctx context.Context, visitID int, index int) error
	DeleteConsentFormAt(ctx context.Context, visitID int, index int) error
}

type visitUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	visitRepo    repository.PatientVisitRepository
	patientRepo  repository.PatientRepository
	files        FileStore
	auditService service.AuditService
}

func NewVisitUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	visitRepo repository.PatientVisitRepository,
	patientRepo repository.PatientRepository,
	files FileStore,
	auditService service.AuditService,
) VisitUsecase {
	return &visitUsecase{
		db:           db,
		log:          log,
		visitRepo:    visitRepo,
		patientRepo:  patientRepo,
		files:        files,
		auditService: auditService,
	}
}

func (u *visitUsecase) Create(ctx context.Context, req *dto.CreateVisitRequest) (*dto.VisitResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	nextAppointment, err := parseOptionalDate(req.NextAppointment)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.patientRepo.FindByCode(tx, req.PatientID); err != nil {
		if isNotFound(err) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}

	if req.PreviousVisitID != nil {
		if _, err := u.visitRepo.FindByID(tx, *req.PreviousVisitID); err != nil {
			if isNotFound(err) {
				return nil, ErrPreviousVisitNotFound
			}
			u.log.Warnf("Failed to find visit: %+v", err)
			return nil, err
		}
	}

	visit := &entity.PatientVisit{
		PatientID:             req.PatientID,
		PreviousVisitID:       req.PreviousVisitID,
		Date:                  date,
		MedicalHistory:        req.MedicalHistory,
		DrugAllergy:           req.DrugAllergy,
		PreviousDentalHistory: req.PreviousDentalHistory,
		ChiefComplaint:        req.ChiefComplaint,
		OralExamination:       req.OralExamination,
		Investigation:         req.Investigation,
		TreatmentPlan:         req.TreatmentPlan,
		Prescription:          req.Prescription,
		TreatmentDone:         req.TreatmentDone,
		Advice:                req.Advice,
		Notes:                 req.Notes,
		NextAppointment:       nextAppointment,
	}

	if err := u.createVisit(ctx, tx, visit); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.VisitToResponse(visit), nil
}

func (u *visitUsecase) createVisit(ctx context.Context, tx *gorm.DB, visit *entity.PatientVisit) error {
	if visit.Attachments == nil {
		visit.Attachments = []entity.Attachment{}
	}
	if visit.ConsentForms == nil {
		visit.ConsentForms = []json.RawMessage{}
	}

	if err := u.visitRepo.Create(tx, visit); err != nil {
		u.log.Warnf("Failed to create visit: %+v", err)
		return err
	}

	return u.auditService.LogCreate(ctx, tx, auditEntityVisit, visit.ID, visit)
}

func (u *visitUsecase) GetAll(ctx context.Context) ([]dto.VisitResponse, error) {
	visits, err := u.visitRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find visits: %+v", err)
		return nil, err
	}
	return converter.VisitsToResponses(visits), nil
}

func (u *visitUsecase) GetByID(ctx context.Context, id int) (*dto.VisitResponse, error) {
	visit, err := u.findByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.VisitToResponse(visit), nil
}

func (u *visitUsecase) GetByPatient(ctx context.Context, patientCode string) ([]dto.VisitResponse, error) {
	visits, err := u.visitRepo.FindByPatientID(u.db.WithContext(ctx), patientCode)
	if err != nil {
		u.log.Warnf("Failed to find visits: %+v", err)
		return nil, err
	}
	return converter.VisitsToResponses(visits), nil
}

func (u *visitUsecase) Update(ctx context.Context, id int, req *dto.UpdateVisitRequest) (*dto.VisitResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	visit, err := u.findForUpdate(tx, id)
	if err != nil {
		return nil, err
	}
	old := *visit

	var f fieldSetter
	if err := f.setDate(&visit.Date, req.Date); err != nil {
		return nil, err
	}
	if err := f.setOptionalDate(&visit.NextAppointment, req.NextAppointment); err != nil {
		return nil, err
	}
	f.setString(&visit.MedicalHistory, req.MedicalHistory)
	f.setString(&visit.DrugAllergy, req.DrugAllergy)
	f.setString(&visit.PreviousDentalHistory, req.PreviousDentalHistory)
	f.setString(&visit.ChiefComplaint, req.ChiefComplaint)
	f.setString(&visit.OralExamination, req.OralExamination)
	f.setString(&visit.Investigation, req.Investigation)
	f.setString(&visit.TreatmentPlan, req.TreatmentPlan)
	f.setString(&visit.Prescription, req.Prescription)
	f.setString(&visit.TreatmentDone, req.TreatmentDone)
	f.setString(&visit.Advice, req.Advice)
	f.setString(&visit.Notes, req.Notes)
	if req.ConsentForms != nil {
		visit.ConsentForms = *req.ConsentForms
		f.mark()
	}
	if req.Attachments != nil {
		visit.Attachments = *req.Attachments
		f.mark()
	}
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.save(ctx, tx, &old, visit); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.VisitToResponse(visit), nil
}

func (u *visitUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	visit, err := u.findByID(tx, id)
	if err != nil {
		return err
	}

	if err := u.visitRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete visit: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityVisit, id, visit); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	for _, a := range visit.Attachments {
		u.removeFile(a)
	}
	return nil
}

// CreateFollowUpVisit opens a new visit dated today that continues visitID.
func (u *visitUsecase) CreateFollowUpVisit(ctx context.Context, visitID int) (*dto.VisitResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	original, err := u.findByID(tx, visitID)
	if err != nil {
		return nil, err
	}

	complaint := original.ChiefComplaint
	if complaint == "" {
		complaint = "Appointment"
	}

	followUp := &entity.PatientVisit{
		PatientID:       original.PatientID,
		PreviousVisitID: &original.ID,
		Date:            today(),
		ChiefComplaint:  "Follow-up: " + complaint,
	}

	if err := u.createVisit(ctx, tx, followUp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.VisitToResponse(followUp), nil
}

func (u *visitUsecase) GetFollowUpVisits(ctx context.Context, visitID int) ([]dto.VisitResponse, error) {
	db := u.db.WithContext(ctx)
	if _, err := u.findByID(db, visitID); err != nil {
		return nil, err
	}

	visits, err := u.visitRepo.FindByPreviousVisitID(db, visitID)
	if err != nil {
		u.log.Warnf("Failed to find follow-up visits: %+v", err)
		return nil, err
	}
	return converter.VisitsToResponses(visits), nil
}

// AddAttachments stores files on disk and appends them to the visit.
// Files already written are removed again if the visit cannot be updated.
func (u *visitUsecase) AddAttachments(ctx context.Context, visitID int, files []UploadedFile) ([]entity.Attachment, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	for _, file := range files {
		if len(file.Data) > MaxUploadSize {
			return nil, ErrFileTooLarge
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	visit, err := u.findForUpdate(tx, visitID)
	if err != nil {
		return nil, err
	}
	old := *visit
	old.Attachments = append([]entity.Attachment(nil), visit.Attachments...)

	added := make([]entity.Attachment, 0, len(files))
	committed := false
	defer func() {
		if !committed {
			for _, a := range added {
				u.removeFile(a)
			}
		}
	}()

	now := nowFunc().UTC()
	for _, file := range files {
		stored, err := u.files.Save(file.Name, file.Data)
		if err != nil {
			u.log.Warnf("Failed to store attachment: %+v", err)
			return nil, err
		}
		added = append(added, entity.Attachment{
			ID:        uuid.New().String(),
			Name:      file.Name,
			Type:      mimetype.Detect(file.Data).String(),
			URL:       stored.URL,
			Filename:  stored.Filename,
			DateAdded: now,
		})
	}

	visit.Attachments = append(visit.Attachments, added...)
	if err := u.save(ctx, tx, &old, visit); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	committed = true

	return added, nil
}

// DeleteAttachment removes the attachment with fileID and its file on disk.
func (u *visitUsecase) DeleteAttachment(ctx context.Context, visitID int, fileID string) error {
	var removed entity.Attachment
	err := u.mutate(ctx, visitID, func(visit *entity.PatientVisit) error {
		a, ok := visit.RemoveAttachment(fileID)
		if !ok {
			return ErrAttachmentNotFound
		}
		removed = a
		return nil
	})
	if err != nil {
		return err
	}

	u.removeFile(removed)
	return nil
}

// DeleteAttachmentAt drops the attachment at index from the visit record.
// The stored file is kept.
func (u *visitUsecase) DeleteAttachmentAt(ctx context.Context, visitID int, index int) error {
	return u.mutate(ctx, visitID, func(visit *entity.PatientVisit) error {
		if index < 0 || index >= len(visit.Attachments) {
			return ErrAttachmentNotFound
		}
		visit.Attachments = append(visit.Attachments[:index:index], visit.Attachments[index+1:]...)
		return nil
	})
}

func (u *visitUsecase) DeleteConsentFormAt(ctx context.Context, visitID int, index int) error {
	return u.mutate(ctx, visitID, func(visit *entity.PatientVisit) error {
		if index < 0 || index >= len(visit.ConsentForms) {
			return ErrConsentFormNotFound
		}
		visit.ConsentForms = append(visit.ConsentForms[:index:index], visit.ConsentForms[index+1:]...)
		return nil
	})
}

// mutate applies change to a locked copy of the visit and saves it.
func (u *visitUsecase) mutate(ctx context.Context, visitID int, change func(visit *entity.PatientVisit) error) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	visit, err := u.findForUpdate(tx, visitID)
	if err != nil {
		return err
	}
	old := *visit
	old.Attachments = append([]entity.Attachment(nil), visit.Attachments...)
	old.ConsentForms = append([]json.RawMessage(nil), visit.ConsentForms...)

	if err := change(visit); err != nil {
		return err
	}

	if err := u.save(ctx, tx, &old, visit); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *visitUsecase) save(ctx context.Context, tx *gorm.DB, old, visit *entity.PatientVisit) error {
	if err := u.visitRepo.Update(tx, visit); err != nil {
		u.log.Warnf("Failed to update visit: %+v", err)
		return err
	}
	return u.auditService.LogUpdate(ctx, tx, auditEntityVisit, visit.ID, old, visit)
}

func (u *visitUsecase) removeFile(a entity.Attachment) {
	if a.Filename == "" {
		return
	}
	if err := u.files.Delete(a.Filename); err != nil {
		u.log.Warnf("Failed to delete attachment file %s: %+v", a.Filename, err)
	}
}

func (u *visitUsecase) findByID(db *gorm.DB, id int) (*entity.PatientVisit, error) {
	visit, err := u.visitRepo.FindByID(db, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVisitNotFound
		}
		u.log.Warnf("Failed to find visit: %+v", err)
		return nil, err
	}
	return visit, nil
}

func (u *visitUsecase) findForUpdate(tx *gorm.DB, id int) (*entity.PatientVisit, error) {
	visit, err := u.visitRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVisitNotFound
		}
		u.log.Warnf("Failed to find visit: %+v", err)
		return nil, err
	}
	return visit, nil
}
