package usecase

import (
	"context"
	"errors"

	"dental-clinic/internal/converter"
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/domain/repository"
	"dental-clinic/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPrescriptionNotFound = errors.New("prescription not found")

const auditEntityPrescription = "prescription"

type PrescriptionUsecase interface {
	Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetByVisit(ctx context.Context, visitID int) ([]dto.PrescriptionResponse, error)
	GetByID(ctx context.Context, id int) (*dto.PrescriptionResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	Delete(ctx context.Context, id int) error
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	medicationRepo   repository.MedicationRepository
	visitRepo        repository.PatientVisitRepository
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	medicationRepo repository.MedicationRepository,
	visitRepo repository.PatientVisitRepository,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		medicationRepo:   medicationRepo,
		visitRepo:        visitRepo,
		auditService:     auditService,
	}
}

func (u *prescriptionUsecase) Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := requireVisit(tx, u.log, u.visitRepo, req.VisitID); err != nil {
		return nil, err
	}
	medication, err := u.findMedication(tx, req.MedicationID)
	if err != nil {
		return nil, err
	}

	prescription := &entity.Prescription{
		VisitID:         req.VisitID,
		MedicationID:    req.MedicationID,
		SlNo:            req.SlNo,
		BeforeAfterFood: orDefault(req.BeforeAfterFood, entity.FoodTimingAfter),
		Morning:         orDefault(req.Morning, entity.NoDose),
		Afternoon:       orDefault(req.Afternoon, entity.NoDose),
		Evening:         orDefault(req.Evening, entity.NoDose),
		Night:           orDefault(req.Night, entity.NoDose),
		Duration:        req.Duration,
		Notes:           req.Notes,
	}

	if err := u.prescriptionRepo.Create(tx.Omit("Medication"), prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityPrescription, prescription.ID, prescription); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	prescription.Medication = medication
	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) GetByVisit(ctx context.Context, visitID int) ([]dto.PrescriptionResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindByVisitID(u.db.WithContext(ctx), visitID)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions: %+v", err)
		return nil, err
	}
	return converter.PrescriptionsToResponses(prescriptions), nil
}

func (u *prescriptionUsecase) GetByID(ctx context.Context, id int) (*dto.PrescriptionResponse, error) {
	prescription, err := u.findByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) Update(ctx context.Context, id int, req *dto.UpdatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	prescription, err := u.findByID(tx, id)
	if err != nil {
		return nil, err
	}
	old := *prescription

	var f fieldSetter
	if req.MedicationID != nil && *req.MedicationID != prescription.MedicationID {
		medication, err := u.findMedication(tx, *req.MedicationID)
		if err != nil {
			return nil, err
		}
		prescription.MedicationID = medication.ID
		prescription.Medication = medication
		f.mark()
	}
	f.setInt(&prescription.SlNo, req.SlNo)
	f.setString(&prescription.BeforeAfterFood, req.BeforeAfterFood)
	f.setString(&prescription.Morning, req.Morning)
	f.setString(&prescription.Afternoon, req.Afternoon)
	f.setString(&prescription.Evening, req.Evening)
	f.setString(&prescription.Night, req.Night)
	f.setString(&prescription.Duration, req.Duration)
	f.setString(&prescription.Notes, req.Notes)
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.prescriptionRepo.Update(tx, prescription); err != nil {
		u.log.Warnf("Failed to update prescription: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityPrescription, prescription.ID, &old, prescription); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	prescription, err := u.findByID(tx, id)
	if err != nil {
		return err
	}

	if err := u.prescriptionRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete prescription: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityPrescription, id, prescription); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *prescriptionUsecase) findByID(db *gorm.DB, id int) (*entity.Prescription, error) {
	prescription, err := u.prescriptionRepo.FindByID(db, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPrescriptionNotFound
		}
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	return prescription, nil
}

func (u *prescriptionUsecase) findMedication(db *gorm.DB, id int) (*entity.Medication, error) {
	medication, err := u.medicationRepo.FindByID(db, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrMedicationNotFound
		}
		u.log.Warnf("Failed to find medication: %+v", err)
		return nil, err
	}
	return medication, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
