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

var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrMedicationExists   = errors.New("medication already exists")
)

const (
	auditEntityMedication = "medication"

	defaultMedicationThreshold = 10
)

type MedicationUsecase interface {
	Create(ctx context.Context, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error)
	GetAll(ctx context.Context) ([]dto.MedicationResponse, error)
	GetByID(ctx context.Context, id int) (*dto.MedicationResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateMedicationRequest) (*dto.MedicationResponse, error)
	Delete(ctx context.Context, id int) error
}

type medicationUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	medicationRepo repository.MedicationRepository
	auditService   service.AuditService
}

func NewMedicationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	medicationRepo repository.MedicationRepository,
	auditService service.AuditService,
) MedicationUsecase {
	return &medicationUsecase{
		db:             db,
		log:            log,
		medicationRepo: medicationRepo,
		auditService:   auditService,
	}
}

func (u *medicationUsecase) Create(ctx context.Context, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error) {
	if req.Quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	medication := &entity.Medication{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Threshold: defaultMedicationThreshold,
		Notes:     req.Notes,
	}
	if req.Threshold != nil {
		medication.Threshold = *req.Threshold
	}

	if err := u.medicationRepo.Create(tx, medication); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrMedicationExists
		}
		u.log.Warnf("Failed to create medication: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityMedication, medication.ID, medication); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicationToResponse(medication), nil
}

func (u *medicationUsecase) GetAll(ctx context.Context) ([]dto.MedicationResponse, error) {
	medications, err := u.medicationRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find medications: %+v", err)
		return nil, err
	}
	return converter.MedicationsToResponses(medications), nil
}

func (u *medicationUsecase) GetByID(ctx context.Context, id int) (*dto.MedicationResponse, error) {
	medication, err := u.findByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.MedicationToResponse(medication), nil
}

func (u *medicationUsecase) Update(ctx context.Context, id int, req *dto.UpdateMedicationRequest) (*dto.MedicationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	medication, err := u.findByID(tx, id)
	if err != nil {
		return nil, err
	}
	old := *medication

	var f fieldSetter
	f.setString(&medication.Name, req.Name)
	f.setInt(&medication.Quantity, req.Quantity)
	f.setInt(&medication.Threshold, req.Threshold)
	f.setString(&medication.Notes, req.Notes)
	if !f.changed {
		return nil, ErrEmptyUpdate
	}
	if medication.Quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	if err := u.medicationRepo.Update(tx, medication); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrMedicationExists
		}
		u.log.Warnf("Failed to update medication: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityMedication, medication.ID, &old, medication); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicationToResponse(medication), nil
}

func (u *medicationUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	medication, err := u.findByID(tx, id)
	if err != nil {
		return err
	}

	if err := u.medicationRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete medication: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityMedication, id, medication); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *medicationUsecase) findByID(db *gorm.DB, id int) (*entity.Medication, error) {
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
