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
	ErrFollowUpNotFound        = errors.New("follow-up not found")
	ErrFollowUpPatientMismatch = errors.New("patient does not match the visit")
)

const auditEntityFollowUp = "follow_up"

type FollowUpUsecase interface {
	Create(ctx context.Context, req *dto.CreateFollowUpRequest) (*dto.FollowUpResponse, error)
	GetByVisit(ctx context.Context, visitID int) ([]dto.FollowUpResponse, error)
	GetByID(ctx context.Context, id int) (*dto.FollowUpResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateFollowUpRequest) (*dto.FollowUpResponse, error)
	Delete(ctx context.Context, id int) error
}

type followUpUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	followUpRepo repository.FollowUpRepository
	visitRepo    repository.PatientVisitRepository
	auditService service.AuditService
}

func NewFollowUpUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	followUpRepo repository.FollowUpRepository,
	visitRepo repository.PatientVisitRepository,
	auditService service.AuditService,
) FollowUpUsecase {
	return &followUpUsecase{
		db:           db,
		log:          log,
		followUpRepo: followUpRepo,
		visitRepo:    visitRepo,
		auditService: auditService,
	}
}

func (u *followUpUsecase) Create(ctx context.Context, req *dto.CreateFollowUpRequest) (*dto.FollowUpResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	visit, err := u.visitRepo.FindByID(tx, req.VisitID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVisitNotFound
		}
		u.log.Warnf("Failed to find visit: %+v", err)
		return nil, err
	}

	// The patient always comes from the visit; a differing one is rejected.
	if req.PatientID != "" && req.PatientID != visit.PatientID {
		return nil, ErrFollowUpPatientMismatch
	}

	followUp := &entity.FollowUp{
		VisitID:   visit.ID,
		PatientID: visit.PatientID,
		Date:      date,
		Reason:    req.Reason,
		Status:    req.Status,
	}
	if followUp.Status == "" {
		followUp.Status = entity.FollowUpStatusScheduled
	}

	if err := u.followUpRepo.Create(tx, followUp); err != nil {
		if isForeignKeyError(err) {
			return nil, ErrInvalidReference
		}
		u.log.Warnf("Failed to create follow-up: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityFollowUp, followUp.ID, followUp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.FollowUpToResponse(followUp), nil
}

func (u *followUpUsecase) GetByVisit(ctx context.Context, visitID int) ([]dto.FollowUpResponse, error) {
	followUps, err := u.followUpRepo.FindByVisitID(u.db.WithContext(ctx), visitID)
	if err != nil {
		u.log.Warnf("Failed to find follow-ups: %+v", err)
		return nil, err
	}
	return converter.FollowUpsToResponses(followUps), nil
}

func (u *followUpUsecase) GetByID(ctx context.Context, id int) (*dto.FollowUpResponse, error) {
	followUp, err := u.findByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.FollowUpToResponse(followUp), nil
}

func (u *followUpUsecase) Update(ctx context.Context, id int, req *dto.UpdateFollowUpRequest) (*dto.FollowUpResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	followUp, err := u.findByID(tx, id)
	if err != nil {
		return nil, err
	}
	old := *followUp

	var f fieldSetter
	if err := f.setDate(&followUp.Date, req.Date); err != nil {
		return nil, err
	}
	f.setString(&followUp.Reason, req.Reason)
	f.setString(&followUp.Status, req.Status)
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.followUpRepo.Update(tx, followUp); err != nil {
		u.log.Warnf("Failed to update follow-up: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityFollowUp, followUp.ID, &old, followUp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.FollowUpToResponse(followUp), nil
}

func (u *followUpUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	followUp, err := u.findByID(tx, id)
	if err != nil {
		return err
	}

	if err := u.followUpRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete follow-up: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityFollowUp, id, followUp); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *followUpUsecase) findByID(db *gorm.DB, id int) (*entity.FollowUp, error) {
	followUp, err := u.followUpRepo.FindByID(db, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrFollowUpNotFound
		}
		u.log.Warnf("Failed to find follow-up: %+v", err)
		return nil, err
	}
	return followUp, nil
}
