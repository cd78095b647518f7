package usecase

import (
	"context"
	"errors"
	"strconv"

	"dental-clinic/internal/converter"
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/domain/repository"
	"dental-clinic/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrToothFindingNotFound       = errors.New("tooth finding not found")
	ErrGeneralizedFindingNotFound = errors.New("generalized finding not found")
	ErrInvestigationNotFound      = errors.New("investigation not found")
	ErrInvalidToothNumber         = errors.New("tooth number must be between 1 and 32")
)

const (
	auditEntityToothFinding       = "tooth_finding"
	auditEntityGeneralizedFinding = "generalized_finding"
	auditEntityInvestigation      = "investigation"
)

// ExaminationUsecase manages the per-visit examination records: findings
// on single teeth, findings on the whole mouth and ordered investigations.
type ExaminationUsecase interface {
	CreateToothFinding(ctx context.Context, req *dto.CreateToothFindingRequest) (*dto.ToothFindingResponse, error)
	GetToothFindings(ctx context.Context, visitID int) ([]dto.ToothFindingResponse, error)
	UpdateToothFinding(ctx context.Context, id int, req *dto.UpdateToothFindingRequest) (*dto.ToothFindingResponse, error)
	DeleteToothFinding(ctx context.Context, id int) error

	CreateGeneralizedFinding(ctx context.Context, req *dto.CreateGeneralizedFindingRequest) (*dto.GeneralizedFindingResponse, error)
	GetGeneralizedFindings(ctx context.Context, visitID int) ([]dto.GeneralizedFindingResponse, error)
	UpdateGeneralizedFinding(ctx context.Context, id int, req *dto.UpdateGeneralizedFindingRequest) (*dto.GeneralizedFindingResponse, error)
	DeleteGeneralizedFinding(ctx context.Context, id int) error

	CreateInvestigation(ctx context.Context, req *dto.CreateInvestigationRequest) (*dto.InvestigationResponse, error)
	GetInvestigations(ctx context.Context, visitID int) ([]dto.InvestigationResponse, error)
	UpdateInvestigation(ctx context.Context, id int, req *dto.UpdateInvestigationRequest) (*dto.InvestigationResponse, error)
	DeleteInvestigation(ctx context.Context, id int) error
}

type examinationUsecase struct {
	db                     *gorm.DB
	log                    *logrus.Logger
	visitRepo              repository.PatientVisitRepository
	toothFindingRepo       repository.ToothFindingRepository
	generalizedFindingRepo repository.GeneralizedFindingRepository
	investigationRepo      repository.InvestigationRepository
	auditService           service.AuditService
}

func NewExaminationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	visitRepo repository.PatientVisitRepository,
	toothFindingRepo repository.ToothFindingRepository,
	generalizedFindingRepo repository.GeneralizedFindingRepository,
	investigationRepo repository.InvestigationRepository,
	auditService service.AuditService,
) ExaminationUsecase {
	return &examinationUsecase{
		db:                     db,
		log:                    log,
		visitRepo:              visitRepo,
		toothFindingRepo:       toothFindingRepo,
		generalizedFindingRepo: generalizedFindingRepo,
		investigationRepo:      investigationRepo,
		auditService:           auditService,
	}
}

// requireVisit returns ErrVisitNotFound unless the visit exists.
func requireVisit(db *gorm.DB, log *logrus.Logger, visitRepo repository.PatientVisitRepository, visitID int) error {
	if _, err := visitRepo.FindByID(db, visitID); err != nil {
		if isNotFound(err) {
			return ErrVisitNotFound
		}
		log.Warnf("Failed to find visit: %+v", err)
		return err
	}
	return nil
}

func validToothNumber(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= 32
}

// Tooth findings

func (u *examinationUsecase) CreateToothFinding(ctx context.Context, req *dto.CreateToothFindingRequest) (*dto.ToothFindingResponse, error) {
	if !validToothNumber(req.ToothNumber) {
		return nil, ErrInvalidToothNumber
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := requireVisit(tx, u.log, u.visitRepo, req.VisitID); err != nil {
		return nil, err
	}

	finding := &entity.ToothFinding{
		VisitID:     req.VisitID,
		ToothNumber: req.ToothNumber,
		Finding:     req.Finding,
	}

	if err := u.toothFindingRepo.Create(tx, finding); err != nil {
		u.log.Warnf("Failed to create tooth finding: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityToothFinding, finding.ID, finding); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ToothFindingToResponse(finding), nil
}

func (u *examinationUsecase) GetToothFindings(ctx context.Context, visitID int) ([]dto.ToothFindingResponse, error) {
	findings, err := u.toothFindingRepo.FindByVisitID(u.db.WithContext(ctx), visitID)
	if err != nil {
		u.log.Warnf("Failed to find tooth findings: %+v", err)
		return nil, err
	}
	return converter.ToothFindingsToResponses(findings), nil
}

func (u *examinationUsecase) UpdateToothFinding(ctx context.Context, id int, req *dto.UpdateToothFindingRequest) (*dto.ToothFindingResponse, error) {
	if req.ToothNumber != nil && !validToothNumber(*req.ToothNumber) {
		return nil, ErrInvalidToothNumber
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	finding, err := u.toothFindingRepo.FindByID(tx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrToothFindingNotFound
		}
		u.log.Warnf("Failed to find tooth finding: %+v", err)
		return nil, err
	}
	old := *finding

	var f fieldSetter
	f.setString(&finding.ToothNumber, req.ToothNumber)
	f.setString(&finding.Finding, req.Finding)
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.toothFindingRepo.Update(tx, finding); err != nil {
		u.log.Warnf("Failed to update tooth finding: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityToothFinding, finding.ID, &old, finding); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ToothFindingToResponse(finding), nil
}

func (u *examinationUsecase) DeleteToothFinding(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	finding, err := u.toothFindingRepo.FindByID(tx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrToothFindingNotFound
		}
		u.log.Warnf("Failed to find tooth finding: %+v", err)
		return err
	}

	if err := u.toothFindingRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete tooth finding: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityToothFinding, id, finding); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// Generalized findings

func (u *examinationUsecase) CreateGeneralizedFinding(ctx context.Context, req *dto.CreateGeneralizedFindingRequest) (*dto.GeneralizedFindingResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := requireVisit(tx, u.log, u.visitRepo, req.VisitID); err != nil {
		return nil, err
	}

	finding := &entity.GeneralizedFinding{
		VisitID: req.VisitID,
		Finding: req.Finding,
	}

	if err := u.generalizedFindingRepo.Create(tx, finding); err != nil {
		u.log.Warnf("Failed to create generalized finding: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityGeneralizedFinding, finding.ID, finding); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.GeneralizedFindingToResponse(finding), nil
}

func (u *examinationUsecase) GetGeneralizedFindings(ctx context.Context, visitID int) ([]dto.GeneralizedFindingResponse, error) {
	findings, err := u.generalizedFindingRepo.FindByVisitID(u.db.WithContext(ctx), visitID)
	if err != nil {
		u.log.Warnf("Failed to find generalized findings: %+v", err)
		return nil, err
	}
	return converter.GeneralizedFindingsToResponses(findings), nil
}

func (u *examinationUsecase) UpdateGeneralizedFinding(ctx context.Context, id int, req *dto.UpdateGeneralizedFindingRequest) (*dto.GeneralizedFindingResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	finding, err := u.generalizedFindingRepo.FindByID(tx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrGeneralizedFindingNotFound
		}
		u.log.Warnf("Failed to find generalized finding: %+v", err)
		return nil, err
	}
	old := *finding

	var f fieldSetter
	f.setString(&finding.Finding, req.Finding)
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.generalizedFindingRepo.Update(tx, finding); err != nil {
		u.log.Warnf("Failed to update generalized finding: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityGeneralizedFinding, finding.ID, &old, finding); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.GeneralizedFindingToResponse(finding), nil
}

func (u *examinationUsecase) DeleteGeneralizedFinding(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	finding, err := u.generalizedFindingRepo.FindByID(tx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrGeneralizedFindingNotFound
		}
		u.log.Warnf("Failed to find generalized finding: %+v", err)
		return err
	}

	if err := u.generalizedFindingRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete generalized finding: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityGeneralizedFinding, id, finding); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// Investigations

func (u *examinationUsecase) CreateInvestigation(ctx context.Context, req *dto.CreateInvestigationRequest) (*dto.InvestigationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := requireVisit(tx, u.log, u.visitRepo, req.VisitID); err != nil {
		return nil, err
	}

	investigation := &entity.Investigation{
		VisitID:  req.VisitID,
		Type:     req.Type,
		Findings: req.Findings,
	}

	if err := u.investigationRepo.Create(tx, investigation); err != nil {
		u.log.Warnf("Failed to create investigation: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityInvestigation, investigation.ID, investigation); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InvestigationToResponse(investigation), nil
}

func (u *examinationUsecase) GetInvestigations(ctx context.Context, visitID int) ([]dto.InvestigationResponse, error) {
	investigations, err := u.investigationRepo.FindByVisitID(u.db.WithContext(ctx), visitID)
	if err != nil {
		u.log.Warnf("Failed to find investigations: %+v", err)
		return nil, err
	}
	return converter.InvestigationsToResponses(investigations), nil
}

func (u *examinationUsecase) UpdateInvestigation(ctx context.Context, id int, req *dto.UpdateInvestigationRequest) (*dto.InvestigationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	investigation, err := u.investigationRepo.FindByID(tx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvestigationNotFound
		}
		u.log.Warnf("Failed to find investigation: %+v", err)
		return nil, err
	}
	old := *investigation

	var f fieldSetter
	f.setString(&investigation.Type, req.Type)
	f.setString(&investigation.Findings, req.Findings)
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.investigationRepo.Update(tx, investigation); err != nil {
		u.log.Warnf("Failed to update investigation: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityInvestigation, investigation.ID, &old, investigation); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InvestigationToResponse(investigation), nil
}

func (u *examinationUsecase) DeleteInvestigation(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	investigation, err := u.investigationRepo.FindByID(tx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrInvestigationNotFound
		}
		u.log.Warnf("Failed to find investigation: %+v", err)
		return err
	}

	if err := u.investigationRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete investigation: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityInvestigation, id, investigation); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}
