package usecase

import (
	"context"
	"errors"

	"dental-clinic/internal/converter"
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/domain/repository"
	"dental-clinic/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrLabWorkNotFound       = errors.New("lab work not found")
	ErrLabWorkCostNotFound   = errors.New("lab work cost not found")
	ErrLabWorkCostExists     = errors.New("a cost for this work type and technician already exists")
	ErrInventoryItemNotFound = errors.New("inventory item not found")
)

const (
	auditEntityLabWork       = "lab_work"
	auditEntityLabWorkCost   = "lab_work_cost"
	auditEntityInventoryItem = "lab_inventory"
)

type LabWorkUsecase interface {
	Create(ctx context.Context, req *dto.CreateLabWorkRequest) (*dto.LabWorkResponse, error)
	GetAll(ctx context.Context) ([]dto.LabWorkResponse, error)
	GetByID(ctx context.Context, id int) (*dto.LabWorkResponse, error)
	GetByPatient(ctx context.Context, patientCode string) ([]dto.LabWorkResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateLabWorkRequest) (*dto.LabWorkResponse, error)
	Delete(ctx context.Context, id int) error
}

type labWorkUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	labWorkRepo  repository.LabWorkRepository
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewLabWorkUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	labWorkRepo repository.LabWorkRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) LabWorkUsecase {
	return &labWorkUsecase{
		db:           db,
		log:          log,
		labWorkRepo:  labWorkRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *labWorkUsecase) Create(ctx context.Context, req *dto.CreateLabWorkRequest) (*dto.LabWorkResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	completedDate, err := parseOptionalDate(req.CompletedDate)
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

	labWork := &entity.LabWork{
		PatientID:     req.PatientID,
		WorkType:      req.WorkType,
		Status:        req.Status,
		Description:   req.Description,
		Shade:         req.Shade,
		StartDate:     startDate,
		DueDate:       dueDate,
		CompletedDate: completedDate,
		Technician:    req.Technician,
		Notes:         req.Notes,
	}
	if req.Cost != nil {
		labWork.Cost = decimal.NewNullDecimal(*req.Cost)
	}
	stampCompletion(labWork)

	if err := u.labWorkRepo.Create(tx, labWork); err != nil {
		u.log.Warnf("Failed to create lab work: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityLabWork, labWork.ID, labWork); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LabWorkToResponse(labWork), nil
}

func (u *labWorkUsecase) GetAll(ctx context.Context) ([]dto.LabWorkResponse, error) {
	labWorks, err := u.labWorkRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find lab works: %+v", err)
		return nil, err
	}
	return converter.LabWorksToResponses(labWorks), nil
}

func (u *labWorkUsecase) GetByID(ctx context.Context, id int) (*dto.LabWorkResponse, error) {
	labWork, err := u.findByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.LabWorkToResponse(labWork), nil
}

func (u *labWorkUsecase) GetByPatient(ctx context.Context, patientCode string) ([]dto.LabWorkResponse, error) {
	labWorks, err := u.labWorkRepo.FindByPatientID(u.db.WithContext(ctx), patientCode)
	if err != nil {
		u.log.Warnf("Failed to find lab works: %+v", err)
		return nil, err
	}
	return converter.LabWorksToResponses(labWorks), nil
}

func (u *labWorkUsecase) Update(ctx context.Context, id int, req *dto.UpdateLabWorkRequest) (*dto.LabWorkResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	labWork, err := u.findByID(tx, id)
	if err != nil {
		return nil, err
	}
	old := *labWork

	var f fieldSetter
	if err := f.setDate(&labWork.StartDate, req.StartDate); err != nil {
		return nil, err
	}
	if err := f.setDate(&labWork.DueDate, req.DueDate); err != nil {
		return nil, err
	}
	if err := f.setOptionalDate(&labWork.CompletedDate, req.CompletedDate); err != nil {
		return nil, err
	}
	f.setString(&labWork.WorkType, req.WorkType)
	f.setString(&labWork.Status, req.Status)
	f.setString(&labWork.Description, req.Description)
	f.setString(&labWork.Shade, req.Shade)
	f.setString(&labWork.Technician, req.Technician)
	f.setString(&labWork.Notes, req.Notes)
	if req.Cost != nil {
		labWork.Cost = decimal.NewNullDecimal(*req.Cost)
		f.mark()
	}
	if !f.changed {
		return nil, ErrEmptyUpdate
	}
	stampCompletion(labWork)

	if err := u.labWorkRepo.Update(tx, labWork); err != nil {
		u.log.Warnf("Failed to update lab work: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityLabWork, labWork.ID, &old, labWork); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LabWorkToResponse(labWork), nil
}

func (u *labWorkUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	labWork, err := u.findByID(tx, id)
	if err != nil {
		return err
	}

	if err := u.labWorkRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete lab work: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityLabWork, id, labWork); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *labWorkUsecase) findByID(db *gorm.DB, id int) (*entity.LabWork, error) {
	labWork, err := u.labWorkRepo.FindByID(db, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrLabWorkNotFound
		}
		u.log.Warnf("Failed to find lab work: %+v", err)
		return nil, err
	}
	return labWork, nil
}

// stampCompletion dates completed work that arrived without a completion date.
func stampCompletion(labWork *entity.LabWork) {
	if labWork.Status == entity.LabWorkStatusCompleted && labWork.CompletedDate == nil {
		t := today()
		labWork.CompletedDate = &t
	}
}

type LabWorkCostUsecase interface {
	Create(ctx context.Context, req *dto.CreateLabWorkCostRequest) (*dto.LabWorkCostResponse, error)
	GetAll(ctx context.Context) ([]dto.LabWorkCostResponse, error)
	GetByID(ctx context.Context, id int) (*dto.LabWorkCostResponse, error)
	// Lookup finds the cost of workType at technician. An empty technician
	// matches the first entry for the work type.
	Lookup(ctx context.Context, workType, technician string) (*dto.LabWorkCostResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateLabWorkCostRequest) (*dto.LabWorkCostResponse, error)
	Delete(ctx context.Context, id int) error
}

type labWorkCostUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	costRepo     repository.LabWorkCostRepository
	auditService service.AuditService
}

func NewLabWorkCostUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	costRepo repository.LabWorkCostRepository,
	auditService service.AuditService,
) LabWorkCostUsecase {
	return &labWorkCostUsecase{
		db:           db,
		log:          log,
		costRepo:     costRepo,
		auditService: auditService,
	}
}

func (u *labWorkCostUsecase) Create(ctx context.Context, req *dto.CreateLabWorkCostRequest) (*dto.LabWorkCostResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	cost := &entity.LabWorkCost{
		WorkType:      req.WorkType,
		LabTechnician: req.LabTechnician,
		Cost:          req.Cost,
	}

	if err := u.costRepo.Create(tx, cost); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrLabWorkCostExists
		}
		u.log.Warnf("Failed to create lab work cost: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityLabWorkCost, cost.ID, cost); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LabWorkCostToResponse(cost), nil
}

func (u *labWorkCostUsecase) GetAll(ctx context.Context) ([]dto.LabWorkCostResponse, error) {
	costs, err := u.costRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find lab work costs: %+v", err)
		return nil, err
	}
	return converter.LabWorkCostsToResponses(costs), nil
}

func (u *labWorkCostUsecase) GetByID(ctx context.Context, id int) (*dto.LabWorkCostResponse, error) {
	cost, err := u.findByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.LabWorkCostToResponse(cost), nil
}

func (u *labWorkCostUsecase) Lookup(ctx context.Context, workType, technician string) (*dto.LabWorkCostResponse, error) {
	db := u.db.WithContext(ctx)

	var (
		cost *entity.LabWorkCost
		err  error
	)
	if technician == "" {
		cost, err = u.costRepo.FindByWorkType(db, workType)
	} else {
		cost, err = u.costRepo.FindByWorkTypeAndTechnician(db, workType, technician)
	}
	if err != nil {
		if isNotFound(err) {
			return nil, ErrLabWorkCostNotFound
		}
		u.log.Warnf("Failed to find lab work cost: %+v", err)
		return nil, err
	}
	return converter.LabWorkCostToResponse(cost), nil
}

func (u *labWorkCostUsecase) Update(ctx context.Context, id int, req *dto.UpdateLabWorkCostRequest) (*dto.LabWorkCostResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	cost, err := u.findByID(tx, id)
	if err != nil {
		return nil, err
	}
	old := *cost

	var f fieldSetter
	f.setString(&cost.WorkType, req.WorkType)
	f.setString(&cost.LabTechnician, req.LabTechnician)
	if req.Cost != nil {
		cost.Cost = *req.Cost
		f.mark()
	}
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.costRepo.Update(tx, cost); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrLabWorkCostExists
		}
		u.log.Warnf("Failed to update lab work cost: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityLabWorkCost, cost.ID, &old, cost); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LabWorkCostToResponse(cost), nil
}

func (u *labWorkCostUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	cost, err := u.findByID(tx, id)
	if err != nil {
		return err
	}

	if err := u.costRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete lab work cost: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityLabWorkCost, id, cost); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *labWorkCostUsecase) findByID(db *gorm.DB, id int) (*entity.LabWorkCost, error) {
	cost, err := u.costRepo.FindByID(db, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrLabWorkCostNotFound
		}
		u.log.Warnf("Failed to find lab work cost: %+v", err)
		return nil, err
	}
	return cost, nil
}

type LabInventoryUsecase interface {
	Create(ctx context.Context, req *dto.CreateLabInventoryItemRequest) (*dto.LabInventoryItemResponse, error)
	GetAll(ctx context.Context) ([]dto.LabInventoryItemResponse, error)
	GetByID(ctx context.Context, id int) (*dto.LabInventoryItemResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateLabInventoryItemRequest) (*dto.LabInventoryItemResponse, error)
	Delete(ctx context.Context, id int) error
}

type labInventoryUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	inventoryRepo repository.LabInventoryRepository
	auditService  service.AuditService
}

func NewLabInventoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	inventoryRepo repository.LabInventoryRepository,
	auditService service.AuditService,
) LabInventoryUsecase {
	return &labInventoryUsecase{
		db:            db,
		log:           log,
		inventoryRepo: inventoryRepo,
		auditService:  auditService,
	}
}

func (u *labInventoryUsecase) Create(ctx context.Context, req *dto.CreateLabInventoryItemRequest) (*dto.LabInventoryItemResponse, error) {
	if req.Quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	lastRestock, err := parseOptionalDate(req.LastRestock)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item := &entity.LabInventoryItem{
		ItemName:    req.ItemName,
		Quantity:    req.Quantity,
		Threshold:   req.Threshold,
		Supplier:    req.Supplier,
		LastRestock: lastRestock,
	}
	if req.UnitCost != nil {
		item.UnitCost = decimal.NewNullDecimal(*req.UnitCost)
	}

	if err := u.inventoryRepo.Create(tx, item); err != nil {
		u.log.Warnf("Failed to create inventory item: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityInventoryItem, item.ID, item); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LabInventoryItemToResponse(item), nil
}

func (u *labInventoryUsecase) GetAll(ctx context.Context) ([]dto.LabInventoryItemResponse, error) {
	items, err := u.inventoryRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find inventory items: %+v", err)
		return nil, err
	}
	return converter.LabInventoryItemsToResponses(items), nil
}

func (u *labInventoryUsecase) GetByID(ctx context.Context, id int) (*dto.LabInventoryItemResponse, error) {
	item, err := u.findByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.LabInventoryItemToResponse(item), nil
}

func (u *labInventoryUsecase) Update(ctx context.Context, id int, req *dto.UpdateLabInventoryItemRequest) (*dto.LabInventoryItemResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item, err := u.findByID(tx, id)
	if err != nil {
		return nil, err
	}
	old := *item

	var f fieldSetter
	if err := f.setOptionalDate(&item.LastRestock, req.LastRestock); err != nil {
		return nil, err
	}
	f.setString(&item.ItemName, req.ItemName)
	f.setInt(&item.Quantity, req.Quantity)
	f.setString(&item.Supplier, req.Supplier)
	if item.Quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if req.Threshold != nil {
		item.Threshold = req.Threshold
		f.mark()
	}
	if req.UnitCost != nil {
		item.UnitCost = decimal.NewNullDecimal(*req.UnitCost)
		f.mark()
	}
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.inventoryRepo.Update(tx, item); err != nil {
		u.log.Warnf("Failed to update inventory item: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityInventoryItem, item.ID, &old, item); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LabInventoryItemToResponse(item), nil
}

func (u *labInventoryUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item, err := u.findByID(tx, id)
	if err != nil {
		return err
	}

	if err := u.inventoryRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete inventory item: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityInventoryItem, id, item); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *labInventoryUsecase) findByID(db *gorm.DB, id int) (*entity.LabInventoryItem, error) {
	item, err := u.inventoryRepo.FindByID(db, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInventoryItemNotFound
		}
		u.log.Warnf("Failed to find inventory item: %+v", err)
		return nil, err
	}
	return item, nil
}
