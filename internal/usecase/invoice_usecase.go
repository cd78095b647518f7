package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrInvoiceItemNotFound = errors.New("invoice item not found")
	ErrResetNotAllowed     = errors.New("invoice sequence reset is only available in development")
	ErrInvoiceIDConflict   = errors.New("could not allocate an invoice number, please retry")

	errInvoiceIDTaken = errors.New("invoice id taken")
)

const (
	auditEntityInvoice     = "invoice"
	auditEntityInvoiceItem = "invoice_item"

	maxInvoiceIDAttempts = 3
)

type InvoiceUsecase interface {
	Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetAll(ctx context.Context) ([]dto.InvoiceResponse, error)
	GetByID(ctx context.Context, id int) (*dto.InvoiceResponse, error)
	GetByPatient(ctx context.Context, patientCode string) ([]dto.InvoiceResponse, error)
	GetByVisit(ctx context.Context, visitID int) ([]dto.InvoiceResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	PatchStatus(ctx context.Context, id int, req *dto.PatchInvoiceStatusRequest) (*dto.InvoiceResponse, error)
	Delete(ctx context.Context, id int) error
	ResetSequence(ctx context.Context) error

	CreateItem(ctx context.Context, req *dto.CreateInvoiceItemRequest) (*dto.InvoiceItemResponse, error)
	GetItems(ctx context.Context, invoiceID int) ([]dto.InvoiceItemResponse, error)
	GetItem(ctx context.Context, id int) (*dto.InvoiceItemResponse, error)
	UpdateItem(ctx context.Context, id int, req *dto.UpdateInvoiceItemRequest) (*dto.InvoiceItemResponse, error)
	DeleteItem(ctx context.Context, id int) error
}

type invoiceUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	invoiceRepo     repository.InvoiceRepository
	itemRepo        repository.InvoiceItemRepository
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	auditService    service.AuditService
	allowReset      bool
}

func NewInvoiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	invoiceRepo repository.InvoiceRepository,
	itemRepo repository.InvoiceItemRepository,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	allowReset bool,
) InvoiceUsecase {
	return &invoiceUsecase{
		db:              db,
		log:             log,
		invoiceRepo:     invoiceRepo,
		itemRepo:        itemRepo,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
		allowReset:      allowReset,
	}
}

// Create stores the invoice under the smallest free id. Without an explicit
// total the sum of the items is used. A concurrent create can claim the same
// id first; the whole transaction is then retried with a fresh one.
func (u *invoiceUsecase) Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	paymentDate, err := parseOptionalDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		invoice, err := u.create(ctx, req, date, paymentDate)
		if err == nil {
			return converter.InvoiceToResponse(invoice), nil
		}
		if !errors.Is(err, errInvoiceIDTaken) {
			return nil, err
		}
		if attempt == maxInvoiceIDAttempts {
			return nil, ErrInvoiceIDConflict
		}
		u.log.Infof("Invoice id collided, retrying (attempt %d)", attempt)
	}
}

func (u *invoiceUsecase) create(ctx context.Context, req *dto.CreateInvoiceRequest, date time.Time, paymentDate *time.Time) (*entity.Invoice, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.patientRepo.FindByCode(tx, req.PatientID); err != nil {
		if isNotFound(err) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}

	id, err := u.invoiceRepo.NextID(tx)
	if err != nil {
		u.log.Warnf("Failed to allocate invoice id: %+v", err)
		return nil, err
	}

	items := make([]entity.InvoiceItem, 0, len(req.Items))
	sum := decimal.Zero
	for _, in := range req.Items {
		items = append(items, entity.InvoiceItem{
			InvoiceID:   id,
			Item:        in.Item,
			Description: in.Description,
			Amount:      in.Amount,
		})
		sum = sum.Add(in.Amount)
	}

	total := sum
	if req.TotalAmount != nil {
		total = *req.TotalAmount
	}

	invoice := &entity.Invoice{
		ID:            id,
		PatientID:     req.PatientID,
		VisitID:       req.VisitID,
		Date:          date,
		TotalAmount:   total,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   paymentDate,
		Notes:         req.Notes,
	}
	if invoice.Status == entity.InvoiceStatusPaid && invoice.PaymentDate == nil {
		t := today()
		invoice.PaymentDate = &t
	}

	if err := u.invoiceRepo.Create(tx, invoice); err != nil {
		if isDuplicateKeyError(err) {
			return nil, errInvoiceIDTaken
		}
		if isForeignKeyError(err) {
			return nil, ErrInvalidReference
		}
		u.log.Warnf("Failed to create invoice: %+v", err)
		return nil, err
	}

	for i := range items {
		if err := u.itemRepo.Create(tx, &items[i]); err != nil {
			u.log.Warnf("Failed to create invoice item: %+v", err)
			return nil, err
		}
	}
	invoice.Items = items

	if err := u.auditService.LogCreate(ctx, tx, auditEntityInvoice, invoice.ID, invoice); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return invoice, nil
}

func (u *invoiceUsecase) GetAll(ctx context.Context) ([]dto.InvoiceResponse, error) {
	invoices, err := u.invoiceRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find invoices: %+v", err)
		return nil, err
	}
	return converter.InvoicesToResponses(invoices), nil
}

func (u *invoiceUsecase) GetByID(ctx context.Context, id int) (*dto.InvoiceResponse, error) {
	invoice, err := u.invoiceRepo.FindByIDWithItems(u.db.WithContext(ctx), id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvoiceNotFound
		}
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	return converter.InvoiceToResponse(invoice), nil
}

func (u *invoiceUsecase) GetByPatient(ctx context.Context, patientCode string) ([]dto.InvoiceResponse, error) {
	invoices, err := u.invoiceRepo.FindByPatientID(u.db.WithContext(ctx), patientCode)
	if err != nil {
		u.log.Warnf("Failed to find invoices: %+v", err)
		return nil, err
	}
	return converter.InvoicesToResponses(invoices), nil
}

func (u *invoiceUsecase) GetByVisit(ctx context.Context, visitID int) ([]dto.InvoiceResponse, error) {
	invoices, err := u.invoiceRepo.FindByVisitID(u.db.WithContext(ctx), visitID)
	if err != nil {
		u.log.Warnf("Failed to find invoices: %+v", err)
		return nil, err
	}
	return converter.InvoicesToResponses(invoices), nil
}

func (u *invoiceUsecase) Update(ctx context.Context, id int, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invoice, err := u.lockInvoice(tx, id)
	if err != nil {
		return nil, err
	}
	old := *invoice

	var f fieldSetter
	if err := f.setDate(&invoice.Date, req.Date); err != nil {
		return nil, err
	}
	if err := f.setOptionalDate(&invoice.PaymentDate, req.PaymentDate); err != nil {
		return nil, err
	}
	f.setString(&invoice.Status, req.Status)
	f.setString(&invoice.Notes, req.Notes)
	if req.VisitID != nil {
		invoice.VisitID = req.VisitID
		f.mark()
	}
	if req.TotalAmount != nil {
		invoice.TotalAmount = *req.TotalAmount
		f.mark()
	}
	if req.PaymentMethod != nil {
		invoice.PaymentMethod = req.PaymentMethod
		f.mark()
	}
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.save(ctx, tx, &old, invoice); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InvoiceToResponse(invoice), nil
}

// PatchStatus is the quick status change. Paying stamps today's date and
// any other status clears the payment details.
func (u *invoiceUsecase) PatchStatus(ctx context.Context, id int, req *dto.PatchInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invoice, err := u.lockInvoice(tx, id)
	if err != nil {
		return nil, err
	}
	old := *invoice

	invoice.SetStatus(req.Status, req.PaymentMethod, today())
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}

	if err := u.save(ctx, tx, &old, invoice); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InvoiceToResponse(invoice), nil
}

// Delete unlinks appointments, removes the items and then the invoice.
func (u *invoiceUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invoice, err := u.invoiceRepo.FindByIDWithItems(tx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrInvoiceNotFound
		}
		u.log.Warnf("Failed to find invoice: %+v", err)
		return err
	}

	if err := u.appointmentRepo.UnlinkInvoice(tx, id); err != nil {
		u.log.Warnf("Failed to unlink appointments: %+v", err)
		return err
	}

	if err := u.itemRepo.DeleteByInvoiceID(tx, id); err != nil {
		u.log.Warnf("Failed to delete invoice items: %+v", err)
		return err
	}

	if err := u.invoiceRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete invoice: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityInvoice, id, invoice); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *invoiceUsecase) ResetSequence(ctx context.Context) error {
	if !u.allowReset {
		return ErrResetNotAllowed
	}
	if err := u.invoiceRepo.ResetSequence(u.db.WithContext(ctx)); err != nil {
		u.log.Warnf("Failed to reset invoice sequence: %+v", err)
		return err
	}
	u.log.Info("Invoice sequence reset")
	return nil
}

func (u *invoiceUsecase) CreateItem(ctx context.Context, req *dto.CreateInvoiceItemRequest) (*dto.InvoiceItemResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.lockInvoice(tx, req.InvoiceID); err != nil {
		return nil, err
	}

	item := &entity.InvoiceItem{
		InvoiceID:   req.InvoiceID,
		Item:        req.Item,
		Description: req.Description,
		Amount:      req.Amount,
	}

	if err := u.itemRepo.Create(tx, item); err != nil {
		u.log.Warnf("Failed to create invoice item: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityInvoiceItem, item.ID, item); err != nil {
		return nil, err
	}

	if err := u.recomputeTotal(ctx, tx, item.InvoiceID); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InvoiceItemToResponse(item), nil
}

func (u *invoiceUsecase) GetItems(ctx context.Context, invoiceID int) ([]dto.InvoiceItemResponse, error) {
	items, err := u.itemRepo.FindByInvoiceID(u.db.WithContext(ctx), invoiceID)
	if err != nil {
		u.log.Warnf("Failed to find invoice items: %+v", err)
		return nil, err
	}
	return converter.InvoiceItemsToResponses(items), nil
}

func (u *invoiceUsecase) GetItem(ctx context.Context, id int) (*dto.InvoiceItemResponse, error) {
	item, err := u.findItem(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.InvoiceItemToResponse(item), nil
}

func (u *invoiceUsecase) UpdateItem(ctx context.Context, id int, req *dto.UpdateInvoiceItemRequest) (*dto.InvoiceItemResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item, err := u.findItem(tx, id)
	if err != nil {
		return nil, err
	}
	if _, err := u.lockInvoice(tx, item.InvoiceID); err != nil {
		return nil, err
	}
	old := *item

	var f fieldSetter
	f.setString(&item.Item, req.Item)
	f.setString(&item.Description, req.Description)
	if req.Amount != nil {
		item.Amount = *req.Amount
		f.mark()
	}
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.itemRepo.Update(tx, item); err != nil {
		u.log.Warnf("Failed to update invoice item: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityInvoiceItem, item.ID, &old, item); err != nil {
		return nil, err
	}

	if err := u.recomputeTotal(ctx, tx, item.InvoiceID); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InvoiceItemToResponse(item), nil
}

func (u *invoiceUsecase) DeleteItem(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item, err := u.findItem(tx, id)
	if err != nil {
		return err
	}
	if _, err := u.lockInvoice(tx, item.InvoiceID); err != nil {
		return err
	}

	if err := u.itemRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete invoice item: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityInvoiceItem, id, item); err != nil {
		return err
	}

	if err := u.recomputeTotal(ctx, tx, item.InvoiceID); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// recomputeTotal sets the invoice total to the sum of its items.
func (u *invoiceUsecase) recomputeTotal(ctx context.Context, tx *gorm.DB, invoiceID int) error {
	invoice, err := u.lockInvoice(tx, invoiceID)
	if err != nil {
		return err
	}
	old := *invoice

	items, err := u.itemRepo.FindByInvoiceID(tx, invoiceID)
	if err != nil {
		u.log.Warnf("Failed to find invoice items: %+v", err)
		return err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	if total.Equal(invoice.TotalAmount) {
		return nil
	}

	invoice.TotalAmount = total
	return u.save(ctx, tx, &old, invoice)
}

func (u *invoiceUsecase) save(ctx context.Context, tx *gorm.DB, old, invoice *entity.Invoice) error {
	if err := u.invoiceRepo.Update(tx, invoice); err != nil {
		if isForeignKeyError(err) {
			return ErrInvalidReference
		}
		u.log.Warnf("Failed to update invoice: %+v", err)
		return err
	}
	return u.auditService.LogUpdate(ctx, tx, auditEntityInvoice, invoice.ID, old, invoice)
}

func (u *invoiceUsecase) lockInvoice(tx *gorm.DB, id int) (*entity.Invoice, error) {
	invoice, err := u.invoiceRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvoiceNotFound
		}
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	return invoice, nil
}

func (u *invoiceUsecase) findItem(db *gorm.DB, id int) (*entity.InvoiceItem, error) {
	item, err := u.itemRepo.FindByID(db, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvoiceItemNotFound
		}
		u.log.Warnf("Failed to find invoice item: %+v", err)
		return nil, err
	}
	return item, nil
}
