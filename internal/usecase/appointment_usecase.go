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

var ErrAppointmentNotFound = errors.New("appointment not found")

const (
	auditEntityAppointment = "appointment"

	autoInvoiceNote = "Auto-generated invoice"
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAll(ctx context.Context) ([]dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	GetByPatient(ctx context.Context, patientCode string) ([]dto.AppointmentResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id int) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	invoiceRepo     repository.InvoiceRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	invoiceRepo repository.InvoiceRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		invoiceRepo:     invoiceRepo,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := parseDate(req.Date)
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

	appointment := &entity.Appointment{
		PatientID:     req.PatientID,
		Date:          date,
		DoctorName:    req.DoctorName,
		TreatmentDone: req.TreatmentDone,
		Notes:         req.Notes,
		VisitID:       req.VisitID,
		InvoiceID:     req.InvoiceID,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isForeignKeyError(err) {
			return nil, ErrInvalidReference
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityAppointment, appointment.ID, appointment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAll(ctx context.Context) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAppointmentNotFound
		}
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetByPatient(ctx context.Context, patientCode string) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientCode)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

// Update merges the request into the appointment. An appointment that still
// has no invoice afterwards gets a pending zero-total one.
func (u *appointmentUsecase) Update(ctx context.Context, id int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAppointmentNotFound
		}
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	old := *appointment

	var f fieldSetter
	if err := f.setDate(&appointment.Date, req.Date); err != nil {
		return nil, err
	}
	f.setString(&appointment.DoctorName, req.DoctorName)
	f.setString(&appointment.TreatmentDone, req.TreatmentDone)
	f.setString(&appointment.Notes, req.Notes)
	if req.VisitID != nil {
		appointment.VisitID = req.VisitID
		f.mark()
	}
	if req.InvoiceID != nil {
		appointment.InvoiceID = req.InvoiceID
		f.mark()
	}
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if appointment.InvoiceID == nil {
		invoiceID, err := u.createPendingInvoice(ctx, tx, appointment)
		if err != nil {
			return nil, err
		}
		appointment.InvoiceID = &invoiceID
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		if isForeignKeyError(err) {
			return nil, ErrInvalidReference
		}
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityAppointment, appointment.ID, &old, appointment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) createPendingInvoice(ctx context.Context, tx *gorm.DB, appointment *entity.Appointment) (int, error) {
	invoiceID, err := u.invoiceRepo.NextID(tx)
	if err != nil {
		u.log.Warnf("Failed to allocate invoice id: %+v", err)
		return 0, err
	}

	invoice := &entity.Invoice{
		ID:          invoiceID,
		PatientID:   appointment.PatientID,
		Date:        today(),
		TotalAmount: decimal.Zero,
		Status:      entity.InvoiceStatusPending,
		Notes:       autoInvoiceNote,
	}

	if err := u.invoiceRepo.Create(tx, invoice); err != nil {
		if isDuplicateKeyError(err) {
			return 0, ErrInvoiceIDConflict
		}
		u.log.Warnf("Failed to create invoice: %+v", err)
		return 0, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityInvoice, invoice.ID, invoice); err != nil {
		return 0, err
	}

	return invoice.ID, nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrAppointmentNotFound
		}
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}

	if err := u.appointmentRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityAppointment, id, appointment); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}
