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
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceExists   = errors.New("attendance already recorded for this date")
	ErrSalaryNotFound     = errors.New("salary record not found")
)

const (
	auditEntityStaff      = "staff"
	auditEntityAttendance = "staff_attendance"
	auditEntitySalary     = "staff_salary"
)

type StaffUsecase interface {
	Create(ctx context.Context, req *dto.CreateStaffRequest) (*dto.StaffResponse, error)
	GetAll(ctx context.Context) ([]dto.StaffResponse, error)
	GetByID(ctx context.Context, id int) (*dto.StaffResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	Delete(ctx context.Context, id int) error

	CreateAttendance(ctx context.Context, req *dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error)
	GetAttendance(ctx context.Context, staffID int) ([]dto.AttendanceResponse, error)
	UpdateAttendance(ctx context.Context, id int, req *dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id int) error

	CreateSalary(ctx context.Context, req *dto.CreateSalaryRequest) (*dto.SalaryResponse, error)
	GetSalaries(ctx context.Context, staffID int) ([]dto.SalaryResponse, error)
	UpdateSalary(ctx context.Context, id int, req *dto.UpdateSalaryRequest) (*dto.SalaryResponse, error)
	DeleteSalary(ctx context.Context, id int) error
}

type staffUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	staffRepo      repository.StaffRepository
	attendanceRepo repository.StaffAttendanceRepository
	salaryRepo     repository.StaffSalaryRepository
	auditService   service.AuditService
}

func NewStaffUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	staffRepo repository.StaffRepository,
	attendanceRepo repository.StaffAttendanceRepository,
	salaryRepo repository.StaffSalaryRepository,
	auditService service.AuditService,
) StaffUsecase {
	return &staffUsecase{
		db:             db,
		log:            log,
		staffRepo:      staffRepo,
		attendanceRepo: attendanceRepo,
		salaryRepo:     salaryRepo,
		auditService:   auditService,
	}
}

func (u *staffUsecase) Create(ctx context.Context, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	joinDate, err := parseDate(req.JoinDate)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	staff := &entity.Staff{
		Name:        req.Name,
		Role:        req.Role,
		ContactInfo: req.ContactInfo,
		Address:     req.Address,
		JoinDate:    joinDate,
		Salary:      req.Salary,
		IsActive:    true,
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}

	if err := u.staffRepo.Create(tx, staff); err != nil {
		u.log.Warnf("Failed to create staff: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityStaff, staff.ID, staff); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.StaffToResponse(staff), nil
}

func (u *staffUsecase) GetAll(ctx context.Context) ([]dto.StaffResponse, error) {
	staff, err := u.staffRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find staff: %+v", err)
		return nil, err
	}
	return converter.StaffListToResponses(staff), nil
}

func (u *staffUsecase) GetByID(ctx context.Context, id int) (*dto.StaffResponse, error) {
	staff, err := u.findStaff(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.StaffToResponse(staff), nil
}

func (u *staffUsecase) Update(ctx context.Context, id int, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	staff, err := u.findStaff(tx, id)
	if err != nil {
		return nil, err
	}
	old := *staff

	var f fieldSetter
	if err := f.setDate(&staff.JoinDate, req.JoinDate); err != nil {
		return nil, err
	}
	f.setString(&staff.Name, req.Name)
	f.setString(&staff.Role, req.Role)
	f.setString(&staff.ContactInfo, req.ContactInfo)
	f.setString(&staff.Address, req.Address)
	f.setBool(&staff.IsActive, req.IsActive)
	if req.Salary != nil {
		staff.Salary = *req.Salary
		f.mark()
	}
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.staffRepo.Update(tx, staff); err != nil {
		u.log.Warnf("Failed to update staff: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityStaff, staff.ID, &old, staff); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.StaffToResponse(staff), nil
}

func (u *staffUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	staff, err := u.findStaff(tx, id)
	if err != nil {
		return err
	}

	if err := u.staffRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete staff: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityStaff, id, staff); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *staffUsecase) CreateAttendance(ctx context.Context, req *dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.findStaff(tx, req.StaffID); err != nil {
		return nil, err
	}

	attendance := &entity.StaffAttendance{
		StaffID: req.StaffID,
		Date:    date,
		Present: *req.Present,
		Remarks: req.Remarks,
	}

	if err := u.attendanceRepo.Create(tx, attendance); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrAttendanceExists
		}
		u.log.Warnf("Failed to create attendance: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityAttendance, attendance.ID, attendance); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AttendanceToResponse(attendance), nil
}

// GetAttendance lists attendance for staffID, or every record when staffID is 0.
func (u *staffUsecase) GetAttendance(ctx context.Context, staffID int) ([]dto.AttendanceResponse, error) {
	db := u.db.WithContext(ctx)

	var (
		rows []entity.StaffAttendance
		err  error
	)
	if staffID == 0 {
		rows, err = u.attendanceRepo.FindAll(db)
	} else {
		rows, err = u.attendanceRepo.FindByStaffID(db, staffID)
	}
	if err != nil {
		u.log.Warnf("Failed to find attendance: %+v", err)
		return nil, err
	}
	return converter.AttendancesToResponses(rows), nil
}

func (u *staffUsecase) UpdateAttendance(ctx context.Context, id int, req *dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	attendance, err := u.findAttendance(tx, id)
	if err != nil {
		return nil, err
	}
	old := *attendance

	var f fieldSetter
	if err := f.setDate(&attendance.Date, req.Date); err != nil {
		return nil, err
	}
	f.setBool(&attendance.Present, req.Present)
	f.setString(&attendance.Remarks, req.Remarks)
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.attendanceRepo.Update(tx, attendance); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrAttendanceExists
		}
		u.log.Warnf("Failed to update attendance: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityAttendance, attendance.ID, &old, attendance); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AttendanceToResponse(attendance), nil
}

func (u *staffUsecase) DeleteAttendance(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	attendance, err := u.findAttendance(tx, id)
	if err != nil {
		return err
	}

	if err := u.attendanceRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete attendance: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityAttendance, id, attendance); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// CreateSalary stores a salary record; the net amount is always computed here.
func (u *staffUsecase) CreateSalary(ctx context.Context, req *dto.CreateSalaryRequest) (*dto.SalaryResponse, error) {
	paymentDate, err := parseOptionalDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.findStaff(tx, req.StaffID); err != nil {
		return nil, err
	}

	salary := &entity.StaffSalary{
		StaffID:       req.StaffID,
		Month:         req.Month,
		Year:          req.Year,
		BaseSalary:    req.BaseSalary,
		Bonus:         decimal.Zero,
		Deduction:     decimal.Zero,
		PaymentDate:   paymentDate,
		PaymentStatus: req.PaymentStatus,
		Notes:         req.Notes,
	}
	if req.Bonus != nil {
		salary.Bonus = *req.Bonus
	}
	if req.Deduction != nil {
		salary.Deduction = *req.Deduction
	}
	salary.ComputeNet()

	if err := u.salaryRepo.Create(tx, salary); err != nil {
		u.log.Warnf("Failed to create salary: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntitySalary, salary.ID, salary); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SalaryToResponse(salary), nil
}

// GetSalaries lists salaries for staffID, or every record when staffID is 0.
func (u *staffUsecase) GetSalaries(ctx context.Context, staffID int) ([]dto.SalaryResponse, error) {
	db := u.db.WithContext(ctx)

	var (
		rows []entity.StaffSalary
		err  error
	)
	if staffID == 0 {
		rows, err = u.salaryRepo.FindAll(db)
	} else {
		rows, err = u.salaryRepo.FindByStaffID(db, staffID)
	}
	if err != nil {
		u.log.Warnf("Failed to find salaries: %+v", err)
		return nil, err
	}
	return converter.SalariesToResponses(rows), nil
}

func (u *staffUsecase) UpdateSalary(ctx context.Context, id int, req *dto.UpdateSalaryRequest) (*dto.SalaryResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	salary, err := u.findSalary(tx, id)
	if err != nil {
		return nil, err
	}
	old := *salary

	var f fieldSetter
	if err := f.setOptionalDate(&salary.PaymentDate, req.PaymentDate); err != nil {
		return nil, err
	}
	f.setString(&salary.Month, req.Month)
	f.setInt(&salary.Year, req.Year)
	f.setString(&salary.PaymentStatus, req.PaymentStatus)
	f.setString(&salary.Notes, req.Notes)
	for _, amount := range []struct {
		dst *decimal.Decimal
		src *decimal.Decimal
	}{
		{&salary.BaseSalary, req.BaseSalary},
		{&salary.Bonus, req.Bonus},
		{&salary.Deduction, req.Deduction},
	} {
		if amount.src != nil {
			*amount.dst = *amount.src
			f.mark()
		}
	}
	if !f.changed {
		return nil, ErrEmptyUpdate
	}
	salary.ComputeNet()

	if err := u.salaryRepo.Update(tx, salary); err != nil {
		u.log.Warnf("Failed to update salary: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntitySalary, salary.ID, &old, salary); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SalaryToResponse(salary), nil
}

func (u *staffUsecase) DeleteSalary(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	salary, err := u.findSalary(tx, id)
	if err != nil {
		return err
	}

	if err := u.salaryRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete salary: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntitySalary, id, salary); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *staffUsecase) findStaff(db *gorm.DB, id int) (*entity.Staff, error) {
	staff, err := u.staffRepo.FindByID(db, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrStaffNotFound
		}
		u.log.Warnf("Failed to find staff: %+v", err)
		return nil, err
	}
	return staff, nil
}

func (u *staffUsecase) findAttendance(db *gorm.DB, id int) (*entity.StaffAttendance, error) {
	attendance, err := u.attendanceRepo.FindByID(db, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAttendanceNotFound
		}
		u.log.Warnf("Failed to find attendance: %+v", err)
		return nil, err
	}
	return attendance, nil
}

func (u *staffUsecase) findSalary(db *gorm.DB, id int) (*entity.StaffSalary, error) {
	salary, err := u.salaryRepo.FindByID(db, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSalaryNotFound
		}
		u.log.Warnf("Failed to find salary: %+v", err)
		return nil, err
	}
	return salary, nil
}
