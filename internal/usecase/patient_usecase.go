package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
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
	ErrPatientNotFound     = errors.New("patient not found")
	ErrPatientCodeExists   = errors.New("patient id already exists")
	ErrPatientCodeConflict = errors.New("could not allocate a unique patient id, please retry")
)

const (
	auditEntityPatient = "patient"

	// generated codes can collide under concurrent creates
	maxPatientCodeAttempts = 3
)

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetAll(ctx context.Context) ([]dto.PatientResponse, error)
	GetByIdentifier(ctx context.Context, identifier string) (*dto.PatientResponse, error)
	GetByCode(ctx context.Context, code string) (*dto.PatientResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	UpdateByCode(ctx context.Context, code string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id int) error
	NextCode(ctx context.Context) (string, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	settingRepo  repository.SettingRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	settingRepo repository.SettingRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		settingRepo:  settingRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	generate := req.PatientID == ""

	for attempt := 1; ; attempt++ {
		patient, err := u.create(ctx, req, generate)
		if err == nil {
			return converter.PatientToResponse(patient), nil
		}
		if !errors.Is(err, ErrPatientCodeExists) || !generate {
			return nil, err
		}
		if attempt == maxPatientCodeAttempts {
			return nil, ErrPatientCodeConflict
		}
		u.log.Infof("Generated patient id collided, retrying (attempt %d)", attempt)
	}
}

func (u *patientUsecase) create(ctx context.Context, req *dto.CreatePatientRequest, generate bool) (*entity.Patient, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	code := req.PatientID
	if generate {
		next, err := u.nextCode(tx)
		if err != nil {
			return nil, err
		}
		code = next
	}

	patient := &entity.Patient{
		PatientID:   code,
		Name:        req.Name,
		Age:         req.Age,
		Sex:         req.Sex,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}

	if err := u.patientRepo.Create(tx, patient); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrPatientCodeExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntityPatient, patient.ID, patient); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return patient, nil
}

func (u *patientUsecase) GetAll(ctx context.Context) ([]dto.PatientResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

// GetByIdentifier resolves a patient code first and falls back to the
// numeric row id.
func (u *patientUsecase) GetByIdentifier(ctx context.Context, identifier string) (*dto.PatientResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByCode(db, identifier)
	if err == nil {
		return converter.PatientToResponse(patient), nil
	}
	if !isNotFound(err) {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}

	id, convErr := strconv.Atoi(identifier)
	if convErr != nil {
		return nil, ErrPatientNotFound
	}

	patient, err = u.findByID(db, id)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetByCode(ctx context.Context, code string) (*dto.PatientResponse, error) {
	patient, err := u.findByCode(u.db.WithContext(ctx), code)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Update(ctx context.Context, id int, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	return u.update(ctx, req, func(tx *gorm.DB) (*entity.Patient, error) {
		return u.findByID(tx, id)
	})
}

func (u *patientUsecase) UpdateByCode(ctx context.Context, code string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	return u.update(ctx, req, func(tx *gorm.DB) (*entity.Patient, error) {
		return u.findByCode(tx, code)
	})
}

func (u *patientUsecase) update(ctx context.Context, req *dto.UpdatePatientRequest, find func(tx *gorm.DB) (*entity.Patient, error)) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := find(tx)
	if err != nil {
		return nil, err
	}
	old := *patient

	var f fieldSetter
	f.setString(&patient.Name, req.Name)
	f.setInt(&patient.Age, req.Age)
	f.setString(&patient.Sex, req.Sex)
	f.setString(&patient.Address, req.Address)
	f.setString(&patient.PhoneNumber, req.PhoneNumber)
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditEntityPatient, patient.ID, old, patient); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.findByID(tx, id)
	if err != nil {
		return err
	}

	if err := u.patientRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntityPatient, id, patient); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *patientUsecase) NextCode(ctx context.Context) (string, error) {
	return u.nextCode(u.db.WithContext(ctx))
}

// nextCode builds prefix + year? + separator + zero padded (max + 1)
// from the patient_id_format setting.
func (u *patientUsecase) nextCode(db *gorm.DB) (string, error) {
	format := u.patientIDFormat(db)

	prefix := format.Prefix
	if format.YearInFormat {
		prefix += strconv.Itoa(today().Year())
	}
	prefix += format.Separator

	codes, err := u.patientRepo.FindCodesWithPrefix(db, prefix)
	if err != nil {
		u.log.Warnf("Failed to find patient ids: %+v", err)
		return "", err
	}

	return formatPatientCode(prefix, format.DigitCount, nextPatientNumber(prefix, codes)), nil
}

func (u *patientUsecase) patientIDFormat(db *gorm.DB) entity.PatientIDFormat {
	format := entity.DefaultPatientIDFormat

	setting, err := u.settingRepo.FindByKey(db, entity.SettingKeyPatientIDFormat)
	if err != nil {
		if !isNotFound(err) {
			u.log.Warnf("Failed to load patient id format, using default: %+v", err)
		}
		return format
	}

	if err := json.Unmarshal(setting.SettingValue, &format); err != nil {
		u.log.Warnf("Invalid patient id format setting, using default: %+v", err)
		return entity.DefaultPatientIDFormat
	}
	if format.DigitCount <= 0 {
		format.DigitCount = entity.DefaultPatientIDFormat.DigitCount
	}
	return format
}

func nextPatientNumber(prefix string, codes []string) int {
	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `(\d+)$`)

	highest := 0
	for _, code := range codes {
		m := pattern.FindStringSubmatch(code)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}

func formatPatientCode(prefix string, digits, number int) string {
	return fmt.Sprintf("%s%0*d", prefix, digits, number)
}

func (u *patientUsecase) findByID(db *gorm.DB, id int) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(db, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	return patient, nil
}

func (u *patientUsecase) findByCode(db *gorm.DB, code string) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByCode(db, code)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	return patient, nil
}
