package repository

import (
	"time"

	"dental-clinic/internal/domain/entity"
	domainRepo "dental-clinic/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct {
	crudRepository[entity.Patient]
}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) FindByCode(db *gorm.DB, code string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("patient_id = ?", code).First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindCodesWithPrefix(db *gorm.DB, prefix string) ([]string, error) {
	var codes []string
	err := db.Model(&entity.Patient{}).
		Where("patient_id LIKE ?", prefix+"%").
		Pluck("patient_id", &codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

type patientVisitRepository struct {
	crudRepository[entity.PatientVisit]
}

func NewPatientVisitRepository() domainRepo.PatientVisitRepository {
	return &patientVisitRepository{}
}

func (r *patientVisitRepository) FindByPatientID(db *gorm.DB, patientID string) ([]entity.PatientVisit, error) {
	var visits []entity.PatientVisit
	err := db.Where("patient_id = ?", patientID).Order("date DESC, id DESC").Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *patientVisitRepository) FindByPreviousVisitID(db *gorm.DB, visitID int) ([]entity.PatientVisit, error) {
	return findScoped[entity.PatientVisit](db, "previous_visit_id", visitID)
}

type appointmentRepository struct {
	crudRepository[entity.Appointment]
}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("patient_id = ?", patientID).Order("date DESC, id DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) UnlinkInvoice(db *gorm.DB, invoiceID int) error {
	return db.Model(&entity.Appointment{}).
		Where("invoice_id = ?", invoiceID).
		Update("invoice_id", nil).Error
}

func (r *appointmentRepository) CountOnDate(db *gorm.DB, date time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Where("date = ?", date).Count(&count).Error
	return count, err
}
