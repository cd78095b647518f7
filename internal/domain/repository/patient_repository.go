package repository

import (
	"time"

	"dental-clinic/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	CrudRepository[entity.Patient]
	FindByCode(db *gorm.DB, code string) (*entity.Patient, error)
	// FindCodesWithPrefix returns every patient code starting with prefix.
	FindCodesWithPrefix(db *gorm.DB, prefix string) ([]string, error)
}

type PatientVisitRepository interface {
	CrudRepository[entity.PatientVisit]
	FindByIDForUpdate(db *gorm.DB, id int) (*entity.PatientVisit, error)
	FindByPatientID(db *gorm.DB, patientID string) ([]entity.PatientVisit, error)
	FindByPreviousVisitID(db *gorm.DB, visitID int) ([]entity.PatientVisit, error)
}

type AppointmentRepository interface {
	CrudRepository[entity.Appointment]
	FindByIDForUpdate(db *gorm.DB, id int) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID string) ([]entity.Appointment, error)
	UnlinkInvoice(db *gorm.DB, invoiceID int) error
	CountOnDate(db *gorm.DB, date time.Time) (int64, error)
}
