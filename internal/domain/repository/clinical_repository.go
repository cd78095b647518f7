package repository

import (
	"dental-clinic/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicationRepository interface {
	CrudRepository[entity.Medication]
	FindByName(db *gorm.DB, name string) (*entity.Medication, error)
}

type PrescriptionRepository interface {
	CrudRepository[entity.Prescription]
	FindByVisitID(db *gorm.DB, visitID int) ([]entity.Prescription, error)
}

type ToothFindingRepository interface {
	CrudRepository[entity.ToothFinding]
	FindByVisitID(db *gorm.DB, visitID int) ([]entity.ToothFinding, error)
}

type GeneralizedFindingRepository interface {
	CrudRepository[entity.GeneralizedFinding]
	FindByVisitID(db *gorm.DB, visitID int) ([]entity.GeneralizedFinding, error)
}

type InvestigationRepository interface {
	CrudRepository[entity.Investigation]
	FindByVisitID(db *gorm.DB, visitID int) ([]entity.Investigation, error)
}

type FollowUpRepository interface {
	CrudRepository[entity.FollowUp]
	FindByVisitID(db *gorm.DB, visitID int) ([]entity.FollowUp, error)
}
