package repository

import (
	"dental-clinic/internal/domain/entity"

	"gorm.io/gorm"
)

type LabWorkRepository interface {
	CrudRepository[entity.LabWork]
	FindByPatientID(db *gorm.DB, patientID string) ([]entity.LabWork, error)
	CountByStatus(db *gorm.DB, statuses ...string) (int64, error)
}

type LabWorkCostRepository interface {
	CrudRepository[entity.LabWorkCost]
	FindByWorkType(db *gorm.DB, workType string) (*entity.LabWorkCost, error)
	FindByWorkTypeAndTechnician(db *gorm.DB, workType, technician string) (*entity.LabWorkCost, error)
}

type LabInventoryRepository interface {
	CrudRepository[entity.LabInventoryItem]
}
