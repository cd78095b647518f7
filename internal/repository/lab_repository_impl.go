package repository

import (
	"dental-clinic/internal/domain/entity"
	domainRepo "dental-clinic/internal/domain/repository"

	"gorm.io/gorm"
)

type labWorkRepository struct {
	crudRepository[entity.LabWork]
}

func NewLabWorkRepository() domainRepo.LabWorkRepository {
	return &labWorkRepository{}
}

func (r *labWorkRepository) FindByPatientID(db *gorm.DB, patientID string) ([]entity.LabWork, error) {
	return findScoped[entity.LabWork](db, "patient_id", patientID)
}

func (r *labWorkRepository) CountByStatus(db *gorm.DB, statuses ...string) (int64, error) {
	var count int64
	err := db.Model(&entity.LabWork{}).Where("status IN ?", statuses).Count(&count).Error
	return count, err
}

type labWorkCostRepository struct {
	crudRepository[entity.LabWorkCost]
}

func NewLabWorkCostRepository() domainRepo.LabWorkCostRepository {
	return &labWorkCostRepository{}
}

func (r *labWorkCostRepository) FindByWorkType(db *gorm.DB, workType string) (*entity.LabWorkCost, error) {
	var cost entity.LabWorkCost
	err := db.Where("work_type = ?", workType).Order("id ASC").First(&cost).Error
	if err != nil {
		return nil, err
	}
	return &cost, nil
}

func (r *labWorkCostRepository) FindByWorkTypeAndTechnician(db *gorm.DB, workType, technician string) (*entity.LabWorkCost, error) {
	var cost entity.LabWorkCost
	err := db.Where("work_type = ? AND lab_technician = ?", workType, technician).First(&cost).Error
	if err != nil {
		return nil, err
	}
	return &cost, nil
}

type labInventoryRepository struct {
	crudRepository[entity.LabInventoryItem]
}

func NewLabInventoryRepository() domainRepo.LabInventoryRepository {
	return &labInventoryRepository{}
}
