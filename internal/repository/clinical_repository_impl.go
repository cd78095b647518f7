package repository

import (
	"dental-clinic/internal/domain/entity"
	domainRepo "dental-clinic/internal/domain/repository"

	"gorm.io/gorm"
)

type medicationRepository struct {
	crudRepository[entity.Medication]
}

func NewMedicationRepository() domainRepo.MedicationRepository {
	return &medicationRepository{}
}

func (r *medicationRepository) FindByName(db *gorm.DB, name string) (*entity.Medication, error) {
	var medication entity.Medication
	err := db.Where("name = ?", name).First(&medication).Error
	if err != nil {
		return nil, err
	}
	return &medication, nil
}

type prescriptionRepository struct {
	crudRepository[entity.Prescription]
}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) FindByID(db *gorm.DB, id int) (*entity.Prescription, error) {
	return r.crudRepository.FindByID(db.Preload("Medication"), id)
}

func (r *prescriptionRepository) FindByVisitID(db *gorm.DB, visitID int) ([]entity.Prescription, error) {
	var rows []entity.Prescription
	err := db.Preload("Medication").Where("visit_id = ?", visitID).Order("sl_no ASC, id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type toothFindingRepository struct {
	crudRepository[entity.ToothFinding]
}

func NewToothFindingRepository() domainRepo.ToothFindingRepository {
	return &toothFindingRepository{}
}

func (r *toothFindingRepository) FindByVisitID(db *gorm.DB, visitID int) ([]entity.ToothFinding, error) {
	return findScoped[entity.ToothFinding](db, "visit_id", visitID)
}

type generalizedFindingRepository struct {
	crudRepository[entity.GeneralizedFinding]
}

func NewGeneralizedFindingRepository() domainRepo.GeneralizedFindingRepository {
	return &generalizedFindingRepository{}
}

func (r *generalizedFindingRepository) FindByVisitID(db *gorm.DB, visitID int) ([]entity.GeneralizedFinding, error) {
	return findScoped[entity.GeneralizedFinding](db, "visit_id", visitID)
}

type investigationRepository struct {
	crudRepository[entity.Investigation]
}

func NewInvestigationRepository() domainRepo.InvestigationRepository {
	return &investigationRepository{}
}

func (r *investigationRepository) FindByVisitID(db *gorm.DB, visitID int) ([]entity.Investigation, error) {
	return findScoped[entity.Investigation](db, "visit_id", visitID)
}

type followUpRepository struct {
	crudRepository[entity.FollowUp]
}

func NewFollowUpRepository() domainRepo.FollowUpRepository {
	return &followUpRepository{}
}

func (r *followUpRepository) FindByVisitID(db *gorm.DB, visitID int) ([]entity.FollowUp, error) {
	var rows []entity.FollowUp
	err := db.Where("visit_id = ?", visitID).Order("date ASC, id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
