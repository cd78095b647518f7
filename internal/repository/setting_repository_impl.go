package repository

import (
	"dental-clinic/internal/domain/entity"
	domainRepo "dental-clinic/internal/domain/repository"

	"gorm.io/gorm"
)

type settingRepository struct {
	crudRepository[entity.Setting]
}

func NewSettingRepository() domainRepo.SettingRepository {
	return &settingRepository{}
}

func (r *settingRepository) FindByKey(db *gorm.DB, key string) (*entity.Setting, error) {
	var setting entity.Setting
	err := db.Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) FindByCategory(db *gorm.DB, category string) ([]entity.Setting, error) {
	return findScoped[entity.Setting](db, "category", category)
}

type doctorSignatureRepository struct {
	crudRepository[entity.DoctorSignature]
}

func NewDoctorSignatureRepository() domainRepo.DoctorSignatureRepository {
	return &doctorSignatureRepository{}
}

func (r *doctorSignatureRepository) FindByDoctorName(db *gorm.DB, name string) (*entity.DoctorSignature, error) {
	var signature entity.DoctorSignature
	err := db.Where("doctor_name = ?", name).First(&signature).Error
	if err != nil {
		return nil, err
	}
	return &signature, nil
}
