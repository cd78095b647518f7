package repository

import (
	"dental-clinic/internal/domain/entity"

	"gorm.io/gorm"
)

type SettingRepository interface {
	CrudRepository[entity.Setting]
	FindByKey(db *gorm.DB, key string) (*entity.Setting, error)
	FindByCategory(db *gorm.DB, category string) ([]entity.Setting, error)
}

type DoctorSignatureRepository interface {
	CrudRepository[entity.DoctorSignature]
	FindByDoctorName(db *gorm.DB, name string) (*entity.DoctorSignature, error)
}
