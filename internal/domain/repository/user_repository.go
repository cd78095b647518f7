package repository

import (
	"dental-clinic/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByUsername(db *gorm.DB, username string) (*entity.User, error)
	FindByID(db *gorm.DB, id int) (*entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	Count(db *gorm.DB) (int64, error)
}
