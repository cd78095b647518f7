package repository

import "gorm.io/gorm"

// CrudRepository is the shape shared by every entity repository. The db
// argument is either the root handle or an open transaction.
type CrudRepository[T any] interface {
	Create(db *gorm.DB, entity *T) error
	FindAll(db *gorm.DB) ([]T, error)
	FindByID(db *gorm.DB, id int) (*T, error)
	Update(db *gorm.DB, entity *T) error
	Delete(db *gorm.DB, id int) error
	Count(db *gorm.DB) (int64, error)
}
