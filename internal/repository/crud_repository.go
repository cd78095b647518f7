package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// crudRepository implements the generic list/get/create/update/delete set.
// Entity repositories embed it and add their scoped finders.
type crudRepository[T any] struct{}

func (r crudRepository[T]) Create(db *gorm.DB, entity *T) error {
	return db.Create(entity).Error
}

func (r crudRepository[T]) FindAll(db *gorm.DB) ([]T, error) {
	var rows []T
	err := db.Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID returns gorm.ErrRecordNotFound when no row matches.
func (r crudRepository[T]) FindByID(db *gorm.DB, id int) (*T, error) {
	var row T
	err := db.Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
// SQLite has no row locks; the clause is dropped there.
func (r crudRepository[T]) FindByIDForUpdate(db *gorm.DB, id int) (*T, error) {
	return r.FindByID(db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// Update saves every column of entity. Preloaded associations are left alone.
func (r crudRepository[T]) Update(db *gorm.DB, entity *T) error {
	return db.Omit(clause.Associations).Save(entity).Error
}

// Delete returns gorm.ErrRecordNotFound when nothing was removed.
func (r crudRepository[T]) Delete(db *gorm.DB, id int) error {
	result := db.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r crudRepository[T]) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(new(T)).Count(&count).Error
	return count, err
}

func findScoped[T any](db *gorm.DB, column string, value interface{}) ([]T, error) {
	var rows []T
	err := db.Where(column+" = ?", value).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
