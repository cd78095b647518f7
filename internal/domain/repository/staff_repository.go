package repository

import (
	"dental-clinic/internal/domain/entity"

	"gorm.io/gorm"
)

type StaffRepository interface {
	CrudRepository[entity.Staff]
}

type StaffAttendanceRepository interface {
	CrudRepository[entity.StaffAttendance]
	FindByStaffID(db *gorm.DB, staffID int) ([]entity.StaffAttendance, error)
}

type StaffSalaryRepository interface {
	CrudRepository[entity.StaffSalary]
	FindByStaffID(db *gorm.DB, staffID int) ([]entity.StaffSalary, error)
}
