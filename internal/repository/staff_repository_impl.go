package repository

import (
	"dental-clinic/internal/domain/entity"
	domainRepo "dental-clinic/internal/domain/repository"

	"gorm.io/gorm"
)

type staffRepository struct {
	crudRepository[entity.Staff]
}

func NewStaffRepository() domainRepo.StaffRepository {
	return &staffRepository{}
}

type staffAttendanceRepository struct {
	crudRepository[entity.StaffAttendance]
}

func NewStaffAttendanceRepository() domainRepo.StaffAttendanceRepository {
	return &staffAttendanceRepository{}
}

func (r *staffAttendanceRepository) FindByStaffID(db *gorm.DB, staffID int) ([]entity.StaffAttendance, error) {
	var rows []entity.StaffAttendance
	err := db.Where("staff_id = ?", staffID).Order("date DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type staffSalaryRepository struct {
	crudRepository[entity.StaffSalary]
}

func NewStaffSalaryRepository() domainRepo.StaffSalaryRepository {
	return &staffSalaryRepository{}
}

func (r *staffSalaryRepository) FindByStaffID(db *gorm.DB, staffID int) ([]entity.StaffSalary, error) {
	var rows []entity.StaffSalary
	err := db.Where("staff_id = ?", staffID).Order("year DESC, id DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
