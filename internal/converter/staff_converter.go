package converter

import (
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
)

func StaffToResponse(staff *entity.Staff) *dto.StaffResponse {
	return &dto.StaffResponse{
		ID:          staff.ID,
		Name:        staff.Name,
		Role:        staff.Role,
		ContactInfo: staff.ContactInfo,
		Address:     staff.Address,
		JoinDate:    formatDate(staff.JoinDate),
		Salary:      staff.Salary,
		IsActive:    staff.IsActive,
	}
}

func StaffListToResponses(staff []entity.Staff) []dto.StaffResponse {
	return toResponses(staff, StaffToResponse)
}

func AttendanceToResponse(attendance *entity.StaffAttendance) *dto.AttendanceResponse {
	return &dto.AttendanceResponse{
		ID:      attendance.ID,
		StaffID: attendance.StaffID,
		Date:    formatDate(attendance.Date),
		Present: attendance.Present,
		Remarks: attendance.Remarks,
	}
}

func AttendancesToResponses(rows []entity.StaffAttendance) []dto.AttendanceResponse {
	return toResponses(rows, AttendanceToResponse)
}

func SalaryToResponse(salary *entity.StaffSalary) *dto.SalaryResponse {
	return &dto.SalaryResponse{
		ID:            salary.ID,
		StaffID:       salary.StaffID,
		Month:         salary.Month,
		Year:          salary.Year,
		BaseSalary:    salary.BaseSalary,
		Bonus:         salary.Bonus,
		Deduction:     salary.Deduction,
		NetAmount:     salary.NetAmount,
		PaymentDate:   formatDatePtr(salary.PaymentDate),
		PaymentStatus: salary.PaymentStatus,
		Notes:         salary.Notes,
	}
}

func SalariesToResponses(rows []entity.StaffSalary) []dto.SalaryResponse {
	return toResponses(rows, SalaryToResponse)
}
