package handler

import (
	"net/http"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/usecase"
	"dental-clinic/pkg/response"
	"dental-clinic/pkg/validator"
)

type StaffHandler struct {
	staffUsecase usecase.StaffUsecase
	validator    *validator.CustomValidator
}

func NewStaffHandler(staffUsecase usecase.StaffUsecase, validator *validator.CustomValidator) *StaffHandler {
	return &StaffHandler{
		staffUsecase: staffUsecase,
		validator:    validator,
	}
}

func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateStaffRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	staff, err := h.staffUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create staff member")
		return
	}

	response.Success(w, http.StatusCreated, "Staff member created successfully", staff)
}

func (h *StaffHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	staff, err := h.staffUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get staff")
		return
	}

	response.Success(w, http.StatusOK, "Staff retrieved successfully", staff)
}

func (h *StaffHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "staff")
	if !ok {
		return
	}

	staff, err := h.staffUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get staff member")
		return
	}

	response.Success(w, http.StatusOK, "Staff member retrieved successfully", staff)
}

func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "staff")
	if !ok {
		return
	}

	var req dto.UpdateStaffRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	staff, err := h.staffUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update staff member")
		return
	}

	response.Success(w, http.StatusOK, "Staff member updated successfully", staff)
}

func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "staff")
	if !ok {
		return
	}

	if err := h.staffUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete staff member")
		return
	}

	response.Success(w, http.StatusOK, "Staff member deleted successfully", nil)
}

func (h *StaffHandler) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAttendanceRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	attendance, err := h.staffUsecase.CreateAttendance(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to record attendance")
		return
	}

	response.Success(w, http.StatusCreated, "Attendance recorded successfully", attendance)
}

// GetAllAttendance lists attendance for every staff member.
func (h *StaffHandler) GetAllAttendance(w http.ResponseWriter, r *http.Request) {
	attendance, err := h.staffUsecase.GetAttendance(r.Context(), 0)
	if err != nil {
		response.InternalServerError(w, "Failed to get attendance")
		return
	}

	response.Success(w, http.StatusOK, "Attendance retrieved successfully", attendance)
}

func (h *StaffHandler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	staffID, ok := pathID(w, r, "staffId", "staff")
	if !ok {
		return
	}

	attendance, err := h.staffUsecase.GetAttendance(r.Context(), staffID)
	if err != nil {
		h.writeError(w, err, "Failed to get attendance")
		return
	}

	response.Success(w, http.StatusOK, "Attendance retrieved successfully", attendance)
}

func (h *StaffHandler) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "attendance")
	if !ok {
		return
	}

	var req dto.UpdateAttendanceRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	attendance, err := h.staffUsecase.UpdateAttendance(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update attendance")
		return
	}

	response.Success(w, http.StatusOK, "Attendance updated successfully", attendance)
}

func (h *StaffHandler) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "attendance")
	if !ok {
		return
	}

	if err := h.staffUsecase.DeleteAttendance(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete attendance")
		return
	}

	response.Success(w, http.StatusOK, "Attendance deleted successfully", nil)
}

// CreateSalary stores a salary record; net_amount is always computed here
// from base, bonus and deduction.
func (h *StaffHandler) CreateSalary(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSalaryRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	salary, err := h.staffUsecase.CreateSalary(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create salary record")
		return
	}

	response.Success(w, http.StatusCreated, "Salary record created successfully", salary)
}

func (h *StaffHandler) GetAllSalaries(w http.ResponseWriter, r *http.Request) {
	salaries, err := h.staffUsecase.GetSalaries(r.Context(), 0)
	if err != nil {
		response.InternalServerError(w, "Failed to get salary records")
		return
	}

	response.Success(w, http.StatusOK, "Salary records retrieved successfully", salaries)
}

func (h *StaffHandler) GetSalaries(w http.ResponseWriter, r *http.Request) {
	staffID, ok := pathID(w, r, "staffId", "staff")
	if !ok {
		return
	}

	salaries, err := h.staffUsecase.GetSalaries(r.Context(), staffID)
	if err != nil {
		h.writeError(w, err, "Failed to get salary records")
		return
	}

	response.Success(w, http.StatusOK, "Salary records retrieved successfully", salaries)
}

func (h *StaffHandler) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "salary")
	if !ok {
		return
	}

	var req dto.UpdateSalaryRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	salary, err := h.staffUsecase.UpdateSalary(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update salary record")
		return
	}

	response.Success(w, http.StatusOK, "Salary record updated successfully", salary)
}

func (h *StaffHandler) DeleteSalary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "salary")
	if !ok {
		return
	}

	if err := h.staffUsecase.DeleteSalary(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete salary record")
		return
	}

	response.Success(w, http.StatusOK, "Salary record deleted successfully", nil)
}

func (h *StaffHandler) writeError(w http.ResponseWriter, err error, message string) {
	switch {
	case err == usecase.ErrStaffNotFound:
		response.NotFound(w, "Staff member not found")
	case err == usecase.ErrAttendanceNotFound:
		response.NotFound(w, "Attendance record not found")
	case err == usecase.ErrSalaryNotFound:
		response.NotFound(w, "Salary record not found")
	case err == usecase.ErrAttendanceExists:
		response.Conflict(w, err.Error())
	case isBadInput(err):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, message)
	}
}
