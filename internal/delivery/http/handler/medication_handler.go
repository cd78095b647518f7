package handler

import (
	"net/http"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/usecase"
	"dental-clinic/pkg/response"
	"dental-clinic/pkg/validator"
)

type MedicationHandler struct {
	medicationUsecase   usecase.MedicationUsecase
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewMedicationHandler(
	medicationUsecase usecase.MedicationUsecase,
	prescriptionUsecase usecase.PrescriptionUsecase,
	validator *validator.CustomValidator,
) *MedicationHandler {
	return &MedicationHandler{
		medicationUsecase:   medicationUsecase,
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

func (h *MedicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	medication, err := h.medicationUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create medication")
		return
	}

	response.Success(w, http.StatusCreated, "Medication created successfully", medication)
}

func (h *MedicationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	medications, err := h.medicationUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get medications")
		return
	}

	response.Success(w, http.StatusOK, "Medications retrieved successfully", medications)
}

func (h *MedicationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "medication")
	if !ok {
		return
	}

	medication, err := h.medicationUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get medication")
		return
	}

	response.Success(w, http.StatusOK, "Medication retrieved successfully", medication)
}

func (h *MedicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "medication")
	if !ok {
		return
	}

	var req dto.UpdateMedicationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	medication, err := h.medicationUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update medication")
		return
	}

	response.Success(w, http.StatusOK, "Medication updated successfully", medication)
}

func (h *MedicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "medication")
	if !ok {
		return
	}

	if err := h.medicationUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete medication")
		return
	}

	response.Success(w, http.StatusOK, "Medication deleted successfully", nil)
}

func (h *MedicationHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePrescriptionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	prescription, err := h.prescriptionUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create prescription")
		return
	}

	response.Success(w, http.StatusCreated, "Prescription created successfully", prescription)
}

func (h *MedicationHandler) GetPrescription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "prescription")
	if !ok {
		return
	}

	prescription, err := h.prescriptionUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get prescription")
		return
	}

	response.Success(w, http.StatusOK, "Prescription retrieved successfully", prescription)
}

func (h *MedicationHandler) UpdatePrescription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "prescription")
	if !ok {
		return
	}

	var req dto.UpdatePrescriptionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	prescription, err := h.prescriptionUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update prescription")
		return
	}

	response.Success(w, http.StatusOK, "Prescription updated successfully", prescription)
}

func (h *MedicationHandler) DeletePrescription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "prescription")
	if !ok {
		return
	}

	if err := h.prescriptionUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete prescription")
		return
	}

	response.Success(w, http.StatusOK, "Prescription deleted successfully", nil)
}

func (h *MedicationHandler) writeError(w http.ResponseWriter, err error, message string) {
	switch {
	case err == usecase.ErrMedicationNotFound:
		response.NotFound(w, "Medication not found")
	case err == usecase.ErrPrescriptionNotFound:
		response.NotFound(w, "Prescription not found")
	case err == usecase.ErrVisitNotFound:
		response.NotFound(w, "Visit not found")
	case err == usecase.ErrMedicationExists:
		response.Conflict(w, err.Error())
	case isBadInput(err):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, message)
	}
}
