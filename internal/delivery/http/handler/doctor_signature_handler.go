package handler

import (
	"net/http"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/usecase"
	"dental-clinic/pkg/response"
	"dental-clinic/pkg/validator"
)

type DoctorSignatureHandler struct {
	signatureUsecase usecase.DoctorSignatureUsecase
	validator        *validator.CustomValidator
}

func NewDoctorSignatureHandler(signatureUsecase usecase.DoctorSignatureUsecase, validator *validator.CustomValidator) *DoctorSignatureHandler {
	return &DoctorSignatureHandler{
		signatureUsecase: signatureUsecase,
		validator:        validator,
	}
}

// Save creates a signature, or replaces the image when the doctor already
// has one.
func (h *DoctorSignatureHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorSignatureRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	signature, err := h.signatureUsecase.Save(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to save doctor signature")
		return
	}

	response.Success(w, http.StatusOK, "Doctor signature saved successfully", signature)
}

// GetAll lists every signature, or the one matching ?doctor_name=.
func (h *DoctorSignatureHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("doctor_name"); name != "" {
		signature, err := h.signatureUsecase.GetByDoctorName(r.Context(), name)
		if err != nil {
			h.writeError(w, err, "Failed to get doctor signature")
			return
		}
		response.Success(w, http.StatusOK, "Doctor signature retrieved successfully", signature)
		return
	}

	signatures, err := h.signatureUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctor signatures")
		return
	}

	response.Success(w, http.StatusOK, "Doctor signatures retrieved successfully", signatures)
}

func (h *DoctorSignatureHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "signature")
	if !ok {
		return
	}

	signature, err := h.signatureUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get doctor signature")
		return
	}

	response.Success(w, http.StatusOK, "Doctor signature retrieved successfully", signature)
}

func (h *DoctorSignatureHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "signature")
	if !ok {
		return
	}

	var req dto.UpdateDoctorSignatureRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	signature, err := h.signatureUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update doctor signature")
		return
	}

	response.Success(w, http.StatusOK, "Doctor signature updated successfully", signature)
}

func (h *DoctorSignatureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "signature")
	if !ok {
		return
	}

	if err := h.signatureUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete doctor signature")
		return
	}

	response.Success(w, http.StatusOK, "Doctor signature deleted successfully", nil)
}

func (h *DoctorSignatureHandler) writeError(w http.ResponseWriter, err error, message string) {
	switch {
	case err == usecase.ErrSignatureNotFound:
		response.NotFound(w, "Doctor signature not found")
	case err == usecase.ErrSignatureExists:
		response.Conflict(w, err.Error())
	case isBadInput(err):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, message)
	}
}
