package handler

import (
	"net/http"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/usecase"
	"dental-clinic/pkg/response"
	"dental-clinic/pkg/validator"
)

// ExaminationHandler serves the per-visit examination rows: tooth
// findings, generalized findings, investigations and follow-ups.
type ExaminationHandler struct {
	examinationUsecase usecase.ExaminationUsecase
	followUpUsecase    usecase.FollowUpUsecase
	validator          *validator.CustomValidator
}

func NewExaminationHandler(
	examinationUsecase usecase.ExaminationUsecase,
	followUpUsecase usecase.FollowUpUsecase,
	validator *validator.CustomValidator,
) *ExaminationHandler {
	return &ExaminationHandler{
		examinationUsecase: examinationUsecase,
		followUpUsecase:    followUpUsecase,
		validator:          validator,
	}
}

func (h *ExaminationHandler) CreateToothFinding(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateToothFindingRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	finding, err := h.examinationUsecase.CreateToothFinding(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create tooth finding")
		return
	}

	response.Success(w, http.StatusCreated, "Tooth finding created successfully", finding)
}

func (h *ExaminationHandler) UpdateToothFinding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "tooth finding")
	if !ok {
		return
	}

	var req dto.UpdateToothFindingRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	finding, err := h.examinationUsecase.UpdateToothFinding(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update tooth finding")
		return
	}

	response.Success(w, http.StatusOK, "Tooth finding updated successfully", finding)
}

func (h *ExaminationHandler) DeleteToothFinding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "tooth finding")
	if !ok {
		return
	}

	if err := h.examinationUsecase.DeleteToothFinding(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete tooth finding")
		return
	}

	response.Success(w, http.StatusOK, "Tooth finding deleted successfully", nil)
}

func (h *ExaminationHandler) CreateGeneralizedFinding(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGeneralizedFindingRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	finding, err := h.examinationUsecase.CreateGeneralizedFinding(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create generalized finding")
		return
	}

	response.Success(w, http.StatusCreated, "Generalized finding created successfully", finding)
}

func (h *ExaminationHandler) UpdateGeneralizedFinding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "generalized finding")
	if !ok {
		return
	}

	var req dto.UpdateGeneralizedFindingRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	finding, err := h.examinationUsecase.UpdateGeneralizedFinding(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update generalized finding")
		return
	}

	response.Success(w, http.StatusOK, "Generalized finding updated successfully", finding)
}

func (h *ExaminationHandler) DeleteGeneralizedFinding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "generalized finding")
	if !ok {
		return
	}

	if err := h.examinationUsecase.DeleteGeneralizedFinding(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete generalized finding")
		return
	}

	response.Success(w, http.StatusOK, "Generalized finding deleted successfully", nil)
}

func (h *ExaminationHandler) CreateInvestigation(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvestigationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	investigation, err := h.examinationUsecase.CreateInvestigation(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create investigation")
		return
	}

	response.Success(w, http.StatusCreated, "Investigation created successfully", investigation)
}

func (h *ExaminationHandler) UpdateInvestigation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "investigation")
	if !ok {
		return
	}

	var req dto.UpdateInvestigationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	investigation, err := h.examinationUsecase.UpdateInvestigation(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update investigation")
		return
	}

	response.Success(w, http.StatusOK, "Investigation updated successfully", investigation)
}

func (h *ExaminationHandler) DeleteInvestigation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "investigation")
	if !ok {
		return
	}

	if err := h.examinationUsecase.DeleteInvestigation(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete investigation")
		return
	}

	response.Success(w, http.StatusOK, "Investigation deleted successfully", nil)
}

func (h *ExaminationHandler) CreateFollowUp(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFollowUpRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	followUp, err := h.followUpUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create follow-up")
		return
	}

	response.Success(w, http.StatusCreated, "Follow-up created successfully", followUp)
}

func (h *ExaminationHandler) GetFollowUp(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "follow-up")
	if !ok {
		return
	}

	followUp, err := h.followUpUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get follow-up")
		return
	}

	response.Success(w, http.StatusOK, "Follow-up retrieved successfully", followUp)
}

func (h *ExaminationHandler) UpdateFollowUp(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "follow-up")
	if !ok {
		return
	}

	var req dto.UpdateFollowUpRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	followUp, err := h.followUpUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update follow-up")
		return
	}

	response.Success(w, http.StatusOK, "Follow-up updated successfully", followUp)
}

func (h *ExaminationHandler) DeleteFollowUp(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "follow-up")
	if !ok {
		return
	}

	if err := h.followUpUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete follow-up")
		return
	}

	response.Success(w, http.StatusOK, "Follow-up deleted successfully", nil)
}

func (h *ExaminationHandler) writeError(w http.ResponseWriter, err error, message string) {
	switch {
	case err == usecase.ErrVisitNotFound:
		response.NotFound(w, "Visit not found")
	case err == usecase.ErrToothFindingNotFound:
		response.NotFound(w, "Tooth finding not found")
	case err == usecase.ErrGeneralizedFindingNotFound:
		response.NotFound(w, "Generalized finding not found")
	case err == usecase.ErrInvestigationNotFound:
		response.NotFound(w, "Investigation not found")
	case err == usecase.ErrFollowUpNotFound:
		response.NotFound(w, "Follow-up not found")
	case err == usecase.ErrInvalidToothNumber, err == usecase.ErrFollowUpPatientMismatch, isBadInput(err):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, message)
	}
}
