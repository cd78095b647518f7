package handler

import (
	"net/http"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/usecase"
	"dental-clinic/pkg/response"
	"dental-clinic/pkg/validator"

	"github.com/gorilla/mux"
)

type SettingHandler struct {
	settingUsecase usecase.SettingUsecase
	validator      *validator.CustomValidator
}

func NewSettingHandler(settingUsecase usecase.SettingUsecase, validator *validator.CustomValidator) *SettingHandler {
	return &SettingHandler{
		settingUsecase: settingUsecase,
		validator:      validator,
	}
}

func (h *SettingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSettingRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	setting, err := h.settingUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create setting")
		return
	}

	response.Success(w, http.StatusCreated, "Setting created successfully", setting)
}

func (h *SettingHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings retrieved successfully", settings)
}

func (h *SettingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "setting")
	if !ok {
		return
	}

	setting, err := h.settingUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get setting")
		return
	}

	response.Success(w, http.StatusOK, "Setting retrieved successfully", setting)
}

func (h *SettingHandler) GetByKey(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settingUsecase.GetByKey(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		h.writeError(w, err, "Failed to get setting")
		return
	}

	response.Success(w, http.StatusOK, "Setting retrieved successfully", setting)
}

func (h *SettingHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingUsecase.GetByCategory(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		response.InternalServerError(w, "Failed to get settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings retrieved successfully", settings)
}

func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "setting")
	if !ok {
		return
	}

	var req dto.UpdateSettingRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	setting, err := h.settingUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update setting")
		return
	}

	response.Success(w, http.StatusOK, "Setting updated successfully", setting)
}

func (h *SettingHandler) UpdateByKey(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSettingRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	setting, err := h.settingUsecase.UpdateByKey(r.Context(), mux.Vars(r)["key"], &req)
	if err != nil {
		h.writeError(w, err, "Failed to update setting")
		return
	}

	response.Success(w, http.StatusOK, "Setting updated successfully", setting)
}

func (h *SettingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "setting")
	if !ok {
		return
	}

	if err := h.settingUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete setting")
		return
	}

	response.Success(w, http.StatusOK, "Setting deleted successfully", nil)
}

func (h *SettingHandler) writeError(w http.ResponseWriter, err error, message string) {
	switch {
	case err == usecase.ErrSettingNotFound:
		response.NotFound(w, "Setting not found")
	case err == usecase.ErrSettingExists:
		response.Conflict(w, err.Error())
	case err == usecase.ErrInvalidSettingValue, isBadInput(err):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, message)
	}
}
