package handler

import (
	"net/http"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/usecase"
	"dental-clinic/pkg/response"
	"dental-clinic/pkg/validator"
)

type LabWorkHandler struct {
	labWorkUsecase usecase.LabWorkUsecase
	validator      *validator.CustomValidator
}

func NewLabWorkHandler(labWorkUsecase usecase.LabWorkUsecase, validator *validator.CustomValidator) *LabWorkHandler {
	return &LabWorkHandler{
		labWorkUsecase: labWorkUsecase,
		validator:      validator,
	}
}

func (h *LabWorkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLabWorkRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	labWork, err := h.labWorkUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create lab work")
		return
	}

	response.Success(w, http.StatusCreated, "Lab work created successfully", labWork)
}

func (h *LabWorkHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	labWorks, err := h.labWorkUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get lab works")
		return
	}

	response.Success(w, http.StatusOK, "Lab works retrieved successfully", labWorks)
}

func (h *LabWorkHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "lab work")
	if !ok {
		return
	}

	labWork, err := h.labWorkUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get lab work")
		return
	}

	response.Success(w, http.StatusOK, "Lab work retrieved successfully", labWork)
}

func (h *LabWorkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "lab work")
	if !ok {
		return
	}

	var req dto.UpdateLabWorkRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	labWork, err := h.labWorkUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update lab work")
		return
	}

	response.Success(w, http.StatusOK, "Lab work updated successfully", labWork)
}

func (h *LabWorkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "lab work")
	if !ok {
		return
	}

	if err := h.labWorkUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete lab work")
		return
	}

	response.Success(w, http.StatusOK, "Lab work deleted successfully", nil)
}

func (h *LabWorkHandler) writeError(w http.ResponseWriter, err error, message string) {
	switch {
	case err == usecase.ErrLabWorkNotFound:
		response.NotFound(w, "Lab work not found")
	case err == usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case isBadInput(err):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, message)
	}
}

type LabWorkCostHandler struct {
	costUsecase usecase.LabWorkCostUsecase
	validator   *validator.CustomValidator
}

func NewLabWorkCostHandler(costUsecase usecase.LabWorkCostUsecase, validator *validator.CustomValidator) *LabWorkCostHandler {
	return &LabWorkCostHandler{
		costUsecase: costUsecase,
		validator:   validator,
	}
}

func (h *LabWorkCostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLabWorkCostRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	cost, err := h.costUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create lab work cost")
		return
	}

	response.Success(w, http.StatusCreated, "Lab work cost created successfully", cost)
}

func (h *LabWorkCostHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	costs, err := h.costUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get lab work costs")
		return
	}

	response.Success(w, http.StatusOK, "Lab work costs retrieved successfully", costs)
}

func (h *LabWorkCostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "lab work cost")
	if !ok {
		return
	}

	cost, err := h.costUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get lab work cost")
		return
	}

	response.Success(w, http.StatusOK, "Lab work cost retrieved successfully", cost)
}

// Lookup handles GET /lab-work-costs/lookup?work_type=&technician=.
func (h *LabWorkCostHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	workType := r.URL.Query().Get("work_type")
	if workType == "" {
		response.BadRequest(w, "work_type is required")
		return
	}

	cost, err := h.costUsecase.Lookup(r.Context(), workType, r.URL.Query().Get("technician"))
	if err != nil {
		h.writeError(w, err, "Failed to look up lab work cost")
		return
	}

	response.Success(w, http.StatusOK, "Lab work cost retrieved successfully", cost)
}

func (h *LabWorkCostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "lab work cost")
	if !ok {
		return
	}

	var req dto.UpdateLabWorkCostRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	cost, err := h.costUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update lab work cost")
		return
	}

	response.Success(w, http.StatusOK, "Lab work cost updated successfully", cost)
}

func (h *LabWorkCostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "lab work cost")
	if !ok {
		return
	}

	if err := h.costUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete lab work cost")
		return
	}

	response.Success(w, http.StatusOK, "Lab work cost deleted successfully", nil)
}

func (h *LabWorkCostHandler) writeError(w http.ResponseWriter, err error, message string) {
	switch {
	case err == usecase.ErrLabWorkCostNotFound:
		response.NotFound(w, "Lab work cost not found")
	case err == usecase.ErrLabWorkCostExists:
		response.Conflict(w, err.Error())
	case isBadInput(err):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, message)
	}
}

type LabInventoryHandler struct {
	inventoryUsecase usecase.LabInventoryUsecase
	validator        *validator.CustomValidator
}

func NewLabInventoryHandler(inventoryUsecase usecase.LabInventoryUsecase, validator *validator.CustomValidator) *LabInventoryHandler {
	return &LabInventoryHandler{
		inventoryUsecase: inventoryUsecase,
		validator:        validator,
	}
}

func (h *LabInventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLabInventoryItemRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	item, err := h.inventoryUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create inventory item")
		return
	}

	response.Success(w, http.StatusCreated, "Inventory item created successfully", item)
}

func (h *LabInventoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventoryUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get inventory")
		return
	}

	response.Success(w, http.StatusOK, "Inventory retrieved successfully", items)
}

func (h *LabInventoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "inventory item")
	if !ok {
		return
	}

	item, err := h.inventoryUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get inventory item")
		return
	}

	response.Success(w, http.StatusOK, "Inventory item retrieved successfully", item)
}

func (h *LabInventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "inventory item")
	if !ok {
		return
	}

	var req dto.UpdateLabInventoryItemRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	item, err := h.inventoryUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update inventory item")
		return
	}

	response.Success(w, http.StatusOK, "Inventory item updated successfully", item)
}

func (h *LabInventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "inventory item")
	if !ok {
		return
	}

	if err := h.inventoryUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete inventory item")
		return
	}

	response.Success(w, http.StatusOK, "Inventory item deleted successfully", nil)
}

func (h *LabInventoryHandler) writeError(w http.ResponseWriter, err error, message string) {
	switch {
	case err == usecase.ErrInventoryItemNotFound:
		response.NotFound(w, "Inventory item not found")
	case isBadInput(err):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, message)
	}
}
