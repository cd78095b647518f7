package handler

import (
	"net/http"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/usecase"
	"dental-clinic/pkg/response"
	"dental-clinic/pkg/validator"
)

type InvoiceHandler struct {
	invoiceUsecase usecase.InvoiceUsecase
	validator      *validator.CustomValidator
}

func NewInvoiceHandler(invoiceUsecase usecase.InvoiceUsecase, validator *validator.CustomValidator) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUsecase: invoiceUsecase,
		validator:      validator,
	}
}

// Create takes the lowest free invoice number. Items sent with the
// invoice are stored with it and, without an explicit total, summed.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvoiceRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	invoice, err := h.invoiceUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create invoice")
		return
	}

	response.Success(w, http.StatusCreated, "Invoice created successfully", invoice)
}

func (h *InvoiceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoiceUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get invoices")
		return
	}

	response.Success(w, http.StatusOK, "Invoices retrieved successfully", invoices)
}

func (h *InvoiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get invoice")
		return
	}

	response.Success(w, http.StatusOK, "Invoice retrieved successfully", invoice)
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "invoice")
	if !ok {
		return
	}

	var req dto.UpdateInvoiceRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	invoice, err := h.invoiceUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update invoice")
		return
	}

	response.Success(w, http.StatusOK, "Invoice updated successfully", invoice)
}

// PatchStatus handles PATCH /invoices/{id}. Paying stamps today's date;
// any other status clears the payment fields.
func (h *InvoiceHandler) PatchStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "invoice")
	if !ok {
		return
	}

	var req dto.PatchInvoiceStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	invoice, err := h.invoiceUsecase.PatchStatus(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update invoice status")
		return
	}

	response.Success(w, http.StatusOK, "Invoice status updated successfully", invoice)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "invoice")
	if !ok {
		return
	}

	if err := h.invoiceUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete invoice")
		return
	}

	response.Success(w, http.StatusOK, "Invoice deleted successfully", nil)
}

func (h *InvoiceHandler) ResetSequence(w http.ResponseWriter, r *http.Request) {
	if err := h.invoiceUsecase.ResetSequence(r.Context()); err != nil {
		switch err {
		case usecase.ErrResetNotAllowed:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to reset invoice sequence")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invoice sequence reset successfully", nil)
}

func (h *InvoiceHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvoiceItemRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	item, err := h.invoiceUsecase.CreateItem(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create invoice item")
		return
	}

	response.Success(w, http.StatusCreated, "Invoice item created successfully", item)
}

func (h *InvoiceHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := pathID(w, r, "invoiceId", "invoice")
	if !ok {
		return
	}

	items, err := h.invoiceUsecase.GetItems(r.Context(), invoiceID)
	if err != nil {
		h.writeError(w, err, "Failed to get invoice items")
		return
	}

	response.Success(w, http.StatusOK, "Invoice items retrieved successfully", items)
}

func (h *InvoiceHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "invoice item")
	if !ok {
		return
	}

	item, err := h.invoiceUsecase.GetItem(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get invoice item")
		return
	}

	response.Success(w, http.StatusOK, "Invoice item retrieved successfully", item)
}

func (h *InvoiceHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "invoice item")
	if !ok {
		return
	}

	var req dto.UpdateInvoiceItemRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	item, err := h.invoiceUsecase.UpdateItem(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update invoice item")
		return
	}

	response.Success(w, http.StatusOK, "Invoice item updated successfully", item)
}

func (h *InvoiceHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "invoice item")
	if !ok {
		return
	}

	if err := h.invoiceUsecase.DeleteItem(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete invoice item")
		return
	}

	response.Success(w, http.StatusOK, "Invoice item deleted successfully", nil)
}

func (h *InvoiceHandler) writeError(w http.ResponseWriter, err error, message string) {
	switch {
	case err == usecase.ErrInvoiceNotFound:
		response.NotFound(w, "Invoice not found")
	case err == usecase.ErrInvoiceItemNotFound:
		response.NotFound(w, "Invoice item not found")
	case err == usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case err == usecase.ErrInvoiceIDConflict:
		response.Conflict(w, err.Error())
	case isBadInput(err):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, message)
	}
}
