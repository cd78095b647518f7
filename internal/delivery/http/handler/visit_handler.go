package handler

import (
	"net/http"
	"strconv"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/usecase"
	"dental-clinic/pkg/response"
	"dental-clinic/pkg/validator"

	"github.com/gorilla/mux"
)

type VisitHandler struct {
	visitUsecase        usecase.VisitUsecase
	examinationUsecase  usecase.ExaminationUsecase
	prescriptionUsecase usecase.PrescriptionUsecase
	followUpUsecase     usecase.FollowUpUsecase
	invoiceUsecase      usecase.InvoiceUsecase
	validator           *validator.CustomValidator
}

func NewVisitHandler(
	visitUsecase usecase.VisitUsecase,
	examinationUsecase usecase.ExaminationUsecase,
	prescriptionUsecase usecase.PrescriptionUsecase,
	followUpUsecase usecase.FollowUpUsecase,
	invoiceUsecase usecase.InvoiceUsecase,
	validator *validator.CustomValidator,
) *VisitHandler {
	return &VisitHandler{
		visitUsecase:        visitUsecase,
		examinationUsecase:  examinationUsecase,
		prescriptionUsecase: prescriptionUsecase,
		followUpUsecase:     followUpUsecase,
		invoiceUsecase:      invoiceUsecase,
		validator:           validator,
	}
}

func (h *VisitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateVisitRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	visit, err := h.visitUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case err == usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case err == usecase.ErrPreviousVisitNotFound:
			response.BadRequest(w, "Previous visit not found")
		case isBadInput(err):
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create visit")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Visit created successfully", visit)
}

func (h *VisitHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	visits, err := h.visitUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get visits")
		return
	}

	response.Success(w, http.StatusOK, "Visits retrieved successfully", visits)
}

func (h *VisitHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "visit")
	if !ok {
		return
	}

	visit, err := h.visitUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.visitError(w, err, "Failed to get visit")
		return
	}

	response.Success(w, http.StatusOK, "Visit retrieved successfully", visit)
}

func (h *VisitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "visit")
	if !ok {
		return
	}

	var req dto.UpdateVisitRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	visit, err := h.visitUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.visitError(w, err, "Failed to update visit")
		return
	}

	response.Success(w, http.StatusOK, "Visit updated successfully", visit)
}

func (h *VisitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "visit")
	if !ok {
		return
	}

	if err := h.visitUsecase.Delete(r.Context(), id); err != nil {
		h.visitError(w, err, "Failed to delete visit")
		return
	}

	response.Success(w, http.StatusOK, "Visit deleted successfully", nil)
}

// CreateFollowUpVisit opens a new visit for the same patient, dated today
// and linked to {visitId}.
func (h *VisitHandler) CreateFollowUpVisit(w http.ResponseWriter, r *http.Request) {
	visitID, ok := pathID(w, r, "visitId", "visit")
	if !ok {
		return
	}

	visit, err := h.visitUsecase.CreateFollowUpVisit(r.Context(), visitID)
	if err != nil {
		h.visitError(w, err, "Failed to create follow-up visit")
		return
	}

	response.Success(w, http.StatusCreated, "Follow-up visit created successfully", visit)
}

func (h *VisitHandler) GetFollowUpVisits(w http.ResponseWriter, r *http.Request) {
	visitID, ok := pathID(w, r, "visitId", "visit")
	if !ok {
		return
	}

	visits, err := h.visitUsecase.GetFollowUpVisits(r.Context(), visitID)
	if err != nil {
		h.visitError(w, err, "Failed to get follow-up visits")
		return
	}

	response.Success(w, http.StatusOK, "Follow-up visits retrieved successfully", visits)
}

func (h *VisitHandler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	visitID, ok := pathID(w, r, "visitId", "visit")
	if !ok {
		return
	}

	err := h.visitUsecase.DeleteAttachment(r.Context(), visitID, mux.Vars(r)["fileId"])
	if err != nil {
		h.visitError(w, err, "Failed to delete attachment")
		return
	}

	response.Success(w, http.StatusOK, "Attachment deleted successfully", nil)
}

func (h *VisitHandler) DeleteAttachmentAt(w http.ResponseWriter, r *http.Request) {
	visitID, ok := pathID(w, r, "visitId", "visit")
	if !ok {
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		response.BadRequest(w, "Invalid attachment index")
		return
	}

	if err := h.visitUsecase.DeleteAttachmentAt(r.Context(), visitID, index); err != nil {
		h.visitError(w, err, "Failed to delete attachment")
		return
	}

	response.Success(w, http.StatusOK, "Attachment deleted successfully", nil)
}

func (h *VisitHandler) DeleteConsentFormAt(w http.ResponseWriter, r *http.Request) {
	visitID, ok := pathID(w, r, "visitId", "visit")
	if !ok {
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		response.BadRequest(w, "Invalid consent form index")
		return
	}

	if err := h.visitUsecase.DeleteConsentFormAt(r.Context(), visitID, index); err != nil {
		h.visitError(w, err, "Failed to delete consent form")
		return
	}

	response.Success(w, http.StatusOK, "Consent form deleted successfully", nil)
}

func (h *VisitHandler) GetToothFindings(w http.ResponseWriter, r *http.Request) {
	visitID, ok := pathID(w, r, "visitId", "visit")
	if !ok {
		return
	}

	findings, err := h.examinationUsecase.GetToothFindings(r.Context(), visitID)
	if err != nil {
		h.visitError(w, err, "Failed to get tooth findings")
		return
	}

	response.Success(w, http.StatusOK, "Tooth findings retrieved successfully", findings)
}

func (h *VisitHandler) GetGeneralizedFindings(w http.ResponseWriter, r *http.Request) {
	visitID, ok := pathID(w, r, "visitId", "visit")
	if !ok {
		return
	}

	findings, err := h.examinationUsecase.GetGeneralizedFindings(r.Context(), visitID)
	if err != nil {
		h.visitError(w, err, "Failed to get generalized findings")
		return
	}

	response.Success(w, http.StatusOK, "Generalized findings retrieved successfully", findings)
}

func (h *VisitHandler) GetInvestigations(w http.ResponseWriter, r *http.Request) {
	visitID, ok := pathID(w, r, "visitId", "visit")
	if !ok {
		return
	}

	investigations, err := h.examinationUsecase.GetInvestigations(r.Context(), visitID)
	if err != nil {
		h.visitError(w, err, "Failed to get investigations")
		return
	}

	response.Success(w, http.StatusOK, "Investigations retrieved successfully", investigations)
}

func (h *VisitHandler) GetPrescriptions(w http.ResponseWriter, r *http.Request) {
	visitID, ok := pathID(w, r, "visitId", "visit")
	if !ok {
		return
	}

	prescriptions, err := h.prescriptionUsecase.GetByVisit(r.Context(), visitID)
	if err != nil {
		h.visitError(w, err, "Failed to get prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}

func (h *VisitHandler) GetFollowUps(w http.ResponseWriter, r *http.Request) {
	visitID, ok := pathID(w, r, "visitId", "visit")
	if !ok {
		return
	}

	followUps, err := h.followUpUsecase.GetByVisit(r.Context(), visitID)
	if err != nil {
		h.visitError(w, err, "Failed to get follow-ups")
		return
	}

	response.Success(w, http.StatusOK, "Follow-ups retrieved successfully", followUps)
}

func (h *VisitHandler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	visitID, ok := pathID(w, r, "visitId", "visit")
	if !ok {
		return
	}

	invoices, err := h.invoiceUsecase.GetByVisit(r.Context(), visitID)
	if err != nil {
		h.visitError(w, err, "Failed to get invoices")
		return
	}

	response.Success(w, http.StatusOK, "Invoices retrieved successfully", invoices)
}

func (h *VisitHandler) visitError(w http.ResponseWriter, err error, message string) {
	switch {
	case err == usecase.ErrVisitNotFound:
		response.NotFound(w, "Visit not found")
	case err == usecase.ErrAttachmentNotFound:
		response.NotFound(w, "Attachment not found")
	case err == usecase.ErrConsentFormNotFound:
		response.NotFound(w, "Consent form not found")
	case isBadInput(err):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, message)
	}
}
