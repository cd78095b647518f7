package handler

import (
	"net/http"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/usecase"
	"dental-clinic/pkg/response"
	"dental-clinic/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase     usecase.PatientUsecase
	visitUsecase       usecase.VisitUsecase
	appointmentUsecase usecase.AppointmentUsecase
	invoiceUsecase     usecase.InvoiceUsecase
	labWorkUsecase     usecase.LabWorkUsecase
	validator          *validator.CustomValidator
}

func NewPatientHandler(
	patientUsecase usecase.PatientUsecase,
	visitUsecase usecase.VisitUsecase,
	appointmentUsecase usecase.AppointmentUsecase,
	invoiceUsecase usecase.InvoiceUsecase,
	labWorkUsecase usecase.LabWorkUsecase,
	validator *validator.CustomValidator,
) *PatientHandler {
	return &PatientHandler{
		patientUsecase:     patientUsecase,
		visitUsecase:       visitUsecase,
		appointmentUsecase: appointmentUsecase,
		invoiceUsecase:     invoiceUsecase,
		labWorkUsecase:     labWorkUsecase,
		validator:          validator,
	}
}

// Create handles patient registration. A missing patient_id is generated
// from the patient_id_format setting.
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientCodeExists:
			response.Conflict(w, "Patient ID already exists")
		case usecase.ErrPatientCodeConflict:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

func (h *PatientHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

// GetByIdentifier accepts either a patient code or a numeric row id.
func (h *PatientHandler) GetByIdentifier(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientUsecase.GetByIdentifier(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.notFoundOr500(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientUsecase.GetByCode(r.Context(), mux.Vars(r)["patientId"])
	if err != nil {
		h.notFoundOr500(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) NextCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.patientUsecase.NextCode(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to generate patient ID")
		return
	}

	response.Success(w, http.StatusOK, "Next patient ID generated", map[string]string{"patient_id": code})
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	var req dto.UpdatePatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.updateError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

// UpdateByCode handles PATCH /patients/{patientId}.
func (h *PatientHandler) UpdateByCode(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.UpdateByCode(r.Context(), mux.Vars(r)["patientId"], &req)
	if err != nil {
		h.updateError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	if err := h.patientUsecase.Delete(r.Context(), id); err != nil {
		h.notFoundOr500(w, err, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}

func (h *PatientHandler) GetVisits(w http.ResponseWriter, r *http.Request) {
	visits, err := h.visitUsecase.GetByPatient(r.Context(), mux.Vars(r)["patientId"])
	if err != nil {
		h.notFoundOr500(w, err, "Failed to get visits")
		return
	}

	response.Success(w, http.StatusOK, "Visits retrieved successfully", visits)
}

func (h *PatientHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetByPatient(r.Context(), mux.Vars(r)["patientId"])
	if err != nil {
		h.notFoundOr500(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *PatientHandler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoiceUsecase.GetByPatient(r.Context(), mux.Vars(r)["patientId"])
	if err != nil {
		h.notFoundOr500(w, err, "Failed to get invoices")
		return
	}

	response.Success(w, http.StatusOK, "Invoices retrieved successfully", invoices)
}

func (h *PatientHandler) GetLabWorks(w http.ResponseWriter, r *http.Request) {
	labWorks, err := h.labWorkUsecase.GetByPatient(r.Context(), mux.Vars(r)["patientId"])
	if err != nil {
		h.notFoundOr500(w, err, "Failed to get lab works")
		return
	}

	response.Success(w, http.StatusOK, "Lab works retrieved successfully", labWorks)
}

func (h *PatientHandler) updateError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrEmptyUpdate:
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, "Failed to update patient")
	}
}

func (h *PatientHandler) notFoundOr500(w http.ResponseWriter, err error, message string) {
	if err == usecase.ErrPatientNotFound {
		response.NotFound(w, "Patient not found")
		return
	}
	response.InternalServerError(w, message)
}
