package converter

import (
	"encoding/json"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
)

func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:          patient.ID,
		PatientID:   patient.PatientID,
		Name:        patient.Name,
		Age:         patient.Age,
		Sex:         patient.Sex,
		Address:     patient.Address,
		PhoneNumber: patient.PhoneNumber,
		CreatedAt:   patient.CreatedAt,
	}
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	return toResponses(patients, PatientToResponse)
}

func VisitToResponse(visit *entity.PatientVisit) *dto.VisitResponse {
	attachments := []entity.Attachment(visit.Attachments)
	if attachments == nil {
		attachments = []entity.Attachment{}
	}
	consentForms := []json.RawMessage(visit.ConsentForms)
	if consentForms == nil {
		consentForms = []json.RawMessage{}
	}

	return &dto.VisitResponse{
		ID:                    visit.ID,
		PatientID:             visit.PatientID,
		PreviousVisitID:       visit.PreviousVisitID,
		Date:                  formatDate(visit.Date),
		MedicalHistory:        visit.MedicalHistory,
		DrugAllergy:           visit.DrugAllergy,
		PreviousDentalHistory: visit.PreviousDentalHistory,
		ChiefComplaint:        visit.ChiefComplaint,
		OralExamination:       visit.OralExamination,
		Investigation:         visit.Investigation,
		TreatmentPlan:         visit.TreatmentPlan,
		Prescription:          visit.Prescription,
		TreatmentDone:         visit.TreatmentDone,
		Advice:                visit.Advice,
		Notes:                 visit.Notes,
		NextAppointment:       formatDatePtr(visit.NextAppointment),
		Attachments:           attachments,
		ConsentForms:          consentForms,
	}
}

func VisitsToResponses(visits []entity.PatientVisit) []dto.VisitResponse {
	return toResponses(visits, VisitToResponse)
}

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:            appointment.ID,
		PatientID:     appointment.PatientID,
		Date:          formatDate(appointment.Date),
		DoctorName:    appointment.DoctorName,
		TreatmentDone: appointment.TreatmentDone,
		Notes:         appointment.Notes,
		VisitID:       appointment.VisitID,
		InvoiceID:     appointment.InvoiceID,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	return toResponses(appointments, AppointmentToResponse)
}
