package dto

import (
	"encoding/json"
	"time"

	"dental-clinic/internal/domain/entity"
)

// Request DTOs

type CreatePatientRequest struct {
	PatientID   string `json:"patient_id" validate:"omitempty,max=50"`
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Age         int    `json:"age" validate:"required,gt=0,lte=150"`
	Sex         string `json:"sex" validate:"required"`
	Address     string `json:"address" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required,min=5,max=30"`
}

type UpdatePatientRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Age         *int    `json:"age,omitempty" validate:"omitempty,gt=0,lte=150"`
	Sex         *string `json:"sex,omitempty" validate:"omitempty,min=1"`
	Address     *string `json:"address,omitempty" validate:"omitempty,min=1"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,min=5,max=30"`
}

type CreateVisitRequest struct {
	PatientID             string  `json:"patient_id" validate:"required"`
	PreviousVisitID       *int    `json:"previous_visit_id,omitempty" validate:"omitempty,gt=0"`
	Date                  string  `json:"date" validate:"required,datetime=2006-01-02"`
	MedicalHistory        string  `json:"medical_history"`
	DrugAllergy           string  `json:"drug_allergy"`
	PreviousDentalHistory string  `json:"previous_dental_history"`
	ChiefComplaint        string  `json:"chief_complaint" validate:"required"`
	OralExamination       string  `json:"oral_examination"`
	Investigation         string  `json:"investigation"`
	TreatmentPlan         string  `json:"treatment_plan"`
	Prescription          string  `json:"prescription"`
	TreatmentDone         string  `json:"treatment_done"`
	Advice                string  `json:"advice"`
	Notes                 string  `json:"notes"`
	NextAppointment       *string `json:"next_appointment,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateVisitRequest struct {
	Date                  *string              `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MedicalHistory        *string              `json:"medical_history,omitempty"`
	DrugAllergy           *string              `json:"drug_allergy,omitempty"`
	PreviousDentalHistory *string              `json:"previous_dental_history,omitempty"`
	ChiefComplaint        *string              `json:"chief_complaint,omitempty" validate:"omitempty,min=1"`
	OralExamination       *string              `json:"oral_examination,omitempty"`
	Investigation         *string              `json:"investigation,omitempty"`
	TreatmentPlan         *string              `json:"treatment_plan,omitempty"`
	Prescription          *string              `json:"prescription,omitempty"`
	TreatmentDone         *string              `json:"treatment_done,omitempty"`
	Advice                *string              `json:"advice,omitempty"`
	Notes                 *string              `json:"notes,omitempty"`
	NextAppointment       *string              `json:"next_appointment,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ConsentForms          *[]json.RawMessage   `json:"consent_forms,omitempty"`
	Attachments           *[]entity.Attachment `json:"attachments,omitempty"`
}

type CreateAppointmentRequest struct {
	PatientID     string `json:"patient_id" validate:"required"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	DoctorName    string `json:"doctor_name" validate:"required"`
	TreatmentDone string `json:"treatment_done"`
	Notes         string `json:"notes"`
	VisitID       *int   `json:"visit_id,omitempty" validate:"omitempty,gt=0"`
	InvoiceID     *int   `json:"invoice_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateAppointmentRequest struct {
	Date          *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DoctorName    *string `json:"doctor_name,omitempty" validate:"omitempty,min=1"`
	TreatmentDone *string `json:"treatment_done,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	VisitID       *int    `json:"visit_id,omitempty" validate:"omitempty,gt=0"`
	InvoiceID     *int    `json:"invoice_id,omitempty" validate:"omitempty,gt=0"`
}

// Response DTOs

type PatientResponse struct {
	ID          int       `json:"id"`
	PatientID   string    `json:"patient_id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Sex         string    `json:"sex"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

type VisitResponse struct {
	ID                    int                 `json:"id"`
	PatientID             string              `json:"patient_id"`
	PreviousVisitID       *int                `json:"previous_visit_id,omitempty"`
	Date                  string              `json:"date"`
	MedicalHistory        string              `json:"medical_history"`
	DrugAllergy           string              `json:"drug_allergy"`
	PreviousDentalHistory string              `json:"previous_dental_history"`
	ChiefComplaint        string              `json:"chief_complaint"`
	OralExamination       string              `json:"oral_examination"`
	Investigation         string              `json:"investigation"`
	TreatmentPlan         string              `json:"treatment_plan"`
	Prescription          string              `json:"prescription"`
	TreatmentDone         string              `json:"treatment_done"`
	Advice                string              `json:"advice"`
	Notes                 string              `json:"notes"`
	NextAppointment       *string             `json:"next_appointment,omitempty"`
	Attachments           []entity.Attachment `json:"attachments"`
	ConsentForms          []json.RawMessage   `json:"consent_forms"`
}

type AppointmentResponse struct {
	ID            int    `json:"id"`
	PatientID     string `json:"patient_id"`
	Date          string `json:"date"`
	DoctorName    string `json:"doctor_name"`
	TreatmentDone string `json:"treatment_done"`
	Notes         string `json:"notes"`
	VisitID       *int   `json:"visit_id,omitempty"`
	InvoiceID     *int   `json:"invoice_id,omitempty"`
}
