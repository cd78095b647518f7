package entity

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Attachment is a file stored in the upload directory and linked to a visit
type Attachment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename,omitempty"`
	DateAdded time.Time `json:"dateAdded"`
}

// PatientVisit is a dated clinical encounter
type PatientVisit struct {
	ID                    int                                  `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID             string                               `gorm:"type:varchar(50);not null;index" json:"patient_id"`
	PreviousVisitID       *int                                 `gorm:"index" json:"previous_visit_id,omitempty"`
	Date                  time.Time                            `gorm:"type:date;not null" json:"date"`
	MedicalHistory        string                               `gorm:"type:text" json:"medical_history"`
	DrugAllergy           string                               `gorm:"type:text" json:"drug_allergy"`
	PreviousDentalHistory string                               `gorm:"type:text" json:"previous_dental_history"`
	ChiefComplaint        string                               `gorm:"type:text;not null" json:"chief_complaint"`
	OralExamination       string                               `gorm:"type:text" json:"oral_examination"`
	Investigation         string                               `gorm:"type:text" json:"investigation"`
	TreatmentPlan         string                               `gorm:"type:text" json:"treatment_plan"`
	Prescription          string                               `gorm:"type:text" json:"prescription"`
	TreatmentDone         string                               `gorm:"type:text" json:"treatment_done"`
	Advice                string                               `gorm:"type:text" json:"advice"`
	Notes                 string                               `gorm:"type:text" json:"notes"`
	NextAppointment       *time.Time                           `gorm:"type:date" json:"next_appointment,omitempty"`
	Attachments           datatypes.JSONSlice[Attachment]      `json:"attachments"`
	ConsentForms          datatypes.JSONSlice[json.RawMessage] `json:"consent_forms"`
}

func (PatientVisit) TableName() string {
	return "patient_visits"
}

// RemoveAttachment drops the attachment with the given id and returns it.
func (v *PatientVisit) RemoveAttachment(id string) (Attachment, bool) {
	for i, a := range v.Attachments {
		if a.ID == id {
			v.Attachments = append(v.Attachments[:i:i], v.Attachments[i+1:]...)
			return a, true
		}
	}
	return Attachment{}, false
}
