package dto

// Request DTOs

type CreateMedicationRequest struct {
	Name      string `json:"name" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
	Threshold *int   `json:"threshold,omitempty" validate:"omitempty,gte=0"`
	Notes     string `json:"notes"`
}

type UpdateMedicationRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Quantity  *int    `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Threshold *int    `json:"threshold,omitempty" validate:"omitempty,gte=0"`
	Notes     *string `json:"notes,omitempty"`
}

type CreatePrescriptionRequest struct {
	VisitID         int    `json:"visit_id" validate:"required,gt=0"`
	MedicationID    int    `json:"medication_id" validate:"required,gt=0"`
	SlNo            int    `json:"sl_no" validate:"required,gt=0"`
	BeforeAfterFood string `json:"before_after_food" validate:"omitempty,oneof=before after"`
	Morning         string `json:"morning" validate:"max=10"`
	Afternoon       string `json:"afternoon" validate:"max=10"`
	Evening         string `json:"evening" validate:"max=10"`
	Night           string `json:"night" validate:"max=10"`
	Duration        string `json:"duration" validate:"max=50"`
	Notes           string `json:"notes"`
}

type UpdatePrescriptionRequest struct {
	MedicationID    *int    `json:"medication_id,omitempty" validate:"omitempty,gt=0"`
	SlNo            *int    `json:"sl_no,omitempty" validate:"omitempty,gt=0"`
	BeforeAfterFood *string `json:"before_after_food,omitempty" validate:"omitempty,oneof=before after"`
	Morning         *string `json:"morning,omitempty" validate:"omitempty,max=10"`
	Afternoon       *string `json:"afternoon,omitempty" validate:"omitempty,max=10"`
	Evening         *string `json:"evening,omitempty" validate:"omitempty,max=10"`
	Night           *string `json:"night,omitempty" validate:"omitempty,max=10"`
	Duration        *string `json:"duration,omitempty" validate:"omitempty,max=50"`
	Notes           *string `json:"notes,omitempty"`
}

type CreateToothFindingRequest struct {
	VisitID     int    `json:"visit_id" validate:"required,gt=0"`
	ToothNumber string `json:"tooth_number" validate:"required,numeric,max=2"`
	Finding     string `json:"finding" validate:"required"`
}

type UpdateToothFindingRequest struct {
	ToothNumber *string `json:"tooth_number,omitempty" validate:"omitempty,numeric,max=2"`
	Finding     *string `json:"finding,omitempty" validate:"omitempty,min=1"`
}

type CreateGeneralizedFindingRequest struct {
	VisitID int    `json:"visit_id" validate:"required,gt=0"`
	Finding string `json:"finding" validate:"required"`
}

type UpdateGeneralizedFindingRequest struct {
	Finding *string `json:"finding,omitempty" validate:"omitempty,min=1"`
}

type CreateInvestigationRequest struct {
	VisitID  int    `json:"visit_id" validate:"required,gt=0"`
	Type     string `json:"type" validate:"required"`
	Findings string `json:"findings"`
}

type UpdateInvestigationRequest struct {
	Type     *string `json:"type,omitempty" validate:"omitempty,min=1"`
	Findings *string `json:"findings,omitempty"`
}

type CreateFollowUpRequest struct {
	VisitID   int    `json:"visit_id" validate:"required,gt=0"`
	PatientID string `json:"patient_id,omitempty"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"`
	Status    string `json:"status" validate:"omitempty,oneof=Scheduled Completed Cancelled"`
}

type UpdateFollowUpRequest struct {
	Date   *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Reason *string `json:"reason,omitempty"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=Scheduled Completed Cancelled"`
}

// Response DTOs

type MedicationResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
	Notes     string `json:"notes"`
}

type PrescriptionResponse struct {
	ID              int    `json:"id"`
	VisitID         int    `json:"visit_id"`
	MedicationID    int    `json:"medication_id"`
	MedicationName  string `json:"medication_name,omitempty"`
	SlNo            int    `json:"sl_no"`
	BeforeAfterFood string `json:"before_after_food"`
	Morning         string `json:"morning"`
	Afternoon       string `json:"afternoon"`
	Evening         string `json:"evening"`
	Night           string `json:"night"`
	Duration        string `json:"duration"`
	Notes           string `json:"notes"`
}

type ToothFindingResponse struct {
	ID          int    `json:"id"`
	VisitID     int    `json:"visit_id"`
	ToothNumber string `json:"tooth_number"`
	Finding     string `json:"finding"`
}

type GeneralizedFindingResponse struct {
	ID      int    `json:"id"`
	VisitID int    `json:"visit_id"`
	Finding string `json:"finding"`
}

type InvestigationResponse struct {
	ID       int    `json:"id"`
	VisitID  int    `json:"visit_id"`
	Type     string `json:"type"`
	Findings string `json:"findings"`
}

type FollowUpResponse struct {
	ID        int    `json:"id"`
	VisitID   int    `json:"visit_id"`
	PatientID string `json:"patient_id"`
	Date      string `json:"date"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
}
