package converter

import (
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
)

func MedicationToResponse(medication *entity.Medication) *dto.MedicationResponse {
	return &dto.MedicationResponse{
		ID:        medication.ID,
		Name:      medication.Name,
		Quantity:  medication.Quantity,
		Threshold: medication.Threshold,
		Notes:     medication.Notes,
	}
}

func MedicationsToResponses(medications []entity.Medication) []dto.MedicationResponse {
	return toResponses(medications, MedicationToResponse)
}

func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	response := &dto.PrescriptionResponse{
		ID:              prescription.ID,
		VisitID:         prescription.VisitID,
		MedicationID:    prescription.MedicationID,
		SlNo:            prescription.SlNo,
		BeforeAfterFood: prescription.BeforeAfterFood,
		Morning:         prescription.Morning,
		Afternoon:       prescription.Afternoon,
		Evening:         prescription.Evening,
		Night:           prescription.Night,
		Duration:        prescription.Duration,
		Notes:           prescription.Notes,
	}
	if prescription.Medication != nil {
		response.MedicationName = prescription.Medication.Name
	}
	return response
}

func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	return toResponses(prescriptions, PrescriptionToResponse)
}

func ToothFindingToResponse(finding *entity.ToothFinding) *dto.ToothFindingResponse {
	return &dto.ToothFindingResponse{
		ID:          finding.ID,
		VisitID:     finding.VisitID,
		ToothNumber: finding.ToothNumber,
		Finding:     finding.Finding,
	}
}

func ToothFindingsToResponses(findings []entity.ToothFinding) []dto.ToothFindingResponse {
	return toResponses(findings, ToothFindingToResponse)
}

func GeneralizedFindingToResponse(finding *entity.GeneralizedFinding) *dto.GeneralizedFindingResponse {
	return &dto.GeneralizedFindingResponse{
		ID:      finding.ID,
		VisitID: finding.VisitID,
		Finding: finding.Finding,
	}
}

func GeneralizedFindingsToResponses(findings []entity.GeneralizedFinding) []dto.GeneralizedFindingResponse {
	return toResponses(findings, GeneralizedFindingToResponse)
}

func InvestigationToResponse(investigation *entity.Investigation) *dto.InvestigationResponse {
	return &dto.InvestigationResponse{
		ID:       investigation.ID,
		VisitID:  investigation.VisitID,
		Type:     investigation.Type,
		Findings: investigation.Findings,
	}
}

func InvestigationsToResponses(investigations []entity.Investigation) []dto.InvestigationResponse {
	return toResponses(investigations, InvestigationToResponse)
}

func FollowUpToResponse(followUp *entity.FollowUp) *dto.FollowUpResponse {
	return &dto.FollowUpResponse{
		ID:        followUp.ID,
		VisitID:   followUp.VisitID,
		PatientID: followUp.PatientID,
		Date:      formatDate(followUp.Date),
		Reason:    followUp.Reason,
		Status:    followUp.Status,
	}
}

func FollowUpsToResponses(followUps []entity.FollowUp) []dto.FollowUpResponse {
	return toResponses(followUps, FollowUpToResponse)
}
