package converter

import (
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
)

func LabWorkToResponse(labWork *entity.LabWork) *dto.LabWorkResponse {
	return &dto.LabWorkResponse{
		ID:            labWork.ID,
		PatientID:     labWork.PatientID,
		WorkType:      labWork.WorkType,
		Status:        labWork.Status,
		Description:   labWork.Description,
		Shade:         labWork.Shade,
		StartDate:     formatDate(labWork.StartDate),
		DueDate:       formatDate(labWork.DueDate),
		CompletedDate: formatDatePtr(labWork.CompletedDate),
		Technician:    labWork.Technician,
		Cost:          labWork.Cost,
		Notes:         labWork.Notes,
	}
}

func LabWorksToResponses(labWorks []entity.LabWork) []dto.LabWorkResponse {
	return toResponses(labWorks, LabWorkToResponse)
}

func LabWorkCostToResponse(cost *entity.LabWorkCost) *dto.LabWorkCostResponse {
	return &dto.LabWorkCostResponse{
		ID:            cost.ID,
		WorkType:      cost.WorkType,
		LabTechnician: cost.LabTechnician,
		Cost:          cost.Cost,
	}
}

func LabWorkCostsToResponses(costs []entity.LabWorkCost) []dto.LabWorkCostResponse {
	return toResponses(costs, LabWorkCostToResponse)
}

func LabInventoryItemToResponse(item *entity.LabInventoryItem) *dto.LabInventoryItemResponse {
	return &dto.LabInventoryItemResponse{
		ID:          item.ID,
		ItemName:    item.ItemName,
		Quantity:    item.Quantity,
		Threshold:   item.Threshold,
		UnitCost:    item.UnitCost,
		Supplier:    item.Supplier,
		LastRestock: formatDatePtr(item.LastRestock),
		LowStock:    item.IsLow(),
	}
}

func LabInventoryItemsToResponses(items []entity.LabInventoryItem) []dto.LabInventoryItemResponse {
	return toResponses(items, LabInventoryItemToResponse)
}
