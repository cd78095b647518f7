package converter

import (
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
)

func InvoiceToResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	response := &dto.InvoiceResponse{
		ID:            invoice.ID,
		PatientID:     invoice.PatientID,
		VisitID:       invoice.VisitID,
		Date:          formatDate(invoice.Date),
		TotalAmount:   invoice.TotalAmount,
		Status:        invoice.Status,
		PaymentMethod: invoice.PaymentMethod,
		PaymentDate:   formatDatePtr(invoice.PaymentDate),
		Notes:         invoice.Notes,
	}
	if len(invoice.Items) > 0 {
		response.Items = InvoiceItemsToResponses(invoice.Items)
	}
	return response
}

func InvoicesToResponses(invoices []entity.Invoice) []dto.InvoiceResponse {
	return toResponses(invoices, InvoiceToResponse)
}

func InvoiceItemToResponse(item *entity.InvoiceItem) *dto.InvoiceItemResponse {
	return &dto.InvoiceItemResponse{
		ID:          item.ID,
		InvoiceID:   item.InvoiceID,
		Item:        item.Item,
		Description: item.Description,
		Amount:      item.Amount,
	}
}

func InvoiceItemsToResponses(items []entity.InvoiceItem) []dto.InvoiceItemResponse {
	return toResponses(items, InvoiceItemToResponse)
}
