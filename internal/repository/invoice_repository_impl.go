package repository

import (
	"time"

	"dental-clinic/internal/domain/entity"
	domainRepo "dental-clinic/internal/domain/repository"

	"gorm.io/gorm"
)

type invoiceRepository struct {
	crudRepository[entity.Invoice]
}

func NewInvoiceRepository() domainRepo.InvoiceRepository {
	return &invoiceRepository{}
}

func (r *invoiceRepository) FindByIDWithItems(db *gorm.DB, id int) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("id = ?", id).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByPatientID(db *gorm.DB, patientID string) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := db.Where("patient_id = ?", patientID).Order("date DESC, id DESC").Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) FindByVisitID(db *gorm.DB, visitID int) ([]entity.Invoice, error) {
	return findScoped[entity.Invoice](db, "visit_id", visitID)
}

func (r *invoiceRepository) FindByDateRange(db *gorm.DB, start, end time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := db.Where("date >= ? AND date <= ?", start, end).Order("date ASC, id ASC").Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) NextID(db *gorm.DB) (int, error) {
	var ids []int
	if err := db.Model(&entity.Invoice{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return 0, err
	}

	next := 1
	for _, id := range ids {
		if id > next {
			break
		}
		if id == next {
			next++
		}
	}
	return next, nil
}

// ResetSequence realigns the serial sequence with the current max id.
// Invoice ids are assigned by NextID, so this only matters to rows
// inserted outside the application.
func (r *invoiceRepository) ResetSequence(db *gorm.DB) error {
	return db.Exec("SELECT setval(pg_get_serial_sequence('invoices', 'id'), COALESCE((SELECT MAX(id) FROM invoices), 0) + 1, false)").Error
}

type invoiceItemRepository struct {
	crudRepository[entity.InvoiceItem]
}

func NewInvoiceItemRepository() domainRepo.InvoiceItemRepository {
	return &invoiceItemRepository{}
}

func (r *invoiceItemRepository) FindByInvoiceID(db *gorm.DB, invoiceID int) ([]entity.InvoiceItem, error) {
	return findScoped[entity.InvoiceItem](db, "invoice_id", invoiceID)
}

func (r *invoiceItemRepository) DeleteByInvoiceID(db *gorm.DB, invoiceID int) error {
	return db.Where("invoice_id = ?", invoiceID).Delete(&entity.InvoiceItem{}).Error
}
