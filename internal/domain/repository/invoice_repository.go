package repository

import (
	"time"

	"dental-clinic/internal/domain/entity"

	"gorm.io/gorm"
)

type InvoiceRepository interface {
	CrudRepository[entity.Invoice]
	FindByIDForUpdate(db *gorm.DB, id int) (*entity.Invoice, error)
	FindByIDWithItems(db *gorm.DB, id int) (*entity.Invoice, error)
	FindByPatientID(db *gorm.DB, patientID string) ([]entity.Invoice, error)
	FindByVisitID(db *gorm.DB, visitID int) ([]entity.Invoice, error)
	FindByDateRange(db *gorm.DB, start, end time.Time) ([]entity.Invoice, error)
	// NextID returns the smallest positive id not used by any invoice.
	NextID(db *gorm.DB) (int, error)
	ResetSequence(db *gorm.DB) error
}

type InvoiceItemRepository interface {
	CrudRepository[entity.InvoiceItem]
	FindByInvoiceID(db *gorm.DB, invoiceID int) ([]entity.InvoiceItem, error)
	DeleteByInvoiceID(db *gorm.DB, invoiceID int) error
}
