package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements trade.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Invoice, error) {
	var invoice trade.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindBySale finds the invoice linked to a sale
func (r *GormInvoiceRepository) FindBySale(ctx context.Context, saleID uuid.UUID) (*trade.Invoice, error) {
	var invoice trade.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "sale_id = ?", saleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindRetryable returns invoices that still need a document, oldest first
func (r *GormInvoiceRepository) FindRetryable(ctx context.Context, limit int) ([]*trade.Invoice, error) {
	var invoices []*trade.Invoice
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []trade.InvoiceStatus{trade.InvoiceStatusPending, trade.InvoiceStatusFailed}).
		Order("created_at ASC").
		Limit(limit).
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *trade.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// NextSequence returns the next value of the global invoice sequence
func (r *GormInvoiceRepository) NextSequence(ctx context.Context) (int64, error) {
	return nextSequence(ctx, r.db, "invoice")
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ trade.InvoiceRepository = (*GormInvoiceRepository)(nil)
