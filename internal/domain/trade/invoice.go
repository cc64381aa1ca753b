package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
)

// InvoiceStatus represents the rendering state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusGenerated InvoiceStatus = "generated"
	InvoiceStatusFailed    InvoiceStatus = "failed"
)

// Invoice is the 1:1 derived artifact of a committed sale. The row is
// created inside the sale transaction; rendering and upload happen after
// commit and update the status independently of the sale.
type Invoice struct {
	shared.BaseAggregateRoot
	SaleID        uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_invoice_sale"`
	InvoiceNumber string        `gorm:"type:varchar(20);not null;uniqueIndex:idx_invoice_number"`
	Status        InvoiceStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	DocumentPath  string        `gorm:"type:varchar(500)"`
	FailureReason string        `gorm:"type:text"`
	GeneratedAt   *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// FormatInvoiceNumber renders the global invoice sequence, e.g. INV-000042
func FormatInvoiceNumber(seq int64) string {
	return fmt.Sprintf("INV-%06d", seq)
}

// NewInvoice creates a pending invoice shell for a sale
func NewInvoice(saleID uuid.UUID, invoiceNumber string) (*Invoice, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleID:            saleID,
		InvoiceNumber:     invoiceNumber,
		Status:            InvoiceStatusPending,
	}, nil
}

// MarkGenerated records the rendered document reference
func (i *Invoice) MarkGenerated(documentPath string) error {
	if documentPath == "" {
		return shared.NewDomainError("INVALID_DOCUMENT", "Document path cannot be empty")
	}

	now := time.Now()
	i.Status = InvoiceStatusGenerated
	i.DocumentPath = documentPath
	i.FailureReason = ""
	i.GeneratedAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	return nil
}

// MarkFailed records a rendering failure. The sale stays committed; the
// invoice can be retried later.
func (i *Invoice) MarkFailed(reason string) {
	i.Status = InvoiceStatusFailed
	i.FailureReason = reason
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// CanRetry reports whether generation may be attempted again
func (i *Invoice) CanRetry() bool {
	return i.Status != InvoiceStatusGenerated
}
