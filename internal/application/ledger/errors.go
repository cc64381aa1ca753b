package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// InvoiceGenerationError signals a partial success: the sale is committed
// and stock is moved, but the derived invoice document could not be
// produced. The caller may retry invoice generation independently.
type InvoiceGenerationError struct {
	SaleID        uuid.UUID
	InvoiceNumber string
	Err           error
}

// Error implements the error interface
func (e *InvoiceGenerationError) Error() string {
	return fmt.Sprintf("invoice %s generation failed for sale %s: %v", e.InvoiceNumber, e.SaleID, e.Err)
}

// Unwrap returns the underlying cause
func (e *InvoiceGenerationError) Unwrap() error {
	return e.Err
}

// Code returns the machine-readable error code
func (e *InvoiceGenerationError) Code() string {
	return "INVOICE_GENERATION_FAILED"
}
