package inventory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InsufficientStockError reports that the allocatable quantity across all
// batches of a medicine is less than the requested quantity. It carries the
// shortfall so the operator can be told exactly how much is missing.
type InsufficientStockError struct {
	MedicineID uuid.UUID
	Requested  decimal.Decimal
	Shortfall  decimal.Decimal
}

// NewInsufficientStockError creates an InsufficientStockError
func NewInsufficientStockError(medicineID uuid.UUID, requested, shortfall decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{
		MedicineID: medicineID,
		Requested:  requested,
		Shortfall:  shortfall,
	}
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for medicine %s: requested=%s short=%s",
		e.MedicineID, e.Requested.String(), e.Shortfall.String())
}

// Code returns the machine-readable error code
func (e *InsufficientStockError) Code() string {
	return "INSUFFICIENT_STOCK"
}
