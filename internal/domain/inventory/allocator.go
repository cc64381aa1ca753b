package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AllocationRecord is the result of satisfying part of a requested quantity
// from one specific batch. The unit cost is captured at allocation time so
// later cost changes never alter a committed sale.
type AllocationRecord struct {
	BatchID  uuid.UUID       `json:"batch_id"`
	BatchNo  string          `json:"batch_no"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	MRP      decimal.Decimal `json:"mrp"`
}

// Allocator implements First-Expiry-First-Out stock allocation. Batches are
// consumed in ascending expiry order (ties broken by purchase date, then ID -
// the repository guarantees the ordering) until the requested quantity is
// satisfied.
//
// The allocator performs guarded deductions through the repository it is
// given. Callers MUST pass a transaction-scoped repository: when allocation
// fails partway through, the deductions already applied are rolled back by
// aborting the enclosing transaction, so no partial allocation is ever
// visible outside it.
type Allocator struct{}

// NewAllocator creates a new FEFO allocator
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate deducts the requested quantity for a medicine across its batches
// in FEFO order and returns one AllocationRecord per batch touched.
//
// A non-positive request is rejected with shared.ErrInvalidQuantity before
// any store access. If the allocatable stock cannot cover the request, an
// *InsufficientStockError carrying the shortfall is returned; the partial
// deductions performed during the scan are undone by the transaction abort.
func (a *Allocator) Allocate(
	ctx context.Context,
	batches BatchRepository,
	medicineID uuid.UUID,
	requested decimal.Decimal,
) ([]AllocationRecord, error) {
	if requested.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidQuantity
	}

	allocatable, err := batches.FindAllocatable(ctx, medicineID)
	if err != nil {
		return nil, err
	}

	remaining := requested
	records := make([]AllocationRecord, 0, len(allocatable))

	for _, batch := range allocatable {
		if remaining.IsZero() {
			break
		}
		take := decimal.Min(batch.Quantity, remaining)
		if take.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if err := batches.DeductGuarded(ctx, batch.ID, take); err != nil {
			return nil, err
		}
		records = append(records, AllocationRecord{
			BatchID:  batch.ID,
			BatchNo:  batch.BatchNo,
			Quantity: take,
			UnitCost: batch.UnitCost,
			MRP:      batch.MRP,
		})
		remaining = remaining.Sub(take)
	}

	if remaining.GreaterThan(decimal.Zero) {
		return nil, NewInsufficientStockError(medicineID, requested, remaining)
	}
	return records, nil
}

// Preview calculates what an allocation would take from each batch without
// deducting anything. Useful for showing the operator the outcome before
// confirming a sale.
func (a *Allocator) Preview(
	ctx context.Context,
	batches BatchRepository,
	medicineID uuid.UUID,
	requested decimal.Decimal,
) (*AllocationPreview, error) {
	if requested.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidQuantity
	}

	allocatable, err := batches.FindAllocatable(ctx, medicineID)
	if err != nil {
		return nil, err
	}

	preview := &AllocationPreview{
		MedicineID: medicineID,
		Requested:  requested,
		CanFulfill: true,
	}
	remaining := requested
	for _, batch := range allocatable {
		if remaining.IsZero() {
			break
		}
		take := decimal.Min(batch.Quantity, remaining)
		preview.Records = append(preview.Records, AllocationRecord{
			BatchID:  batch.ID,
			BatchNo:  batch.BatchNo,
			Quantity: take,
			UnitCost: batch.UnitCost,
			MRP:      batch.MRP,
		})
		remaining = remaining.Sub(take)
	}
	if remaining.GreaterThan(decimal.Zero) {
		preview.CanFulfill = false
		preview.Shortfall = remaining
	}
	return preview, nil
}

// AllocationPreview describes what an allocation would look like
type AllocationPreview struct {
	MedicineID uuid.UUID          `json:"medicine_id"`
	Requested  decimal.Decimal    `json:"requested"`
	Records    []AllocationRecord `json:"records"`
	CanFulfill bool               `json:"can_fulfill"`
	Shortfall  decimal.Decimal    `json:"shortfall,omitempty"`
}

// TotalCost returns the cost of an allocation (sum of qty * unit cost)
func TotalCost(records []AllocationRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Quantity.Mul(r.UnitCost))
	}
	return total
}

// TotalQuantity returns the summed quantity of an allocation
func TotalQuantity(records []AllocationRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Quantity)
	}
	return total
}
