package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BatchRepository defines the interface for stock batch persistence.
//
// FindAllocatable and DeductGuarded together form the write path the FEFO
// allocator depends on. Every other component treats batches as read-only;
// quantity mutations happen exclusively through DeductGuarded inside a
// ledger transaction.
type BatchRepository interface {
	// FindByID finds a batch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)

	// FindByMedicine finds all batches for a medicine
	FindByMedicine(ctx context.Context, medicineID uuid.UUID, filter shared.Filter) ([]Batch, error)

	// FindAllocatable returns batches with quantity > 0 for a medicine,
	// ordered by expiry date ascending. Batches sharing an expiry date are
	// ordered by purchase date ascending, then by ID, so allocation order
	// is deterministic.
	FindAllocatable(ctx context.Context, medicineID uuid.UUID) ([]Batch, error)

	// DeductGuarded decrements a batch quantity with a conditional update
	// predicate (quantity >= qty). If the guard fails because a concurrent
	// transaction consumed the stock first, shared.ErrStockConflict is
	// returned and the enclosing transaction must be aborted and retried.
	DeductGuarded(ctx context.Context, batchID uuid.UUID, qty decimal.Decimal) error

	// Save creates or updates a batch
	Save(ctx context.Context, batch *Batch) error

	// Delete removes a batch (administrative action, never used by allocation)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindExpiringWithin finds batches with stock expiring on or before the cutoff
	FindExpiringWithin(ctx context.Context, cutoff time.Time) ([]Batch, error)

	// FindLatestByMedicine returns the most recently purchased batch for a
	// medicine (falling back to latest expiry when purchase dates tie)
	FindLatestByMedicine(ctx context.Context, medicineID uuid.UUID) (*Batch, error)

	// SummarizeStock returns total on-hand quantity per medicine
	SummarizeStock(ctx context.Context) ([]StockSummary, error)

	// Count counts batches matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StockSummary is the aggregate on-hand quantity for one medicine
type StockSummary struct {
	MedicineID    uuid.UUID       `json:"medicine_id"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}
