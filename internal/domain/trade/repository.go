package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
)

// SaleRepository defines persistence operations for sales
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Sale], error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*Sale, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Sale], error)
	Save(ctx context.Context, sale *Sale) error
	Count(ctx context.Context) (int64, error)
}

// BillRepository defines persistence operations for bills
type BillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	FindByNumber(ctx context.Context, billNumber string) (*Bill, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Bill], error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*Bill, error)
	Save(ctx context.Context, bill *Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
	// NextDailySequence returns the next bill sequence for the given day.
	// Implementations must make this safe under concurrent billing.
	NextDailySequence(ctx context.Context, day time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// PurchaseRepository defines persistence operations for purchases
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Purchase], error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (*shared.Paginated[Purchase], error)
	FindWithDue(ctx context.Context) ([]*Purchase, error)
	Save(ctx context.Context, purchase *Purchase) error
	Count(ctx context.Context) (int64, error)
}

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindBySale(ctx context.Context, saleID uuid.UUID) (*Invoice, error)
	FindRetryable(ctx context.Context, limit int) ([]*Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	// NextSequence returns the next value of the global invoice sequence
	NextSequence(ctx context.Context) (int64, error)
}
