package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByCode(ctx context.Context, code string) (*Customer, error)
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Customer], error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// NextCodeSequence returns the next value of the customer code sequence.
	// Implementations must make this safe under concurrent registration.
	NextCodeSequence(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// VendorRepository defines persistence operations for vendors
type VendorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	FindByName(ctx context.Context, name string) (*Vendor, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Vendor], error)
	FindWithOutstanding(ctx context.Context) ([]*Vendor, error)
	Save(ctx context.Context, vendor *Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
