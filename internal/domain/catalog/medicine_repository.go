package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
)

// MedicineRepository defines persistence operations for medicines
type MedicineRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Medicine, error)
	FindByName(ctx context.Context, name string) (*Medicine, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Medicine], error)
	FindByCategory(ctx context.Context, category string, filter shared.Filter) (*shared.Paginated[Medicine], error)
	Save(ctx context.Context, medicine *Medicine) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
