package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
)

// Repository defines persistence operations for notifications
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	// FindPending returns up to limit pending notifications, oldest first
	FindPending(ctx context.Context, limit int) ([]*Notification, error)
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) (*shared.Paginated[Notification], error)
	Save(ctx context.Context, n *Notification) error
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
