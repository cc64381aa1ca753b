package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/notification"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID finds a notification by its ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var n notification.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// FindPending returns up to limit pending notifications, oldest first
func (r *GormNotificationRepository) FindPending(ctx context.Context, limit int) ([]*notification.Notification, error) {
	var pending []*notification.Notification
	if err := r.db.WithContext(ctx).
		Where("status = ?", notification.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&pending).Error; err != nil {
		return nil, err
	}
	return pending, nil
}

// FindByStatus returns a page of notifications in the given status
func (r *GormNotificationRepository) FindByStatus(ctx context.Context, status notification.Status, filter shared.Filter) (*shared.Paginated[notification.Notification], error) {
	query := r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("status = ?", status).
		Order("created_at DESC")
	return findPage[notification.Notification](query, filter)
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// CountByStatus counts notifications in the given status
func (r *GormNotificationRepository) CountByStatus(ctx context.Context, status notification.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormNotificationRepository implements Repository
var _ notification.Repository = (*GormNotificationRepository)(nil)
