package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

var purchaseOrderColumns = map[string]bool{
	"purchase_date": true,
	"total_amount":  true,
	"due_amount":    true,
	"created_at":    true,
}

// FindByID finds a purchase with its items and payment history
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").Preload("Payments").
		First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll returns a page of purchases
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[trade.Purchase], error) {
	query := r.db.WithContext(ctx).Model(&trade.Purchase{}).
		Preload("Items").Preload("Payments")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("vendor_name LIKE ? OR invoice_ref LIKE ?", pattern, pattern)
	}
	query = applyOrder(query, filter, purchaseOrderColumns, "purchase_date DESC")
	return findPage[trade.Purchase](query, filter)
}

// FindByVendor returns a page of one vendor's purchases
func (r *GormPurchaseRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.Purchase], error) {
	query := r.db.WithContext(ctx).Model(&trade.Purchase{}).
		Preload("Items").Preload("Payments").
		Where("vendor_id = ?", vendorID)
	query = applyOrder(query, filter, purchaseOrderColumns, "purchase_date DESC")
	return findPage[trade.Purchase](query, filter)
}

// FindWithDue returns purchases carrying an unpaid balance
func (r *GormPurchaseRepository) FindWithDue(ctx context.Context) ([]*trade.Purchase, error) {
	var purchases []*trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").Preload("Payments").
		Where("due_amount > 0").
		Order("purchase_date ASC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Save creates or updates a purchase with its items and payments
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(purchase).Error
}

// Count counts all purchases
func (r *GormPurchaseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&trade.Purchase{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)
