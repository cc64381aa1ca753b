package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

var saleOrderColumns = map[string]bool{
	"sale_date":   true,
	"grand_total": true,
	"created_at":  true,
}

// FindByID finds a sale with its items
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).Preload("Items").First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll returns a page of sales with their items
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[trade.Sale], error) {
	query := r.db.WithContext(ctx).Model(&trade.Sale{}).Preload("Items")
	query = applyOrder(query, filter, saleOrderColumns, "sale_date DESC")
	return findPage[trade.Sale](query, filter)
}

// FindByDateRange returns sales whose sale date falls inside [from, to]
func (r *GormSaleRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*trade.Sale, error) {
	var sales []*trade.Sale
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("sale_date >= ? AND sale_date <= ?", from, to).
		Order("sale_date ASC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// FindByCustomer returns a page of one customer's sales
func (r *GormSaleRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.Sale], error) {
	query := r.db.WithContext(ctx).Model(&trade.Sale{}).Preload("Items").
		Where("customer_id = ?", customerID)
	query = applyOrder(query, filter, saleOrderColumns, "sale_date DESC")
	return findPage[trade.Sale](query, filter)
}

// Save creates or updates a sale with its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(sale).Error
}

// Count counts all sales
func (r *GormSaleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&trade.Sale{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormSaleRepository implements SaleRepository
var _ trade.SaleRepository = (*GormSaleRepository)(nil)
