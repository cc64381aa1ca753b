package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/inventory"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBatchRepository implements inventory.BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

var batchOrderColumns = map[string]bool{
	"expiry_date":   true,
	"purchase_date": true,
	"quantity":      true,
	"created_at":    true,
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	var batch inventory.Batch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByMedicine finds all batches for a medicine
func (r *GormBatchRepository) FindByMedicine(ctx context.Context, medicineID uuid.UUID, filter shared.Filter) ([]inventory.Batch, error) {
	var batches []inventory.Batch
	query := r.db.WithContext(ctx).Model(&inventory.Batch{}).
		Where("medicine_id = ?", medicineID)
	query = applyOrder(query, filter, batchOrderColumns, "expiry_date ASC, purchase_date ASC, id ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindAllocatable returns batches with stock for a medicine in allocation
// order: expiry ascending, then purchase date, then ID for a stable
// tie-break.
func (r *GormBatchRepository) FindAllocatable(ctx context.Context, medicineID uuid.UUID) ([]inventory.Batch, error) {
	var batches []inventory.Batch
	if err := r.db.WithContext(ctx).
		Where("medicine_id = ? AND quantity > 0", medicineID).
		Order("expiry_date ASC, purchase_date ASC, id ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// DeductGuarded decrements a batch quantity with a conditional update. The
// quantity >= ? predicate makes the deduct safe under concurrency: when a
// parallel transaction drained the batch first, zero rows match and the
// caller gets shared.ErrStockConflict to abort and retry on.
func (r *GormBatchRepository) DeductGuarded(ctx context.Context, batchID uuid.UUID, qty decimal.Decimal) error {
	if qty.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidQuantity
	}
	result := r.db.WithContext(ctx).Model(&inventory.Batch{}).
		Where("id = ? AND quantity >= ?", batchID, qty).
		UpdateColumns(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrStockConflict
	}
	return nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *inventory.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// Delete deletes a batch
func (r *GormBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Batch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindExpiringWithin finds batches with stock expiring on or before the cutoff
func (r *GormBatchRepository) FindExpiringWithin(ctx context.Context, cutoff time.Time) ([]inventory.Batch, error) {
	var batches []inventory.Batch
	if err := r.db.WithContext(ctx).
		Where("quantity > 0 AND expiry_date <= ?", cutoff).
		Order("expiry_date ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindLatestByMedicine returns the most recently purchased batch for a medicine
func (r *GormBatchRepository) FindLatestByMedicine(ctx context.Context, medicineID uuid.UUID) (*inventory.Batch, error) {
	var batch inventory.Batch
	if err := r.db.WithContext(ctx).
		Where("medicine_id = ?", medicineID).
		Order("purchase_date DESC, expiry_date DESC").
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// SummarizeStock returns total on-hand quantity per medicine
func (r *GormBatchRepository) SummarizeStock(ctx context.Context) ([]inventory.StockSummary, error) {
	var summaries []inventory.StockSummary
	if err := r.db.WithContext(ctx).Model(&inventory.Batch{}).
		Select("medicine_id, SUM(quantity) AS total_quantity").
		Group("medicine_id").
		Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// Count counts batches matching the filter
func (r *GormBatchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.Batch{})
	if medicineID, ok := filter.Filters["medicine_id"]; ok {
		query = query.Where("medicine_id = ?", medicineID)
	}
	if hasStock, ok := filter.Filters["has_stock"]; ok && hasStock == true {
		query = query.Where("quantity > 0")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormBatchRepository implements BatchRepository
var _ inventory.BatchRepository = (*GormBatchRepository)(nil)
