package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormBillRepository implements trade.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

var billOrderColumns = map[string]bool{
	"bill_date":   true,
	"bill_number": true,
	"grand_total": true,
	"created_at":  true,
}

// FindByID finds a bill with its items
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Bill, error) {
	var bill trade.Bill
	if err := r.db.WithContext(ctx).Preload("Items").First(&bill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindByNumber finds a bill by its bill number
func (r *GormBillRepository) FindByNumber(ctx context.Context, billNumber string) (*trade.Bill, error) {
	var bill trade.Bill
	if err := r.db.WithContext(ctx).Preload("Items").
		First(&bill, "bill_number = ?", billNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindAll returns a page of bills with their items
func (r *GormBillRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[trade.Bill], error) {
	query := r.db.WithContext(ctx).Model(&trade.Bill{}).Preload("Items")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("bill_number LIKE ? OR customer_name LIKE ?", pattern, pattern)
	}
	query = applyOrder(query, filter, billOrderColumns, "bill_date DESC")
	return findPage[trade.Bill](query, filter)
}

// FindByDateRange returns bills whose bill date falls inside [from, to]
func (r *GormBillRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*trade.Bill, error) {
	var bills []*trade.Bill
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("bill_date >= ? AND bill_date <= ?", from, to).
		Order("bill_date ASC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// Save creates or updates a bill with its items
func (r *GormBillRepository) Save(ctx context.Context, bill *trade.Bill) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(bill).Error
}

// Delete removes a bill and its items
func (r *GormBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&trade.BillItem{}, "bill_id = ?", id).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&trade.Bill{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// NextDailySequence returns the next bill sequence for the given day. Each
// day gets its own counter row so numbering restarts at 0001 every morning.
func (r *GormBillRepository) NextDailySequence(ctx context.Context, day time.Time) (int64, error) {
	return nextSequence(ctx, r.db, fmt.Sprintf("bill:%s", day.Format("20060102")))
}

// Count counts all bills
func (r *GormBillRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&trade.Bill{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormBillRepository implements BillRepository
var _ trade.BillRepository = (*GormBillRepository)(nil)
