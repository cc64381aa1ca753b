package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/partner"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormVendorRepository implements partner.VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

var vendorOrderColumns = map[string]bool{
	"name":                true,
	"outstanding_balance": true,
	"created_at":          true,
}

// FindByID finds a vendor by its ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	var vendor partner.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// FindByName finds a vendor by its exact name
func (r *GormVendorRepository) FindByName(ctx context.Context, name string) (*partner.Vendor, error) {
	var vendor partner.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// FindAll returns a page of vendors, optionally narrowed by the search term
func (r *GormVendorRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[partner.Vendor], error) {
	query := r.db.WithContext(ctx).Model(&partner.Vendor{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", pattern, pattern)
	}
	query = applyOrder(query, filter, vendorOrderColumns, "name ASC")
	return findPage[partner.Vendor](query, filter)
}

// FindWithOutstanding returns vendors carrying an unpaid balance
func (r *GormVendorRepository) FindWithOutstanding(ctx context.Context) ([]*partner.Vendor, error) {
	var vendors []*partner.Vendor
	if err := r.db.WithContext(ctx).
		Where("outstanding_balance > 0").
		Order("outstanding_balance DESC").
		Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

// Save creates or updates a vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// Delete deletes a vendor
func (r *GormVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Vendor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all vendors
func (r *GormVendorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&partner.Vendor{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormVendorRepository implements VendorRepository
var _ partner.VendorRepository = (*GormVendorRepository)(nil)
