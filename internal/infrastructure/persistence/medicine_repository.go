package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/catalog"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMedicineRepository implements catalog.MedicineRepository using GORM
type GormMedicineRepository struct {
	db *gorm.DB
}

// NewGormMedicineRepository creates a new GormMedicineRepository
func NewGormMedicineRepository(db *gorm.DB) *GormMedicineRepository {
	return &GormMedicineRepository{db: db}
}

var medicineOrderColumns = map[string]bool{
	"name":       true,
	"category":   true,
	"created_at": true,
}

// FindByID finds a medicine by its ID
func (r *GormMedicineRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Medicine, error) {
	var medicine catalog.Medicine
	if err := r.db.WithContext(ctx).First(&medicine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &medicine, nil
}

// FindByName finds a medicine by its exact name
func (r *GormMedicineRepository) FindByName(ctx context.Context, name string) (*catalog.Medicine, error) {
	var medicine catalog.Medicine
	if err := r.db.WithContext(ctx).First(&medicine, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &medicine, nil
}

// FindAll returns a page of medicines, optionally narrowed by the search term
func (r *GormMedicineRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Medicine], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Medicine{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR generic_name LIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	query = applyOrder(query, filter, medicineOrderColumns, "name ASC")
	return findPage[catalog.Medicine](query, filter)
}

// FindByCategory returns a page of medicines in a category
func (r *GormMedicineRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) (*shared.Paginated[catalog.Medicine], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Medicine{}).
		Where("category = ?", category)
	query = applyOrder(query, filter, medicineOrderColumns, "name ASC")
	return findPage[catalog.Medicine](query, filter)
}

// Save creates or updates a medicine
func (r *GormMedicineRepository) Save(ctx context.Context, medicine *catalog.Medicine) error {
	return r.db.WithContext(ctx).Save(medicine).Error
}

// Delete deletes a medicine
func (r *GormMedicineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Medicine{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all medicines
func (r *GormMedicineRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Medicine{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName reports whether a medicine with the name already exists
func (r *GormMedicineRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Medicine{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormMedicineRepository implements MedicineRepository
var _ catalog.MedicineRepository = (*GormMedicineRepository)(nil)
