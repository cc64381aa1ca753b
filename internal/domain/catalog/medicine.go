package catalog

import (
	"strings"
	"time"

	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MedicineStatus represents the status of a medicine
type MedicineStatus string

const (
	MedicineStatusActive       MedicineStatus = "active"
	MedicineStatusInactive     MedicineStatus = "inactive"
	MedicineStatusDiscontinued MedicineStatus = "discontinued"
)

// Medicine represents a catalog entry for a stocked product. Stock levels
// live on batches, not here; the medicine carries identity, classification
// and the per-product low stock threshold.
type Medicine struct {
	shared.BaseAggregateRoot
	Name              string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_medicine_name"`
	GenericName       string          `gorm:"type:varchar(200);index"`
	Category          string          `gorm:"type:varchar(100);index"`
	Manufacturer      string          `gorm:"type:varchar(200)"`
	Unit              string          `gorm:"type:varchar(20);not null;default:'strip'"`
	RackLocation      string          `gorm:"type:varchar(50)"`
	Description       string          `gorm:"type:text"`
	DefaultGSTPct     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LowStockThreshold *int            `gorm:""` // nil falls back to the global setting
	Status            MedicineStatus  `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Medicine) TableName() string {
	return "medicines"
}

// NewMedicine creates a new medicine
func NewMedicine(name, unit string) (*Medicine, error) {
	if err := validateMedicineName(name); err != nil {
		return nil, err
	}
	if unit == "" {
		unit = "strip"
	}
	if len(unit) > 20 {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 20 characters")
	}

	medicine := &Medicine{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Unit:              unit,
		DefaultGSTPct:     decimal.Zero,
		Status:            MedicineStatusActive,
	}

	medicine.AddDomainEvent(NewMedicineCreatedEvent(medicine))

	return medicine, nil
}

// Update updates the medicine's basic information
func (m *Medicine) Update(name, genericName, category, manufacturer, description string) error {
	if err := validateMedicineName(name); err != nil {
		return err
	}
	if genericName != "" && len(genericName) > 200 {
		return shared.NewDomainError("INVALID_GENERIC_NAME", "Generic name cannot exceed 200 characters")
	}
	if category != "" && len(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}
	if manufacturer != "" && len(manufacturer) > 200 {
		return shared.NewDomainError("INVALID_MANUFACTURER", "Manufacturer cannot exceed 200 characters")
	}

	m.Name = strings.TrimSpace(name)
	m.GenericName = genericName
	m.Category = category
	m.Manufacturer = manufacturer
	m.Description = description
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMedicineUpdatedEvent(m))

	return nil
}

// SetRackLocation sets the shelf location used on pick lists
func (m *Medicine) SetRackLocation(location string) error {
	if location != "" && len(location) > 50 {
		return shared.NewDomainError("INVALID_RACK_LOCATION", "Rack location cannot exceed 50 characters")
	}

	m.RackLocation = location
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// SetDefaultGST sets the GST percentage applied when a bill line does not
// override it
func (m *Medicine) SetDefaultGST(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_GST", "GST percentage must be between 0 and 100")
	}

	m.DefaultGSTPct = pct
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// SetLowStockThreshold overrides the global low stock threshold for this
// medicine. Passing nil reverts to the global setting.
func (m *Medicine) SetLowStockThreshold(threshold *int) error {
	if threshold != nil && *threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}

	m.LowStockThreshold = threshold
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// Activate reactivates the medicine
func (m *Medicine) Activate() error {
	if m.Status == MedicineStatusDiscontinued {
		return shared.NewDomainError("MEDICINE_DISCONTINUED", "Discontinued medicines cannot be reactivated")
	}

	m.Status = MedicineStatusActive
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// Deactivate hides the medicine from sale without discontinuing it
func (m *Medicine) Deactivate() {
	m.Status = MedicineStatusInactive
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// Discontinue permanently retires the medicine
func (m *Medicine) Discontinue() {
	m.Status = MedicineStatusDiscontinued
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMedicineDiscontinuedEvent(m))
}

// IsSellable reports whether the medicine can appear on new sales
func (m *Medicine) IsSellable() bool {
	return m.Status == MedicineStatusActive
}

func validateMedicineName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Medicine name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Medicine name cannot exceed 200 characters")
	}
	return nil
}
