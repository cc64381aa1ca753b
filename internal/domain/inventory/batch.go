package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Batch represents a receipted lot of a medicine with its own batch number,
// expiry date, cost and quantity. Batches are the unit of stock the FEFO
// allocator draws from. A batch whose quantity reaches zero stays on record
// for history but is excluded from allocation.
type Batch struct {
	shared.BaseEntity
	MedicineID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_batches_medicine_expiry,priority:1"`
	BatchNo           string          `gorm:"not null;index"` // lot number, not globally unique
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MRP               decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountPercent   decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	ExpiryDate        time.Time       `gorm:"not null;index:idx_batches_medicine_expiry,priority:2"`
	ManufacturingDate *time.Time
	PurchaseDate      time.Time
	VendorID          *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Batch) TableName() string {
	return "batches"
}

// NewBatch creates a new stock batch from a purchase receipt.
func NewBatch(
	medicineID uuid.UUID,
	batchNo string,
	quantity, unitCost, mrp decimal.Decimal,
	expiryDate time.Time,
	manufacturingDate *time.Time,
	purchaseDate time.Time,
	vendorID *uuid.UUID,
) (*Batch, error) {
	if medicineID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEDICINE", "Medicine ID cannot be empty")
	}
	if batchNo == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_NO", "Batch number is required")
	}
	if expiryDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_EXPIRY", "Expiry date is required")
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}
	return &Batch{
		BaseEntity:        shared.NewBaseEntity(),
		MedicineID:        medicineID,
		BatchNo:           batchNo,
		Quantity:          quantity,
		UnitCost:          unitCost,
		MRP:               mrp,
		ExpiryDate:        expiryDate,
		ManufacturingDate: manufacturingDate,
		PurchaseDate:      purchaseDate,
		VendorID:          vendorID,
	}, nil
}

// adjustmentExpiry is the placeholder expiry for manual adjustment entries,
// far enough out that they never surface in expiry sweeps.
var adjustmentExpiry = time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)

// NewAdjustmentBatch creates a correction entry for manual stock adjustments.
// The delta may be negative for losses and write-offs; the sign is not
// validated here - only the deduct path guards against quantities going
// below zero.
func NewAdjustmentBatch(medicineID uuid.UUID, quantityDelta decimal.Decimal) (*Batch, error) {
	if medicineID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEDICINE", "Medicine ID cannot be empty")
	}
	if quantityDelta.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment delta cannot be zero")
	}
	return &Batch{
		BaseEntity:   shared.NewBaseEntity(),
		MedicineID:   medicineID,
		BatchNo:      fmt.Sprintf("ADJ-%d", time.Now().UnixMilli()),
		Quantity:     quantityDelta,
		UnitCost:     decimal.Zero,
		MRP:          decimal.Zero,
		ExpiryDate:   adjustmentExpiry,
		PurchaseDate: time.Now(),
	}, nil
}

// IsExpired returns true if the batch has expired
func (b *Batch) IsExpired() bool {
	return b.ExpiryDate.Before(time.Now())
}

// WillExpireWithin returns true if the batch will expire within the given duration
func (b *Batch) WillExpireWithin(duration time.Duration) bool {
	return b.ExpiryDate.Before(time.Now().Add(duration))
}

// DaysUntilExpiry returns the number of days until expiry (negative if expired)
func (b *Batch) DaysUntilExpiry() int {
	return int(time.Until(b.ExpiryDate).Hours() / 24)
}

// HasStock returns true if the batch has available quantity
func (b *Batch) HasStock() bool {
	return b.Quantity.GreaterThan(decimal.Zero)
}

// Deduct reduces the batch quantity. The quantity on hand never goes
// negative: a deduction larger than the current quantity is rejected.
func (b *Batch) Deduct(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidQuantity
	}
	if quantity.GreaterThan(b.Quantity) {
		return NewInsufficientStockError(b.MedicineID, quantity, quantity.Sub(b.Quantity))
	}
	b.Quantity = b.Quantity.Sub(quantity)
	b.Touch()
	return nil
}

// Add increases the batch quantity (returns or corrections)
func (b *Batch) Add(quantity decimal.Decimal) {
	b.Quantity = b.Quantity.Add(quantity)
	b.Touch()
}

// TotalValue returns quantity * unit cost for this batch
func (b *Batch) TotalValue() decimal.Decimal {
	return b.Quantity.Mul(b.UnitCost)
}
