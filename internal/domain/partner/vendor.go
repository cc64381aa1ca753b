package partner

import (
	"strings"
	"time"

	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// VendorStatus represents the status of a vendor
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "active"
	VendorStatusInactive VendorStatus = "inactive"
)

// Vendor is the aggregate root for suppliers. OutstandingBalance tracks
// unpaid purchase amounts and is adjusted by the purchase and payment
// workflows.
type Vendor struct {
	shared.BaseAggregateRoot
	Name               string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_vendor_name"`
	ContactName        string          `gorm:"type:varchar(100)"`
	Phone              string          `gorm:"type:varchar(50);index"`
	Email              string          `gorm:"type:varchar(200)"`
	Address            string          `gorm:"type:text"`
	GSTIN              string          `gorm:"type:varchar(20)"`
	Status             VendorStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	OutstandingBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes              string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor
func NewVendor(name, phone string) (*Vendor, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	vendor := &Vendor{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Name:               strings.TrimSpace(name),
		Phone:              phone,
		Status:             VendorStatusActive,
		OutstandingBalance: decimal.Zero,
	}

	vendor.AddDomainEvent(NewVendorCreatedEvent(vendor))

	return vendor, nil
}

// Update updates the vendor's contact information
func (v *Vendor) Update(name, contactName, phone, email, address, gstin string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	if gstin != "" && len(gstin) > 20 {
		return shared.NewDomainError("INVALID_GSTIN", "GSTIN cannot exceed 20 characters")
	}

	v.Name = strings.TrimSpace(name)
	v.ContactName = contactName
	v.Phone = phone
	v.Email = email
	v.Address = address
	v.GSTIN = gstin
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// AddOutstanding increases the unpaid balance when a purchase is recorded
// with an amount still due
func (v *Vendor) AddOutstanding(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.ErrInvalidQuantity
	}

	v.OutstandingBalance = v.OutstandingBalance.Add(amount)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SettleOutstanding reduces the unpaid balance by a payment. The balance is
// floored at zero so an overpayment never flips it negative.
func (v *Vendor) SettleOutstanding(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidQuantity
	}

	v.OutstandingBalance = v.OutstandingBalance.Sub(amount)
	if v.OutstandingBalance.IsNegative() {
		v.OutstandingBalance = decimal.Zero
	}
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVendorPaymentRecordedEvent(v, amount))

	return nil
}

// Deactivate hides the vendor from new purchases
func (v *Vendor) Deactivate() {
	v.Status = VendorStatusInactive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// Activate re-enables the vendor
func (v *Vendor) Activate() {
	v.Status = VendorStatusActive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}
