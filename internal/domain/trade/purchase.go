package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseItem is one received line of a purchase. Each item becomes a new
// stock batch; BatchID links back to the created batch.
type PurchaseItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	MedicineID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	MedicineName string          `gorm:"type:varchar(200);not null"`
	BatchID      uuid.UUID       `gorm:"type:uuid;not null"`
	BatchNo      string          `gorm:"type:varchar(100);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	MRP          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExpiryDate   time.Time       `gorm:"not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// PaymentRecord is one payment applied against a purchase
type PaymentRecord struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method     string          `gorm:"type:varchar(20);not null;default:'cash'"`
	Reference  string          `gorm:"type:varchar(100)"`
	PaidAt     time.Time       `gorm:"not null"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (PaymentRecord) TableName() string {
	return "purchase_payments"
}

// Purchase is the aggregate for a vendor receipt. DueAmount mirrors the
// vendor's outstanding balance contribution and is kept in sync inside the
// same ledger transaction.
type Purchase struct {
	shared.BaseAggregateRoot
	VendorID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendorName    string          `gorm:"type:varchar(200);not null"`
	InvoiceRef    string          `gorm:"type:varchar(100)"` // vendor's own invoice number
	Items         []PurchaseItem  `gorm:"foreignKey:PurchaseID"`
	Payments      []PaymentRecord `gorm:"foreignKey:PurchaseID"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DueAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PurchaseDate  time.Time       `gorm:"not null;index"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a purchase shell for a vendor
func NewPurchase(vendorID uuid.UUID, vendorName, invoiceRef string, purchaseDate time.Time) (*Purchase, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if vendorName == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	return &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          vendorID,
		VendorName:        vendorName,
		InvoiceRef:        invoiceRef,
		Items:             make([]PurchaseItem, 0),
		Payments:          make([]PaymentRecord, 0),
		TotalAmount:       decimal.Zero,
		PaidAmount:        decimal.Zero,
		DueAmount:         decimal.Zero,
		PurchaseDate:      purchaseDate,
	}, nil
}

// AddItem records one received line and its created batch
func (p *Purchase) AddItem(medicineID, batchID uuid.UUID, medicineName, batchNo string, quantity, unitCost, mrp decimal.Decimal, expiryDate time.Time) error {
	if medicineID == uuid.Nil {
		return shared.NewDomainError("INVALID_MEDICINE", "Medicine ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidQuantity
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if expiryDate.IsZero() {
		return shared.NewDomainError("INVALID_EXPIRY", "Expiry date is required")
	}

	amount := quantity.Mul(unitCost)
	p.Items = append(p.Items, PurchaseItem{
		ID:           uuid.New(),
		PurchaseID:   p.ID,
		MedicineID:   medicineID,
		MedicineName: medicineName,
		BatchID:      batchID,
		BatchNo:      batchNo,
		Quantity:     quantity,
		UnitCost:     unitCost,
		MRP:          mrp,
		ExpiryDate:   expiryDate,
		Amount:       amount,
		CreatedAt:    time.Now(),
	})
	p.TotalAmount = p.TotalAmount.Add(amount)
	p.DueAmount = p.TotalAmount.Sub(p.PaidAmount)
	p.UpdatedAt = time.Now()

	return nil
}

// SetInitialPayment records the amount paid at receipt time
func (p *Purchase) SetInitialPayment(amount decimal.Decimal, method string) error {
	if amount.IsNegative() {
		return shared.ErrInvalidQuantity
	}
	if amount.GreaterThan(p.TotalAmount) {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment cannot exceed total amount")
	}

	p.PaidAmount = amount
	p.DueAmount = p.TotalAmount.Sub(amount)
	if amount.IsPositive() {
		p.Payments = append(p.Payments, PaymentRecord{
			ID:         uuid.New(),
			PurchaseID: p.ID,
			Amount:     amount,
			Method:     defaultMethod(method),
			PaidAt:     time.Now(),
			CreatedAt:  time.Now(),
		})
	}
	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewPurchaseReceivedEvent(p))

	return nil
}

// RecordPayment applies a later payment against the due amount
func (p *Purchase) RecordPayment(amount decimal.Decimal, method, reference string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidQuantity
	}
	if amount.GreaterThan(p.DueAmount) {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment cannot exceed due amount")
	}

	p.PaidAmount = p.PaidAmount.Add(amount)
	p.DueAmount = p.DueAmount.Sub(amount)
	p.Payments = append(p.Payments, PaymentRecord{
		ID:         uuid.New(),
		PurchaseID: p.ID,
		Amount:     amount,
		Method:     defaultMethod(method),
		Reference:  reference,
		PaidAt:     time.Now(),
		CreatedAt:  time.Now(),
	})
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsSettled reports whether nothing remains due
func (p *Purchase) IsSettled() bool {
	return p.DueAmount.IsZero()
}

func defaultMethod(method string) string {
	if method == "" {
		return "cash"
	}
	return method
}
