package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/billing"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillItem is one line of a point-of-sale bill. The operator picks the batch
// explicitly, so the line carries a direct batch reference instead of FEFO
// allocation records.
type BillItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	MedicineID  *uuid.UUID      `gorm:"type:uuid;index"`
	BatchID     *uuid.UUID      `gorm:"type:uuid;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	BatchNo     string          `gorm:"type:varchar(100)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	MRP         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DiscountPct decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GSTPct      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (BillItem) TableName() string {
	return "bill_items"
}

// Bill is the aggregate for an operator-driven point-of-sale bill with a
// daily-sequenced bill number.
type Bill struct {
	shared.BaseAggregateRoot
	BillNumber    string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_bill_number"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName  string          `gorm:"type:varchar(200)"`
	CustomerPhone string          `gorm:"type:varchar(50)"`
	Items         []BillItem      `gorm:"foreignKey:BillID"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalDiscount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalGST      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null;default:'cash'"`
	BillDate      time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Bill) TableName() string {
	return "bills"
}

// FormatBillNumber renders the daily bill sequence, e.g. 20260829-0001.
// The sequence resets each day; the repository owns the per-day counter.
func FormatBillNumber(date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%04d", date.Format("20060102"), seq)
}

// NewBill creates a bill shell with its assigned number
func NewBill(billNumber string, customerID *uuid.UUID, customerName, customerPhone, paymentMethod string, billDate time.Time) (*Bill, error) {
	if billNumber == "" {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot be empty")
	}
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	if billDate.IsZero() {
		billDate = time.Now()
	}

	return &Bill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillNumber:        billNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		CustomerPhone:     customerPhone,
		Items:             make([]BillItem, 0),
		Subtotal:          decimal.Zero,
		TotalDiscount:     decimal.Zero,
		TotalGST:          decimal.Zero,
		GrandTotal:        decimal.Zero,
		PaymentMethod:     paymentMethod,
		BillDate:          billDate,
	}, nil
}

// AddItem attaches a validated line to the bill. Batch references are
// optional: a free-form line (service charge, unstocked item) carries none.
func (b *Bill) AddItem(medicineID, batchID *uuid.UUID, batchNo string, line billing.LineInput) error {
	if !billing.ValidLine(line) {
		return shared.ErrNoValidItems
	}

	amounts := billing.ComputeLine(line)
	b.Items = append(b.Items, BillItem{
		ID:          uuid.New(),
		BillID:      b.ID,
		MedicineID:  medicineID,
		BatchID:     batchID,
		ProductName: line.ProductName,
		BatchNo:     batchNo,
		Quantity:    line.Quantity,
		MRP:         line.MRP,
		DiscountPct: line.DiscountPct,
		GSTPct:      line.GSTPct,
		LineTotal:   amounts.LineTotal,
		CreatedAt:   time.Now(),
	})
	return nil
}

// SealTotals stores the calculator output on the aggregate
func (b *Bill) SealTotals(totals billing.Totals) {
	b.Subtotal = totals.Subtotal
	b.TotalDiscount = totals.TotalDiscount
	b.TotalGST = totals.TotalGST
	b.GrandTotal = totals.GrandTotal
	b.UpdatedAt = time.Now()

	b.AddDomainEvent(NewBillCommittedEvent(b))
}
