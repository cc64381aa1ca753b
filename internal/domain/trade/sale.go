package trade

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/billing"
	"github.com/pharmaledger/backend/internal/domain/inventory"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AllocationRecords stores the batch allocations of a sale line as JSONB.
// They are written once at commit time and never recomputed, so a later
// batch cost change cannot alter a committed sale.
type AllocationRecords []inventory.AllocationRecord

// Value implements driver.Valuer
func (r AllocationRecords) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (r *AllocationRecords) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into AllocationRecords", value)
	}
	return json.Unmarshal(data, r)
}

// SaleItem is one line of a sale with its FEFO allocation inlined
type SaleItem struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	SaleID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	MedicineID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	MedicineName string            `gorm:"type:varchar(200);not null"`
	Quantity     decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	MRP          decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	DiscountPct  decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	GSTPct       decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	LineTotal    decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	CostTotal    decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Allocations  AllocationRecords `gorm:"type:jsonb"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// Sale is the aggregate for a FEFO-allocated sale. Totals are derived by the
// billing calculator at creation and stored for audit immutability.
type Sale struct {
	shared.BaseAggregateRoot
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName  string          `gorm:"type:varchar(200)"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalDiscount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalGST      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentMethod string          `gorm:"type:varchar(20);not null;default:'cash'"`
	SaleDate      time.Time       `gorm:"not null;index"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates an empty sale shell; lines are added with AddItem and the
// totals sealed with SealTotals before persisting.
func NewSale(customerID *uuid.UUID, customerName, paymentMethod string, saleDate time.Time) *Sale {
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}
	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		CustomerName:      customerName,
		Items:             make([]SaleItem, 0),
		Subtotal:          decimal.Zero,
		TotalDiscount:     decimal.Zero,
		TotalGST:          decimal.Zero,
		GrandTotal:        decimal.Zero,
		TotalCost:         decimal.Zero,
		PaymentMethod:     paymentMethod,
		SaleDate:          saleDate,
	}
}

// AddItem attaches an allocated line to the sale. The allocation records
// must cover exactly the line quantity; the allocator guarantees this, so a
// mismatch here means the caller bypassed it.
func (s *Sale) AddItem(medicineID uuid.UUID, medicineName string, line billing.LineInput, allocations []inventory.AllocationRecord) error {
	if medicineID == uuid.Nil {
		return shared.NewDomainError("INVALID_MEDICINE", "Medicine ID cannot be empty")
	}
	allocated := inventory.TotalQuantity(allocations)
	if !allocated.Equal(line.Quantity) {
		return shared.NewDomainError("ALLOCATION_MISMATCH",
			fmt.Sprintf("Allocated %s does not cover requested %s", allocated, line.Quantity))
	}

	amounts := billing.ComputeLine(line)
	s.Items = append(s.Items, SaleItem{
		ID:           uuid.New(),
		SaleID:       s.ID,
		MedicineID:   medicineID,
		MedicineName: line.ProductName,
		Quantity:     line.Quantity,
		MRP:          line.MRP,
		DiscountPct:  line.DiscountPct,
		GSTPct:       line.GSTPct,
		LineTotal:    amounts.LineTotal,
		CostTotal:    inventory.TotalCost(allocations),
		Allocations:  allocations,
		CreatedAt:    time.Now(),
	})
	return nil
}

// SealTotals stores the calculator output on the aggregate
func (s *Sale) SealTotals(totals billing.Totals) {
	s.Subtotal = totals.Subtotal
	s.TotalDiscount = totals.TotalDiscount
	s.TotalGST = totals.TotalGST
	s.GrandTotal = totals.GrandTotal

	cost := decimal.Zero
	for _, item := range s.Items {
		cost = cost.Add(item.CostTotal)
	}
	s.TotalCost = cost
	s.UpdatedAt = time.Now()

	s.AddDomainEvent(NewSaleCommittedEvent(s))
}

// Profit returns revenue minus allocated batch cost
func (s *Sale) Profit() decimal.Decimal {
	return s.GrandTotal.Sub(s.TotalCost)
}
