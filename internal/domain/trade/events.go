package trade

import (
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeSaleCommitted     = "trade.sale_committed"
	EventTypeBillCommitted     = "trade.bill_committed"
	EventTypePurchaseReceived  = "trade.purchase_received"
)

// SaleCommittedEvent is emitted when a sale's totals are sealed
type SaleCommittedEvent struct {
	shared.BaseDomainEvent
	GrandTotal decimal.Decimal `json:"grand_total"`
	ItemCount  int             `json:"item_count"`
}

// NewSaleCommittedEvent creates a SaleCommittedEvent
func NewSaleCommittedEvent(s *Sale) *SaleCommittedEvent {
	return &SaleCommittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCommitted, "Sale", s.ID),
		GrandTotal:      s.GrandTotal,
		ItemCount:       len(s.Items),
	}
}

// BillCommittedEvent is emitted when a bill's totals are sealed
type BillCommittedEvent struct {
	shared.BaseDomainEvent
	BillNumber string          `json:"bill_number"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// NewBillCommittedEvent creates a BillCommittedEvent
func NewBillCommittedEvent(b *Bill) *BillCommittedEvent {
	return &BillCommittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillCommitted, "Bill", b.ID),
		BillNumber:      b.BillNumber,
		GrandTotal:      b.GrandTotal,
	}
}

// PurchaseReceivedEvent is emitted when a purchase receipt is finalized
type PurchaseReceivedEvent struct {
	shared.BaseDomainEvent
	VendorName  string          `json:"vendor_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	DueAmount   decimal.Decimal `json:"due_amount"`
}

// NewPurchaseReceivedEvent creates a PurchaseReceivedEvent
func NewPurchaseReceivedEvent(p *Purchase) *PurchaseReceivedEvent {
	return &PurchaseReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseReceived, "Purchase", p.ID),
		VendorName:      p.VendorName,
		TotalAmount:     p.TotalAmount,
		DueAmount:       p.DueAmount,
	}
}
