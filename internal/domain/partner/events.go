package partner

import (
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeCustomerCreated       = "partner.customer_created"
	EventTypeVendorCreated         = "partner.vendor_created"
	EventTypeVendorPaymentRecorded = "partner.vendor_payment_recorded"
)

// CustomerCreatedEvent is emitted when a customer is registered
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewCustomerCreatedEvent creates a CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, "Customer", c.ID),
		Code:            c.Code,
		Name:            c.Name,
	}
}

// VendorCreatedEvent is emitted when a vendor is registered
type VendorCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewVendorCreatedEvent creates a VendorCreatedEvent
func NewVendorCreatedEvent(v *Vendor) *VendorCreatedEvent {
	return &VendorCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorCreated, "Vendor", v.ID),
		Name:            v.Name,
	}
}

// VendorPaymentRecordedEvent is emitted when an outstanding balance payment
// is settled
type VendorPaymentRecordedEvent struct {
	shared.BaseDomainEvent
	Amount    decimal.Decimal `json:"amount"`
	Remaining decimal.Decimal `json:"remaining"`
}

// NewVendorPaymentRecordedEvent creates a VendorPaymentRecordedEvent
func NewVendorPaymentRecordedEvent(v *Vendor, amount decimal.Decimal) *VendorPaymentRecordedEvent {
	return &VendorPaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorPaymentRecorded, "Vendor", v.ID),
		Amount:          amount,
		Remaining:       v.OutstandingBalance,
	}
}
