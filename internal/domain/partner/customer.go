package partner

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

var customerCodePattern = regexp.MustCompile(`^CUST-\d{4,}$`)

// Customer is the aggregate root for walk-in and registered buyers.
// TotalOrders and TotalSpent are denormalized counters maintained by the
// sale and bill workflows; Recompute restores them from the source records
// when they drift.
type Customer struct {
	shared.BaseAggregateRoot
	Code        string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_customer_code"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Phone       string          `gorm:"type:varchar(50);index"`
	Email       string          `gorm:"type:varchar(200);index"`
	Address     string          `gorm:"type:text"`
	Status      CustomerStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	TotalOrders int             `gorm:"not null;default:0"`
	TotalSpent  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// FormatCustomerCode renders a sequence number as a customer code,
// e.g. 1 -> CUST-0001.
func FormatCustomerCode(seq int64) string {
	return fmt.Sprintf("CUST-%04d", seq)
}

// NewCustomer creates a new customer with the given code
func NewCustomer(code, name, phone string) (*Customer, error) {
	if !customerCodePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_CODE", "Customer code must match CUST-NNNN")
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              strings.TrimSpace(name),
		Phone:             phone,
		Status:            CustomerStatusActive,
		TotalSpent:        decimal.Zero,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's contact information
func (c *Customer) Update(name, phone, email, address string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.Name = strings.TrimSpace(name)
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// RecordOrder bumps the denormalized counters for a committed bill or sale
func (c *Customer) RecordOrder(amount decimal.Decimal) {
	c.TotalOrders++
	c.TotalSpent = c.TotalSpent.Add(amount)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// ReverseOrder unwinds the counters when a bill is deleted. Both counters
// are floored at zero so a reversal can never leave them negative.
func (c *Customer) ReverseOrder(amount decimal.Decimal) {
	c.TotalOrders--
	if c.TotalOrders < 0 {
		c.TotalOrders = 0
	}
	c.TotalSpent = c.TotalSpent.Sub(amount)
	if c.TotalSpent.IsNegative() {
		c.TotalSpent = decimal.Zero
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Recompute overwrites the counters with values rebuilt from source records
func (c *Customer) Recompute(orders int, spent decimal.Decimal) {
	if orders < 0 {
		orders = 0
	}
	if spent.IsNegative() {
		spent = decimal.Zero
	}
	c.TotalOrders = orders
	c.TotalSpent = spent
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Deactivate hides the customer from new sales
func (c *Customer) Deactivate() {
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate re-enables the customer
func (c *Customer) Activate() {
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validatePartnerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
