// Package partner implements customer and vendor use cases, including the
// counter reconciliation path that rebuilds denormalized totals from
// authoritative sale and bill history.
package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/partner"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service implements partner use cases
type Service struct {
	customers partner.CustomerRepository
	vendors   partner.VendorRepository
	sales     trade.SaleRepository
	bills     trade.BillRepository
	logger    *zap.Logger
}

// NewService creates a partner Service
func NewService(customers partner.CustomerRepository, vendors partner.VendorRepository, sales trade.SaleRepository, bills trade.BillRepository, logger *zap.Logger) *Service {
	return &Service{
		customers: customers,
		vendors:   vendors,
		sales:     sales,
		bills:     bills,
		logger:    logger,
	}
}

// RegisterCustomer creates a customer with the next generated code
func (s *Service) RegisterCustomer(ctx context.Context, name, phone string) (*partner.Customer, error) {
	if phone != "" {
		if existing, err := s.customers.FindByPhone(ctx, phone); err == nil && existing != nil {
			return nil, shared.ErrAlreadyExists
		}
	}

	seq, err := s.customers.NextCodeSequence(ctx)
	if err != nil {
		return nil, err
	}
	customer, err := partner.NewCustomer(partner.FormatCustomerCode(seq), name, phone)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer registered",
		zap.String("code", customer.Code),
		zap.String("name", customer.Name))

	return customer, nil
}

// RegisterVendor creates a vendor
func (s *Service) RegisterVendor(ctx context.Context, name, phone string) (*partner.Vendor, error) {
	if existing, err := s.vendors.FindByName(ctx, name); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	vendor, err := partner.NewVendor(name, phone)
	if err != nil {
		return nil, err
	}
	if err := s.vendors.Save(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.Info("vendor registered", zap.String("name", vendor.Name))

	return vendor, nil
}

// ReconcileCustomer rebuilds a customer's denormalized counters from the
// authoritative sale and bill history. The incremental counters drift only
// when something went wrong; this is the repair path.
func (s *Service) ReconcileCustomer(ctx context.Context, customerID uuid.UUID) (*partner.Customer, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	orders := 0
	spent := decimal.Zero

	from := time.Time{}
	to := time.Now().AddDate(0, 0, 1)
	sales, err := s.sales.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, sale := range sales {
		if sale.CustomerID != nil && *sale.CustomerID == customerID {
			orders++
			spent = spent.Add(sale.GrandTotal)
		}
	}
	bills, err := s.bills.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, bill := range bills {
		if bill.CustomerID != nil && *bill.CustomerID == customerID {
			orders++
			spent = spent.Add(bill.GrandTotal)
		}
	}

	customer.Recompute(orders, spent)
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer counters reconciled",
		zap.String("code", customer.Code),
		zap.Int("orders", orders),
		zap.String("spent", spent.String()))

	return customer, nil
}
