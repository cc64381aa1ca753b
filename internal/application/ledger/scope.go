// Package ledger implements the transaction coordinator: each commercial
// operation (sale, bill, purchase) runs its stock movements, aggregate
// writes, and denormalized counter updates inside one atomic scope.
package ledger

import (
	"context"

	"github.com/pharmaledger/backend/internal/domain/inventory"
	"github.com/pharmaledger/backend/internal/domain/notification"
	"github.com/pharmaledger/backend/internal/domain/partner"
	"github.com/pharmaledger/backend/internal/domain/trade"
)

// Scope provides transactional access to the repositories a ledger
// operation touches. Execute runs the given function inside one database
// transaction; an error rolls everything back, including guarded batch
// deductions already applied.
type Scope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories bundles the transaction-scoped repositories. All of them
// share the same underlying transaction.
type Repositories interface {
	Batches() inventory.BatchRepository
	Sales() trade.SaleRepository
	Bills() trade.BillRepository
	Purchases() trade.PurchaseRepository
	Invoices() trade.InvoiceRepository
	Customers() partner.CustomerRepository
	Vendors() partner.VendorRepository
	Notifications() notification.Repository
}

// NoOpScope runs ledger operations without a real transaction. Used in
// tests where the fake repositories handle rollback assertions themselves.
type NoOpScope struct {
	batches       inventory.BatchRepository
	sales         trade.SaleRepository
	bills         trade.BillRepository
	purchases     trade.PurchaseRepository
	invoices      trade.InvoiceRepository
	customers     partner.CustomerRepository
	vendors       partner.VendorRepository
	notifications notification.Repository
}

// NewNoOpScope creates a NoOpScope over the given repositories
func NewNoOpScope(
	batches inventory.BatchRepository,
	sales trade.SaleRepository,
	bills trade.BillRepository,
	purchases trade.PurchaseRepository,
	invoices trade.InvoiceRepository,
	customers partner.CustomerRepository,
	vendors partner.VendorRepository,
	notifications notification.Repository,
) *NoOpScope {
	return &NoOpScope{
		batches:       batches,
		sales:         sales,
		bills:         bills,
		purchases:     purchases,
		invoices:      invoices,
		customers:     customers,
		vendors:       vendors,
		notifications: notifications,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s)
}

// Batches returns the batch repository
func (s *NoOpScope) Batches() inventory.BatchRepository { return s.batches }

// Sales returns the sale repository
func (s *NoOpScope) Sales() trade.SaleRepository { return s.sales }

// Bills returns the bill repository
func (s *NoOpScope) Bills() trade.BillRepository { return s.bills }

// Purchases returns the purchase repository
func (s *NoOpScope) Purchases() trade.PurchaseRepository { return s.purchases }

// Invoices returns the invoice repository
func (s *NoOpScope) Invoices() trade.InvoiceRepository { return s.invoices }

// Customers returns the customer repository
func (s *NoOpScope) Customers() partner.CustomerRepository { return s.customers }

// Vendors returns the vendor repository
func (s *NoOpScope) Vendors() partner.VendorRepository { return s.vendors }

// Notifications returns the notification repository
func (s *NoOpScope) Notifications() notification.Repository { return s.notifications }

var _ Scope = (*NoOpScope)(nil)
var _ Repositories = (*NoOpScope)(nil)
