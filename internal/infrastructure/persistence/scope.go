package persistence

import (
	"context"

	"github.com/pharmaledger/backend/internal/application/ledger"
	"github.com/pharmaledger/backend/internal/domain/catalog"
	"github.com/pharmaledger/backend/internal/domain/inventory"
	"github.com/pharmaledger/backend/internal/domain/notification"
	"github.com/pharmaledger/backend/internal/domain/partner"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormScope implements ledger.Scope over a database transaction. Every
// repository handed to the callback shares the same *gorm.DB transaction,
// so an error from the callback rolls back everything it wrote, including
// guarded batch deductions.
type GormScope struct {
	db *gorm.DB
}

// NewGormScope creates a new GormScope
func NewGormScope(db *gorm.DB) *GormScope {
	return &GormScope{db: db}
}

// Execute runs fn inside one database transaction
func (s *GormScope) Execute(ctx context.Context, fn func(repos ledger.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepositories{tx: tx})
	})
}

// txRepositories builds repositories bound to one transaction
type txRepositories struct {
	tx *gorm.DB
}

func (r *txRepositories) Batches() inventory.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

func (r *txRepositories) Sales() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *txRepositories) Bills() trade.BillRepository {
	return NewGormBillRepository(r.tx)
}

func (r *txRepositories) Purchases() trade.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

func (r *txRepositories) Invoices() trade.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *txRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *txRepositories) Vendors() partner.VendorRepository {
	return NewGormVendorRepository(r.tx)
}

func (r *txRepositories) Notifications() notification.Repository {
	return NewGormNotificationRepository(r.tx)
}

// Medicines returns a catalog repository bound to the same transaction.
// Not part of ledger.Repositories; callers that need catalog writes inside
// a scope use the concrete type.
func (r *txRepositories) Medicines() catalog.MedicineRepository {
	return NewGormMedicineRepository(r.tx)
}

// Ensure GormScope implements Scope
var _ ledger.Scope = (*GormScope)(nil)
var _ ledger.Repositories = (*txRepositories)(nil)
