package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/inventory"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseLineRequest is one received line of a purchase
type PurchaseLineRequest struct {
	MedicineID        uuid.UUID
	MedicineName      string
	BatchNo           string
	Quantity          decimal.Decimal
	UnitCost          decimal.Decimal
	MRP               decimal.Decimal
	ExpiryDate        time.Time
	ManufacturingDate *time.Time
}

// PurchaseRequest is a validated request to record a purchase receipt
type PurchaseRequest struct {
	VendorID      uuid.UUID
	InvoiceRef    string
	PurchaseDate  time.Time
	PaidAmount    decimal.Decimal
	PaymentMethod string
	Lines         []PurchaseLineRequest
}

// PurchaseService coordinates purchase receipts: one new stock batch per
// received line, the purchase aggregate, and the vendor outstanding balance
// commit as a unit.
type PurchaseService struct {
	scope  Scope
	logger *zap.Logger
}

// NewPurchaseService creates a PurchaseService
func NewPurchaseService(scope Scope, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{scope: scope, logger: logger}
}

// RecordPurchase executes one purchase receipt as an atomic ledger
// transaction.
func (s *PurchaseService) RecordPurchase(ctx context.Context, req PurchaseRequest) (*trade.Purchase, error) {
	var purchase *trade.Purchase

	err := s.scope.Execute(ctx, func(repos Repositories) error {
		vendor, err := repos.Vendors().FindByID(ctx, req.VendorID)
		if err != nil {
			return err
		}

		purchase, err = trade.NewPurchase(req.VendorID, vendor.Name, req.InvoiceRef, req.PurchaseDate)
		if err != nil {
			return err
		}

		for _, lr := range req.Lines {
			batch, err := inventory.NewBatch(lr.MedicineID, lr.BatchNo,
				lr.Quantity, lr.UnitCost, lr.MRP,
				lr.ExpiryDate, lr.ManufacturingDate, purchase.PurchaseDate, &req.VendorID)
			if err != nil {
				return err
			}
			if err := repos.Batches().Save(ctx, batch); err != nil {
				return err
			}
			if err := purchase.AddItem(lr.MedicineID, batch.ID, lr.MedicineName, lr.BatchNo,
				lr.Quantity, lr.UnitCost, lr.MRP, lr.ExpiryDate); err != nil {
				return err
			}
		}

		if err := purchase.SetInitialPayment(req.PaidAmount, req.PaymentMethod); err != nil {
			return err
		}
		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}

		if purchase.DueAmount.IsPositive() {
			if err := vendor.AddOutstanding(purchase.DueAmount); err != nil {
				return err
			}
			return repos.Vendors().Save(ctx, vendor)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase received",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("vendor", purchase.VendorName),
		zap.String("total", purchase.TotalAmount.String()),
		zap.String("due", purchase.DueAmount.String()))

	return purchase, nil
}

// RecordPayment applies a payment to a purchase and settles the vendor's
// outstanding balance in the same transaction.
func (s *PurchaseService) RecordPayment(ctx context.Context, purchaseID uuid.UUID, amount decimal.Decimal, method, reference string) (*trade.Purchase, error) {
	var purchase *trade.Purchase

	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		purchase, err = repos.Purchases().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		if err := purchase.RecordPayment(amount, method, reference); err != nil {
			return err
		}
		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}

		vendor, err := repos.Vendors().FindByID(ctx, purchase.VendorID)
		if err != nil {
			return err
		}
		if err := vendor.SettleOutstanding(amount); err != nil {
			return err
		}
		return repos.Vendors().Save(ctx, vendor)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase payment recorded",
		zap.String("purchase_id", purchaseID.String()),
		zap.String("amount", amount.String()))

	return purchase, nil
}
