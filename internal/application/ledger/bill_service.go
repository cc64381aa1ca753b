package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/billing"
	"github.com/pharmaledger/backend/internal/domain/inventory"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillLineRequest is one requested line of a point-of-sale bill. BatchID is
// set when the operator picked a specific batch; free-form lines leave it
// nil and move no stock.
type BillLineRequest struct {
	MedicineID  *uuid.UUID
	BatchID     *uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	MRP         decimal.Decimal
	DiscountPct decimal.Decimal
	GSTPct      decimal.Decimal
}

// BillRequest is a validated request to record a bill
type BillRequest struct {
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerPhone string
	PaymentMethod string
	BillDate      time.Time
	Lines         []BillLineRequest
}

// BillService coordinates the operator-driven billing path: the chosen
// batches are deducted directly (no FEFO ordering), totals come from the
// billing calculator, and the daily bill number, stock movement and
// customer counters commit atomically.
type BillService struct {
	scope  Scope
	logger *zap.Logger
}

// NewBillService creates a BillService
func NewBillService(scope Scope, logger *zap.Logger) *BillService {
	return &BillService{scope: scope, logger: logger}
}

func (r BillLineRequest) lineInput() billing.LineInput {
	return billing.LineInput{
		ProductName: r.ProductName,
		MRP:         r.MRP,
		Quantity:    r.Quantity,
		DiscountPct: r.DiscountPct,
		GSTPct:      r.GSTPct,
	}
}

// RecordBill executes one bill as an atomic ledger transaction
func (s *BillService) RecordBill(ctx context.Context, req BillRequest) (*trade.Bill, error) {
	validReqs := make([]BillLineRequest, 0, len(req.Lines))
	validLines := make([]billing.LineInput, 0, len(req.Lines))
	for _, lr := range req.Lines {
		if line := lr.lineInput(); billing.ValidLine(line) {
			validReqs = append(validReqs, lr)
			validLines = append(validLines, line)
		}
	}
	if len(validReqs) == 0 {
		return nil, shared.ErrNoValidItems
	}
	totals, _, err := billing.ComputeTotals(validLines)
	if err != nil {
		return nil, err
	}

	billDate := req.BillDate
	if billDate.IsZero() {
		billDate = time.Now()
	}

	var bill *trade.Bill
	err = s.scope.Execute(ctx, func(repos Repositories) error {
		seq, err := repos.Bills().NextDailySequence(ctx, billDate)
		if err != nil {
			return err
		}
		bill, err = trade.NewBill(trade.FormatBillNumber(billDate, seq),
			req.CustomerID, req.CustomerName, req.CustomerPhone, req.PaymentMethod, billDate)
		if err != nil {
			return err
		}

		for _, lr := range validReqs {
			batchNo := ""
			if lr.BatchID != nil {
				batch, err := repos.Batches().FindByID(ctx, *lr.BatchID)
				if err != nil {
					return err
				}
				if batch.Quantity.LessThan(lr.Quantity) {
					return inventory.NewInsufficientStockError(batch.MedicineID, lr.Quantity, lr.Quantity.Sub(batch.Quantity))
				}
				if err := repos.Batches().DeductGuarded(ctx, batch.ID, lr.Quantity); err != nil {
					return err
				}
				batchNo = batch.BatchNo
			}
			if err := bill.AddItem(lr.MedicineID, lr.BatchID, batchNo, lr.lineInput()); err != nil {
				return err
			}
		}
		bill.SealTotals(totals)

		if err := repos.Bills().Save(ctx, bill); err != nil {
			return err
		}

		if req.CustomerID != nil {
			customer, err := repos.Customers().FindByID(ctx, *req.CustomerID)
			if err != nil {
				return err
			}
			customer.RecordOrder(bill.GrandTotal)
			return repos.Customers().Save(ctx, customer)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bill committed",
		zap.String("bill_number", bill.BillNumber),
		zap.String("grand_total", bill.GrandTotal.String()))

	return bill, nil
}

// DeleteBill removes a committed bill and reverses the customer counters.
// Deducted batch quantities are NOT restored; stock corrections go through
// manual adjustment entries.
func (s *BillService) DeleteBill(ctx context.Context, billID uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		bill, err := repos.Bills().FindByID(ctx, billID)
		if err != nil {
			return err
		}

		if bill.CustomerID != nil {
			customer, err := repos.Customers().FindByID(ctx, *bill.CustomerID)
			if err != nil {
				return err
			}
			customer.ReverseOrder(bill.GrandTotal)
			if err := repos.Customers().Save(ctx, customer); err != nil {
				return err
			}
		}

		return repos.Bills().Delete(ctx, billID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("bill deleted", zap.String("bill_id", billID.String()))
	return nil
}
