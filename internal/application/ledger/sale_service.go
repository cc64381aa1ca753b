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

// SaleLineRequest is one requested line of a FEFO sale
type SaleLineRequest struct {
	MedicineID   uuid.UUID
	MedicineName string
	Quantity     decimal.Decimal
	MRP          decimal.Decimal
	DiscountPct  decimal.Decimal
	GSTPct       decimal.Decimal
}

// SaleRequest is a validated request to record a sale
type SaleRequest struct {
	CustomerID    *uuid.UUID
	CustomerName  string
	PaymentMethod string
	SaleDate      time.Time
	Lines         []SaleLineRequest
}

// SaleResult is the outcome of a recorded sale. InvoiceErr carries an
// *InvoiceGenerationError when rendering failed after the sale committed.
type SaleResult struct {
	Sale       *trade.Sale
	Invoice    *trade.Invoice
	InvoiceErr error
}

// InvoiceRenderer produces the durable invoice document for a committed
// sale and returns a retrievable path for it.
type InvoiceRenderer interface {
	Render(ctx context.Context, sale *trade.Sale, invoice *trade.Invoice) (string, error)
}

// SaleService coordinates the FEFO sale transaction: per-line allocation,
// sale aggregate persistence, customer counters and the invoice shell all
// commit or roll back together. Invoice rendering happens after commit and
// may fail without touching the sale.
type SaleService struct {
	scope     Scope
	allocator *inventory.Allocator
	invoices  trade.InvoiceRepository
	renderer  InvoiceRenderer
	logger    *zap.Logger
}

// NewSaleService creates a SaleService
func NewSaleService(scope Scope, invoices trade.InvoiceRepository, renderer InvoiceRenderer, logger *zap.Logger) *SaleService {
	return &SaleService{
		scope:     scope,
		allocator: inventory.NewAllocator(),
		invoices:  invoices,
		renderer:  renderer,
		logger:    logger,
	}
}

func (r SaleLineRequest) lineInput() billing.LineInput {
	return billing.LineInput{
		ProductName: r.MedicineName,
		MRP:         r.MRP,
		Quantity:    r.Quantity,
		DiscountPct: r.DiscountPct,
		GSTPct:      r.GSTPct,
	}
}

// RecordSale executes one sale as an atomic ledger transaction. Any line
// that cannot be fully allocated aborts everything; no batch deduction or
// sale record survives a failure.
func (s *SaleService) RecordSale(ctx context.Context, req SaleRequest) (*SaleResult, error) {
	validReqs := make([]SaleLineRequest, 0, len(req.Lines))
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

	var sale *trade.Sale
	var invoice *trade.Invoice

	err = s.scope.Execute(ctx, func(repos Repositories) error {
		sale = trade.NewSale(req.CustomerID, req.CustomerName, req.PaymentMethod, req.SaleDate)

		for _, lr := range validReqs {
			records, err := s.allocator.Allocate(ctx, repos.Batches(), lr.MedicineID, lr.Quantity)
			if err != nil {
				return err
			}
			if err := sale.AddItem(lr.MedicineID, lr.MedicineName, lr.lineInput(), records); err != nil {
				return err
			}
		}
		sale.SealTotals(totals)

		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}

		if req.CustomerID != nil {
			customer, err := repos.Customers().FindByID(ctx, *req.CustomerID)
			if err != nil {
				return err
			}
			customer.RecordOrder(sale.GrandTotal)
			if err := repos.Customers().Save(ctx, customer); err != nil {
				return err
			}
		}

		seq, err := repos.Invoices().NextSequence(ctx)
		if err != nil {
			return err
		}
		invoice, err = trade.NewInvoice(sale.ID, trade.FormatInvoiceNumber(seq))
		if err != nil {
			return err
		}
		return repos.Invoices().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale committed",
		zap.String("sale_id", sale.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("grand_total", sale.GrandTotal.String()))

	result := &SaleResult{Sale: sale, Invoice: invoice}
	result.InvoiceErr = s.generateInvoice(ctx, sale, invoice)
	return result, nil
}

// generateInvoice renders and stores the invoice document after the sale
// has committed. Failures are recorded on the invoice row and surfaced as
// a partial-success error, never as a sale failure.
func (s *SaleService) generateInvoice(ctx context.Context, sale *trade.Sale, invoice *trade.Invoice) error {
	path, err := s.renderer.Render(ctx, sale, invoice)
	if err != nil {
		s.logger.Warn("invoice generation failed",
			zap.String("invoice_number", invoice.InvoiceNumber),
			zap.Error(err))
		invoice.MarkFailed(err.Error())
		if saveErr := s.invoices.Save(ctx, invoice); saveErr != nil {
			s.logger.Error("failed to record invoice failure", zap.Error(saveErr))
		}
		return &InvoiceGenerationError{SaleID: sale.ID, InvoiceNumber: invoice.InvoiceNumber, Err: err}
	}

	if err := invoice.MarkGenerated(path); err != nil {
		return &InvoiceGenerationError{SaleID: sale.ID, InvoiceNumber: invoice.InvoiceNumber, Err: err}
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return &InvoiceGenerationError{SaleID: sale.ID, InvoiceNumber: invoice.InvoiceNumber, Err: err}
	}
	return nil
}

// RetryInvoice re-attempts document generation for a sale whose invoice is
// pending or failed.
func (s *SaleService) RetryInvoice(ctx context.Context, saleID uuid.UUID) (*trade.Invoice, error) {
	invoice, err := s.invoices.FindBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if !invoice.CanRetry() {
		return invoice, nil
	}

	var sale *trade.Sale
	if err := s.scope.Execute(ctx, func(repos Repositories) error {
		sale, err = repos.Sales().FindByID(ctx, saleID)
		return err
	}); err != nil {
		return nil, err
	}

	if genErr := s.generateInvoice(ctx, sale, invoice); genErr != nil {
		return invoice, genErr
	}
	return invoice, nil
}

// PreviewAllocation shows what a FEFO allocation would take without
// deducting anything.
func (s *SaleService) PreviewAllocation(ctx context.Context, medicineID uuid.UUID, quantity decimal.Decimal) (*inventory.AllocationPreview, error) {
	var preview *inventory.AllocationPreview
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		preview, err = s.allocator.Preview(ctx, repos.Batches(), medicineID, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return preview, nil
}
