// Package inventory exposes the stock-keeping use cases built on the batch
// store: receiving batches outside a purchase, manual adjustments, and the
// read queries the alert sweeps and reports consume.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/catalog"
	"github.com/pharmaledger/backend/internal/domain/inventory"
	"github.com/pharmaledger/backend/internal/domain/settings"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AddBatchRequest is a validated request to add a stock batch directly
type AddBatchRequest struct {
	MedicineID        uuid.UUID
	BatchNo           string
	Quantity          decimal.Decimal
	UnitCost          decimal.Decimal
	MRP               decimal.Decimal
	ExpiryDate        time.Time
	ManufacturingDate *time.Time
	PurchaseDate      time.Time
	VendorID          *uuid.UUID
}

// LowStockItem is one medicine whose on-hand total is at or below its
// effective threshold
type LowStockItem struct {
	MedicineID    uuid.UUID       `json:"medicine_id"`
	MedicineName  string          `json:"medicine_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	Threshold     int             `json:"threshold"`
}

// Service implements inventory use cases over the batch store
type Service struct {
	batches   inventory.BatchRepository
	medicines catalog.MedicineRepository
	settings  settings.Repository
	logger    *zap.Logger
}

// NewService creates an inventory Service
func NewService(batches inventory.BatchRepository, medicines catalog.MedicineRepository, settingsRepo settings.Repository, logger *zap.Logger) *Service {
	return &Service{
		batches:   batches,
		medicines: medicines,
		settings:  settingsRepo,
		logger:    logger,
	}
}

// AddBatch receives a batch outside the purchase workflow
func (s *Service) AddBatch(ctx context.Context, req AddBatchRequest) (*inventory.Batch, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidQuantity
	}

	batch, err := inventory.NewBatch(req.MedicineID, req.BatchNo,
		req.Quantity, req.UnitCost, req.MRP,
		req.ExpiryDate, req.ManufacturingDate, req.PurchaseDate, req.VendorID)
	if err != nil {
		return nil, err
	}
	if err := s.batches.Save(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info("batch added",
		zap.String("medicine_id", req.MedicineID.String()),
		zap.String("batch_no", req.BatchNo),
		zap.String("quantity", req.Quantity.String()))

	return batch, nil
}

// AdjustStock records a manual correction as an adjustment batch. The delta
// may be negative for losses and write-offs; zero deltas are rejected.
func (s *Service) AdjustStock(ctx context.Context, medicineID uuid.UUID, delta decimal.Decimal) (*inventory.Batch, error) {
	batch, err := inventory.NewAdjustmentBatch(medicineID, delta)
	if err != nil {
		return nil, err
	}
	if err := s.batches.Save(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("medicine_id", medicineID.String()),
		zap.String("delta", delta.String()))

	return batch, nil
}

// ExpiringStock returns batches with stock expiring within the configured
// alert window (or the given override when days > 0).
func (s *Service) ExpiringStock(ctx context.Context, days int) ([]inventory.Batch, error) {
	if days <= 0 {
		cfg, err := s.settings.Load(ctx)
		if err != nil {
			return nil, err
		}
		days = cfg.ExpiryAlertDays
	}
	return s.batches.FindExpiringWithin(ctx, time.Now().AddDate(0, 0, days))
}

// LowStock returns medicines whose on-hand total is at or below their
// effective threshold (per-medicine override, else the global setting).
func (s *Service) LowStock(ctx context.Context) ([]LowStockItem, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	summaries, err := s.batches.SummarizeStock(ctx)
	if err != nil {
		return nil, err
	}

	var out []LowStockItem
	for _, summary := range summaries {
		medicine, err := s.medicines.FindByID(ctx, summary.MedicineID)
		if err != nil {
			continue
		}
		threshold := cfg.ThresholdFor(medicine.LowStockThreshold)
		if summary.TotalQuantity.LessThanOrEqual(decimal.NewFromInt(int64(threshold))) {
			out = append(out, LowStockItem{
				MedicineID:    summary.MedicineID,
				MedicineName:  medicine.Name,
				TotalQuantity: summary.TotalQuantity,
				Threshold:     threshold,
			})
		}
	}
	return out, nil
}

// StockSummary returns the on-hand total per medicine
func (s *Service) StockSummary(ctx context.Context) ([]inventory.StockSummary, error) {
	return s.batches.SummarizeStock(ctx)
}

// BatchesForMedicine lists the batches of one medicine
func (s *Service) BatchesForMedicine(ctx context.Context, medicineID uuid.UUID, filter shared.Filter) ([]inventory.Batch, error) {
	return s.batches.FindByMedicine(ctx, medicineID, filter)
}
