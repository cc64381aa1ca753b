package scheduler

import (
	"context"
	"errors"

	inventoryapp "github.com/pharmaledger/backend/internal/application/inventory"
	"github.com/pharmaledger/backend/internal/application/ledger"
	notifyapp "github.com/pharmaledger/backend/internal/application/notify"
	"github.com/pharmaledger/backend/internal/domain/catalog"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// AlertSweeper bridges the stock views to the notification queue
type AlertSweeper struct {
	inventory *inventoryapp.Service
	medicines catalog.MedicineRepository
	notify    *notifyapp.Service
	logger    *zap.Logger
}

// NewAlertSweeper creates an AlertSweeper
func NewAlertSweeper(inventory *inventoryapp.Service, medicines catalog.MedicineRepository, notify *notifyapp.Service, logger *zap.Logger) *AlertSweeper {
	return &AlertSweeper{
		inventory: inventory,
		medicines: medicines,
		notify:    notify,
		logger:    logger,
	}
}

// SweepLowStock queues one alert per medicine at or under its threshold
func (s *AlertSweeper) SweepLowStock(ctx context.Context) error {
	items, err := s.inventory.LowStock(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if _, err := s.notify.QueueLowStockAlert(ctx, item.MedicineName, item.TotalQuantity.String(), item.Threshold); err != nil {
			s.logger.Error("failed to queue low stock alert",
				zap.String("medicine", item.MedicineName),
				zap.Error(err))
		}
	}
	if len(items) > 0 {
		s.logger.Info("low stock sweep finished", zap.Int("alerts", len(items)))
	}
	return nil
}

// SweepExpiry queues one alert per batch inside the expiry alert window.
// days 0 uses the configured window.
func (s *AlertSweeper) SweepExpiry(ctx context.Context) error {
	batches, err := s.inventory.ExpiringStock(ctx, 0)
	if err != nil {
		return err
	}
	for _, batch := range batches {
		name := batch.BatchNo
		medicine, err := s.medicines.FindByID(ctx, batch.MedicineID)
		if err == nil {
			name = medicine.Name
		} else if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("failed to resolve medicine for expiry alert", zap.Error(err))
			continue
		}
		if _, err := s.notify.QueueExpiryAlert(ctx, name, batch.BatchNo, batch.DaysUntilExpiry()); err != nil {
			s.logger.Error("failed to queue expiry alert",
				zap.String("batch_no", batch.BatchNo),
				zap.Error(err))
		}
	}
	if len(batches) > 0 {
		s.logger.Info("expiry sweep finished", zap.Int("alerts", len(batches)))
	}
	return nil
}

// InvoiceRetrySweeper retries invoice documents that are still pending or
// failed from an earlier crash or renderer outage.
type InvoiceRetrySweeper struct {
	invoices trade.InvoiceRepository
	sales    *ledger.SaleService
	limit    int
	logger   *zap.Logger
}

// NewInvoiceRetrySweeper creates an InvoiceRetrySweeper
func NewInvoiceRetrySweeper(invoices trade.InvoiceRepository, sales *ledger.SaleService, limit int, logger *zap.Logger) *InvoiceRetrySweeper {
	if limit <= 0 {
		limit = 10
	}
	return &InvoiceRetrySweeper{invoices: invoices, sales: sales, limit: limit, logger: logger}
}

// Sweep retries up to limit stuck invoices. Individual failures are logged
// and left for the next sweep.
func (s *InvoiceRetrySweeper) Sweep(ctx context.Context) error {
	stuck, err := s.invoices.FindRetryable(ctx, s.limit)
	if err != nil {
		return err
	}
	for _, invoice := range stuck {
		if _, err := s.sales.RetryInvoice(ctx, invoice.SaleID); err != nil {
			s.logger.Warn("invoice retry failed",
				zap.String("invoice_number", invoice.InvoiceNumber),
				zap.Error(err))
		}
	}
	return nil
}
