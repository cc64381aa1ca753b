package inventory

import (
	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeBatchReceived  = "inventory.batch_received"
	EventTypeStockAllocated = "inventory.stock_allocated"
	EventTypeStockAdjusted  = "inventory.stock_adjusted"
)

// BatchReceivedEvent is emitted when a new batch enters stock
type BatchReceivedEvent struct {
	shared.BaseDomainEvent
	MedicineID uuid.UUID       `json:"medicine_id"`
	BatchNo    string          `json:"batch_no"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// NewBatchReceivedEvent creates a BatchReceivedEvent
func NewBatchReceivedEvent(batch *Batch) *BatchReceivedEvent {
	return &BatchReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchReceived, "Batch", batch.ID),
		MedicineID:      batch.MedicineID,
		BatchNo:         batch.BatchNo,
		Quantity:        batch.Quantity,
		UnitCost:        batch.UnitCost,
	}
}

// StockAllocatedEvent is emitted after a successful FEFO allocation
type StockAllocatedEvent struct {
	shared.BaseDomainEvent
	MedicineID uuid.UUID          `json:"medicine_id"`
	Requested  decimal.Decimal    `json:"requested"`
	Records    []AllocationRecord `json:"records"`
	SourceType string             `json:"source_type"`
	SourceID   string             `json:"source_id"`
}

// NewStockAllocatedEvent creates a StockAllocatedEvent
func NewStockAllocatedEvent(medicineID uuid.UUID, requested decimal.Decimal, records []AllocationRecord, sourceType, sourceID string) *StockAllocatedEvent {
	return &StockAllocatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAllocated, "Batch", medicineID),
		MedicineID:      medicineID,
		Requested:       requested,
		Records:         records,
		SourceType:      sourceType,
		SourceID:        sourceID,
	}
}

// StockAdjustedEvent is emitted when a manual adjustment entry is recorded
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	MedicineID uuid.UUID       `json:"medicine_id"`
	Delta      decimal.Decimal `json:"delta"`
}

// NewStockAdjustedEvent creates a StockAdjustedEvent
func NewStockAdjustedEvent(batch *Batch) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, "Batch", batch.ID),
		MedicineID:      batch.MedicineID,
		Delta:           batch.Quantity,
	}
}
