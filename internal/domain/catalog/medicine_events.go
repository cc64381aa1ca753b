package catalog

import (
	"github.com/pharmaledger/backend/internal/domain/shared"
)

// Event type constants
const (
	EventTypeMedicineCreated      = "catalog.medicine_created"
	EventTypeMedicineUpdated      = "catalog.medicine_updated"
	EventTypeMedicineDiscontinued = "catalog.medicine_discontinued"
)

// MedicineCreatedEvent is emitted when a medicine is created
type MedicineCreatedEvent struct {
	shared.BaseDomainEvent
	Name     string `json:"name"`
	Category string `json:"category"`
}

// NewMedicineCreatedEvent creates a MedicineCreatedEvent
func NewMedicineCreatedEvent(m *Medicine) *MedicineCreatedEvent {
	return &MedicineCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMedicineCreated, "Medicine", m.ID),
		Name:            m.Name,
		Category:        m.Category,
	}
}

// MedicineUpdatedEvent is emitted when a medicine is updated
type MedicineUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewMedicineUpdatedEvent creates a MedicineUpdatedEvent
func NewMedicineUpdatedEvent(m *Medicine) *MedicineUpdatedEvent {
	return &MedicineUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMedicineUpdated, "Medicine", m.ID),
		Name:            m.Name,
	}
}

// MedicineDiscontinuedEvent is emitted when a medicine is discontinued
type MedicineDiscontinuedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewMedicineDiscontinuedEvent creates a MedicineDiscontinuedEvent
func NewMedicineDiscontinuedEvent(m *Medicine) *MedicineDiscontinuedEvent {
	return &MedicineDiscontinuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMedicineDiscontinued, "Medicine", m.ID),
		Name:            m.Name,
	}
}
