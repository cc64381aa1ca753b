// Package catalog implements the medicine registry use cases
package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/catalog"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MedicineInput carries the editable fields of a medicine
type MedicineInput struct {
	Name              string
	GenericName       string
	Category          string
	Manufacturer      string
	Unit              string
	RackLocation      string
	Description       string
	DefaultGSTPct     decimal.Decimal
	LowStockThreshold *int
}

// Service implements medicine registry use cases
type Service struct {
	medicines catalog.MedicineRepository
	logger    *zap.Logger
}

// NewService creates a catalog Service
func NewService(medicines catalog.MedicineRepository, logger *zap.Logger) *Service {
	return &Service{medicines: medicines, logger: logger}
}

// CreateMedicine registers a new medicine
func (s *Service) CreateMedicine(ctx context.Context, in MedicineInput) (*catalog.Medicine, error) {
	exists, err := s.medicines.ExistsByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	medicine, err := catalog.NewMedicine(in.Name, in.Unit)
	if err != nil {
		return nil, err
	}
	if err := medicine.Update(in.Name, in.GenericName, in.Category, in.Manufacturer, in.Description); err != nil {
		return nil, err
	}
	if err := medicine.SetRackLocation(in.RackLocation); err != nil {
		return nil, err
	}
	if !in.DefaultGSTPct.IsZero() {
		if err := medicine.SetDefaultGST(in.DefaultGSTPct); err != nil {
			return nil, err
		}
	}
	if err := medicine.SetLowStockThreshold(in.LowStockThreshold); err != nil {
		return nil, err
	}
	if err := s.medicines.Save(ctx, medicine); err != nil {
		return nil, err
	}

	s.logger.Info("medicine created", zap.String("name", medicine.Name))

	return medicine, nil
}

// UpdateMedicine edits an existing medicine
func (s *Service) UpdateMedicine(ctx context.Context, id uuid.UUID, in MedicineInput) (*catalog.Medicine, error) {
	medicine, err := s.medicines.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := medicine.Update(in.Name, in.GenericName, in.Category, in.Manufacturer, in.Description); err != nil {
		return nil, err
	}
	if err := medicine.SetRackLocation(in.RackLocation); err != nil {
		return nil, err
	}
	if err := medicine.SetDefaultGST(in.DefaultGSTPct); err != nil {
		return nil, err
	}
	if err := medicine.SetLowStockThreshold(in.LowStockThreshold); err != nil {
		return nil, err
	}
	if err := s.medicines.Save(ctx, medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

// GetMedicine loads one medicine
func (s *Service) GetMedicine(ctx context.Context, id uuid.UUID) (*catalog.Medicine, error) {
	return s.medicines.FindByID(ctx, id)
}

// ListMedicines pages through the registry
func (s *Service) ListMedicines(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Medicine], error) {
	return s.medicines.FindAll(ctx, filter)
}

// DiscontinueMedicine retires a medicine permanently
func (s *Service) DiscontinueMedicine(ctx context.Context, id uuid.UUID) error {
	medicine, err := s.medicines.FindByID(ctx, id)
	if err != nil {
		return err
	}
	medicine.Discontinue()
	return s.medicines.Save(ctx, medicine)
}
