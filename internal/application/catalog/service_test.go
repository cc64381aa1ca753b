package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/catalog"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMedicineRepo struct {
	medicines map[uuid.UUID]*catalog.Medicine
}

func newFakeMedicineRepo() *fakeMedicineRepo {
	return &fakeMedicineRepo{medicines: make(map[uuid.UUID]*catalog.Medicine)}
}

func (f *fakeMedicineRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Medicine, error) {
	m, ok := f.medicines[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return m, nil
}

func (f *fakeMedicineRepo) FindByName(_ context.Context, name string) (*catalog.Medicine, error) {
	for _, m := range f.medicines {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeMedicineRepo) FindAll(_ context.Context, _ shared.Filter) (*shared.Paginated[catalog.Medicine], error) {
	items := make([]catalog.Medicine, 0, len(f.medicines))
	for _, m := range f.medicines {
		items = append(items, *m)
	}
	return &shared.Paginated[catalog.Medicine]{Items: items, Total: int64(len(items)), Page: 1, PageSize: 20}, nil
}

func (f *fakeMedicineRepo) FindByCategory(_ context.Context, _ string, _ shared.Filter) (*shared.Paginated[catalog.Medicine], error) {
	return nil, nil
}

func (f *fakeMedicineRepo) Save(_ context.Context, m *catalog.Medicine) error {
	f.medicines[m.ID] = m
	return nil
}

func (f *fakeMedicineRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.medicines, id)
	return nil
}

func (f *fakeMedicineRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.medicines)), nil
}

func (f *fakeMedicineRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, m := range f.medicines {
		if m.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateMedicine(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with all fields", func(t *testing.T) {
		repo := newFakeMedicineRepo()
		svc := NewService(repo, zap.NewNop())

		threshold := 25
		m, err := svc.CreateMedicine(ctx, MedicineInput{
			Name:              "Paracetamol 500mg",
			GenericName:       "Paracetamol",
			Category:          "Analgesic",
			Unit:              "strip",
			RackLocation:      "A-3",
			DefaultGSTPct:     decimal.NewFromInt(12),
			LowStockThreshold: &threshold,
		})

		require.NoError(t, err)
		assert.Equal(t, "Paracetamol 500mg", m.Name)
		assert.Equal(t, "A-3", m.RackLocation)
		assert.True(t, decimal.NewFromInt(12).Equal(m.DefaultGSTPct))
		require.NotNil(t, m.LowStockThreshold)
		assert.Equal(t, 25, *m.LowStockThreshold)
		assert.Equal(t, catalog.MedicineStatusActive, m.Status)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		repo := newFakeMedicineRepo()
		svc := NewService(repo, zap.NewNop())

		_, err := svc.CreateMedicine(ctx, MedicineInput{Name: "Azithromycin", Unit: "strip"})
		require.NoError(t, err)

		_, err = svc.CreateMedicine(ctx, MedicineInput{Name: "Azithromycin", Unit: "bottle"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestUpdateMedicine(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMedicineRepo()
	svc := NewService(repo, zap.NewNop())

	m, err := svc.CreateMedicine(ctx, MedicineInput{Name: "Cetirizine", Unit: "strip"})
	require.NoError(t, err)

	updated, err := svc.UpdateMedicine(ctx, m.ID, MedicineInput{
		Name:         "Cetirizine 10mg",
		GenericName:  "Cetirizine",
		Category:     "Antihistamine",
		Manufacturer: "Sun Pharma",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cetirizine 10mg", updated.Name)
	assert.Equal(t, "Antihistamine", updated.Category)

	_, err = svc.UpdateMedicine(ctx, uuid.New(), MedicineInput{Name: "X"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDiscontinueMedicine(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMedicineRepo()
	svc := NewService(repo, zap.NewNop())

	m, err := svc.CreateMedicine(ctx, MedicineInput{Name: "Ranitidine", Unit: "strip"})
	require.NoError(t, err)

	require.NoError(t, svc.DiscontinueMedicine(ctx, m.ID))

	got, err := svc.GetMedicine(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.MedicineStatusDiscontinued, got.Status)
}
