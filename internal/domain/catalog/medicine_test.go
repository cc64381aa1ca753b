package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMedicine(t *testing.T) {
	t.Run("creates medicine successfully", func(t *testing.T) {
		medicine, err := NewMedicine("Paracetamol 500mg", "strip")

		require.NoError(t, err)
		assert.Equal(t, "Paracetamol 500mg", medicine.Name)
		assert.Equal(t, "strip", medicine.Unit)
		assert.Equal(t, MedicineStatusActive, medicine.Status)
		assert.Nil(t, medicine.LowStockThreshold)
		assert.Len(t, medicine.GetDomainEvents(), 1)
	})

	t.Run("defaults unit when empty", func(t *testing.T) {
		medicine, err := NewMedicine("Amoxicillin 250mg", "")

		require.NoError(t, err)
		assert.Equal(t, "strip", medicine.Unit)
	})

	t.Run("trims name", func(t *testing.T) {
		medicine, err := NewMedicine("  Cetirizine  ", "strip")

		require.NoError(t, err)
		assert.Equal(t, "Cetirizine", medicine.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		medicine, err := NewMedicine("   ", "strip")

		assert.Error(t, err)
		assert.Nil(t, medicine)
	})
}

func TestMedicineSetDefaultGST(t *testing.T) {
	medicine, err := NewMedicine("Paracetamol 500mg", "strip")
	require.NoError(t, err)

	t.Run("accepts valid percentage", func(t *testing.T) {
		err := medicine.SetDefaultGST(decimal.NewFromInt(12))
		require.NoError(t, err)
		assert.True(t, medicine.DefaultGSTPct.Equal(decimal.NewFromInt(12)))
	})

	t.Run("rejects negative percentage", func(t *testing.T) {
		assert.Error(t, medicine.SetDefaultGST(decimal.NewFromInt(-1)))
	})

	t.Run("rejects percentage over 100", func(t *testing.T) {
		assert.Error(t, medicine.SetDefaultGST(decimal.NewFromInt(101)))
	})
}

func TestMedicineLowStockThreshold(t *testing.T) {
	medicine, err := NewMedicine("Paracetamol 500mg", "strip")
	require.NoError(t, err)

	t.Run("sets per-medicine override", func(t *testing.T) {
		threshold := 25
		require.NoError(t, medicine.SetLowStockThreshold(&threshold))
		require.NotNil(t, medicine.LowStockThreshold)
		assert.Equal(t, 25, *medicine.LowStockThreshold)
	})

	t.Run("clears override with nil", func(t *testing.T) {
		require.NoError(t, medicine.SetLowStockThreshold(nil))
		assert.Nil(t, medicine.LowStockThreshold)
	})

	t.Run("rejects negative threshold", func(t *testing.T) {
		threshold := -1
		assert.Error(t, medicine.SetLowStockThreshold(&threshold))
	})
}

func TestMedicineLifecycle(t *testing.T) {
	t.Run("deactivate and reactivate", func(t *testing.T) {
		medicine, err := NewMedicine("Paracetamol 500mg", "strip")
		require.NoError(t, err)

		medicine.Deactivate()
		assert.Equal(t, MedicineStatusInactive, medicine.Status)
		assert.False(t, medicine.IsSellable())

		require.NoError(t, medicine.Activate())
		assert.True(t, medicine.IsSellable())
	})

	t.Run("discontinued medicine cannot be reactivated", func(t *testing.T) {
		medicine, err := NewMedicine("Old Formula", "strip")
		require.NoError(t, err)

		medicine.Discontinue()
		assert.Equal(t, MedicineStatusDiscontinued, medicine.Status)
		assert.Error(t, medicine.Activate())
	})
}
