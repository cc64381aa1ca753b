package partner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVendor(t *testing.T) {
	t.Run("creates vendor successfully", func(t *testing.T) {
		vendor, err := NewVendor("Sun Pharma Distributors", "022-12345678")

		require.NoError(t, err)
		assert.Equal(t, "Sun Pharma Distributors", vendor.Name)
		assert.Equal(t, VendorStatusActive, vendor.Status)
		assert.True(t, vendor.OutstandingBalance.IsZero())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		vendor, err := NewVendor("", "")

		assert.Error(t, err)
		assert.Nil(t, vendor)
	})
}

func TestVendorOutstandingBalance(t *testing.T) {
	newVendor := func(t *testing.T) *Vendor {
		vendor, err := NewVendor("Cipla Agencies", "")
		require.NoError(t, err)
		return vendor
	}

	t.Run("purchases with due amount accumulate", func(t *testing.T) {
		vendor := newVendor(t)

		require.NoError(t, vendor.AddOutstanding(decimal.NewFromInt(5000)))
		require.NoError(t, vendor.AddOutstanding(decimal.NewFromInt(2500)))

		assert.True(t, vendor.OutstandingBalance.Equal(decimal.NewFromInt(7500)))
	})

	t.Run("payment settles balance", func(t *testing.T) {
		vendor := newVendor(t)
		require.NoError(t, vendor.AddOutstanding(decimal.NewFromInt(5000)))

		require.NoError(t, vendor.SettleOutstanding(decimal.NewFromInt(3000)))

		assert.True(t, vendor.OutstandingBalance.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("overpayment floors balance at zero", func(t *testing.T) {
		vendor := newVendor(t)
		require.NoError(t, vendor.AddOutstanding(decimal.NewFromInt(1000)))

		require.NoError(t, vendor.SettleOutstanding(decimal.NewFromInt(1500)))

		assert.True(t, vendor.OutstandingBalance.IsZero())
	})

	t.Run("rejects non-positive payment", func(t *testing.T) {
		vendor := newVendor(t)

		assert.Error(t, vendor.SettleOutstanding(decimal.Zero))
		assert.Error(t, vendor.SettleOutstanding(decimal.NewFromInt(-10)))
	})
}
