package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPurchase(t *testing.T) *Purchase {
	purchase, err := NewPurchase(uuid.New(), "Sun Pharma Distributors", "SP/2026/881", time.Now())
	require.NoError(t, err)
	return purchase
}

func expiry(months int) time.Time {
	return time.Now().AddDate(0, months, 0)
}

func TestNewPurchase(t *testing.T) {
	t.Run("fails without vendor", func(t *testing.T) {
		purchase, err := NewPurchase(uuid.Nil, "X", "", time.Now())

		assert.Error(t, err)
		assert.Nil(t, purchase)
	})
}

func TestPurchaseAddItem(t *testing.T) {
	t.Run("accumulates totals", func(t *testing.T) {
		purchase := newPurchase(t)

		require.NoError(t, purchase.AddItem(uuid.New(), uuid.New(), "Paracetamol", "B-001",
			decimal.NewFromInt(100), decimal.NewFromInt(8), decimal.NewFromInt(12), expiry(18)))
		require.NoError(t, purchase.AddItem(uuid.New(), uuid.New(), "Cetirizine", "B-002",
			decimal.NewFromInt(50), decimal.NewFromInt(4), decimal.NewFromInt(7), expiry(12)))

		assert.True(t, purchase.TotalAmount.Equal(decimal.NewFromInt(1000)))
		assert.True(t, purchase.DueAmount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		purchase := newPurchase(t)

		err := purchase.AddItem(uuid.New(), uuid.New(), "Paracetamol", "B-001",
			decimal.Zero, decimal.NewFromInt(8), decimal.NewFromInt(12), expiry(18))

		assert.Error(t, err)
	})

	t.Run("rejects missing expiry", func(t *testing.T) {
		purchase := newPurchase(t)

		err := purchase.AddItem(uuid.New(), uuid.New(), "Paracetamol", "B-001",
			decimal.NewFromInt(10), decimal.NewFromInt(8), decimal.NewFromInt(12), time.Time{})

		assert.Error(t, err)
	})
}

func TestPurchasePayments(t *testing.T) {
	receive := func(t *testing.T) *Purchase {
		purchase := newPurchase(t)
		require.NoError(t, purchase.AddItem(uuid.New(), uuid.New(), "Paracetamol", "B-001",
			decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.NewFromInt(15), expiry(18)))
		return purchase
	}

	t.Run("initial payment splits paid and due", func(t *testing.T) {
		purchase := receive(t)

		require.NoError(t, purchase.SetInitialPayment(decimal.NewFromInt(600), "upi"))

		assert.True(t, purchase.PaidAmount.Equal(decimal.NewFromInt(600)))
		assert.True(t, purchase.DueAmount.Equal(decimal.NewFromInt(400)))
		assert.Len(t, purchase.Payments, 1)
		assert.False(t, purchase.IsSettled())
	})

	t.Run("initial payment cannot exceed total", func(t *testing.T) {
		purchase := receive(t)

		assert.Error(t, purchase.SetInitialPayment(decimal.NewFromInt(1200), "cash"))
	})

	t.Run("later payment settles remainder", func(t *testing.T) {
		purchase := receive(t)
		require.NoError(t, purchase.SetInitialPayment(decimal.NewFromInt(600), "upi"))

		require.NoError(t, purchase.RecordPayment(decimal.NewFromInt(400), "cash", "RCPT-12"))

		assert.True(t, purchase.IsSettled())
		assert.Len(t, purchase.Payments, 2)
	})

	t.Run("payment cannot exceed due amount", func(t *testing.T) {
		purchase := receive(t)

		assert.Error(t, purchase.RecordPayment(decimal.NewFromInt(1100), "cash", ""))
	})
}
