package partner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCustomerCode(t *testing.T) {
	assert.Equal(t, "CUST-0001", FormatCustomerCode(1))
	assert.Equal(t, "CUST-0042", FormatCustomerCode(42))
	assert.Equal(t, "CUST-10000", FormatCustomerCode(10000))
}

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer successfully", func(t *testing.T) {
		customer, err := NewCustomer("CUST-0001", "Ravi Kumar", "9876543210")

		require.NoError(t, err)
		assert.Equal(t, "CUST-0001", customer.Code)
		assert.Equal(t, "Ravi Kumar", customer.Name)
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.Zero(t, customer.TotalOrders)
		assert.True(t, customer.TotalSpent.IsZero())
		assert.Len(t, customer.GetDomainEvents(), 1)
	})

	t.Run("fails with malformed code", func(t *testing.T) {
		customer, err := NewCustomer("C-1", "Ravi Kumar", "")

		assert.Error(t, err)
		assert.Nil(t, customer)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		customer, err := NewCustomer("CUST-0001", "  ", "")

		assert.Error(t, err)
		assert.Nil(t, customer)
	})
}

func TestCustomerOrderCounters(t *testing.T) {
	newCustomer := func(t *testing.T) *Customer {
		customer, err := NewCustomer("CUST-0007", "Meena Shah", "")
		require.NoError(t, err)
		return customer
	}

	t.Run("record order bumps counters", func(t *testing.T) {
		customer := newCustomer(t)

		customer.RecordOrder(decimal.NewFromInt(189))
		customer.RecordOrder(decimal.NewFromInt(250))

		assert.Equal(t, 2, customer.TotalOrders)
		assert.True(t, customer.TotalSpent.Equal(decimal.NewFromInt(439)))
	})

	t.Run("reverse order unwinds counters", func(t *testing.T) {
		customer := newCustomer(t)
		customer.RecordOrder(decimal.NewFromInt(189))

		customer.ReverseOrder(decimal.NewFromInt(189))

		assert.Zero(t, customer.TotalOrders)
		assert.True(t, customer.TotalSpent.IsZero())
	})

	t.Run("reverse order floors counters at zero", func(t *testing.T) {
		customer := newCustomer(t)

		customer.ReverseOrder(decimal.NewFromInt(500))

		assert.Zero(t, customer.TotalOrders)
		assert.True(t, customer.TotalSpent.IsZero())
	})

	t.Run("recompute overwrites counters", func(t *testing.T) {
		customer := newCustomer(t)
		customer.RecordOrder(decimal.NewFromInt(10))

		customer.Recompute(5, decimal.NewFromInt(1200))

		assert.Equal(t, 5, customer.TotalOrders)
		assert.True(t, customer.TotalSpent.Equal(decimal.NewFromInt(1200)))
	})

	t.Run("recompute floors negative inputs", func(t *testing.T) {
		customer := newCustomer(t)

		customer.Recompute(-3, decimal.NewFromInt(-50))

		assert.Zero(t, customer.TotalOrders)
		assert.True(t, customer.TotalSpent.IsZero())
	})
}
