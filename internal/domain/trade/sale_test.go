package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/billing"
	"github.com/pharmaledger/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleLine(name string, mrp, qty, discountPct, gstPct int64) billing.LineInput {
	return billing.LineInput{
		ProductName: name,
		MRP:         decimal.NewFromInt(mrp),
		Quantity:    decimal.NewFromInt(qty),
		DiscountPct: decimal.NewFromInt(discountPct),
		GSTPct:      decimal.NewFromInt(gstPct),
	}
}

func allocation(qty, unitCost int64) inventory.AllocationRecord {
	return inventory.AllocationRecord{
		BatchID:  uuid.New(),
		BatchNo:  "B-001",
		Quantity: decimal.NewFromInt(qty),
		UnitCost: decimal.NewFromInt(unitCost),
		MRP:      decimal.NewFromInt(100),
	}
}

func TestSaleAddItem(t *testing.T) {
	t.Run("accepts line fully covered by allocations", func(t *testing.T) {
		sale := NewSale(nil, "", "cash", time.Now())

		err := sale.AddItem(uuid.New(), "Paracetamol", saleLine("Paracetamol", 100, 7, 0, 0),
			[]inventory.AllocationRecord{allocation(5, 10), allocation(2, 10)})

		require.NoError(t, err)
		require.Len(t, sale.Items, 1)
		assert.True(t, sale.Items[0].CostTotal.Equal(decimal.NewFromInt(70)))
	})

	t.Run("rejects allocation quantity mismatch", func(t *testing.T) {
		sale := NewSale(nil, "", "cash", time.Now())

		err := sale.AddItem(uuid.New(), "Paracetamol", saleLine("Paracetamol", 100, 7, 0, 0),
			[]inventory.AllocationRecord{allocation(5, 10)})

		assert.Error(t, err)
		assert.Empty(t, sale.Items)
	})

	t.Run("rejects nil medicine", func(t *testing.T) {
		sale := NewSale(nil, "", "cash", time.Now())

		err := sale.AddItem(uuid.Nil, "Paracetamol", saleLine("Paracetamol", 100, 1, 0, 0),
			[]inventory.AllocationRecord{allocation(1, 10)})

		assert.Error(t, err)
	})
}

func TestSaleSealTotals(t *testing.T) {
	sale := NewSale(nil, "", "cash", time.Now())
	require.NoError(t, sale.AddItem(uuid.New(), "Paracetamol", saleLine("Paracetamol", 100, 2, 10, 5),
		[]inventory.AllocationRecord{allocation(2, 40)}))

	totals, _, err := billing.ComputeTotals([]billing.LineInput{saleLine("Paracetamol", 100, 2, 10, 5)})
	require.NoError(t, err)
	sale.SealTotals(totals)

	assert.True(t, sale.GrandTotal.Equal(decimal.NewFromInt(189)))
	assert.True(t, sale.TotalCost.Equal(decimal.NewFromInt(80)))
	assert.True(t, sale.Profit().Equal(decimal.NewFromInt(109)))
	assert.Len(t, sale.GetDomainEvents(), 1)
}

func TestAllocationRecordsRoundTrip(t *testing.T) {
	records := AllocationRecords{allocation(5, 10), allocation(2, 12)}

	value, err := records.Value()
	require.NoError(t, err)

	var decoded AllocationRecords
	require.NoError(t, decoded.Scan(value))
	require.Len(t, decoded, 2)
	assert.Equal(t, records[0].BatchID, decoded[0].BatchID)
	assert.True(t, decoded[1].UnitCost.Equal(decimal.NewFromInt(12)))
}
