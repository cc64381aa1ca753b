package billing

import (
	"testing"

	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(name string, mrp, qty, discountPct, gstPct float64) LineInput {
	return LineInput{
		ProductName: name,
		MRP:         decimal.NewFromFloat(mrp),
		Quantity:    decimal.NewFromFloat(qty),
		DiscountPct: decimal.NewFromFloat(discountPct),
		GSTPct:      decimal.NewFromFloat(gstPct),
	}
}

func TestComputeLine(t *testing.T) {
	t.Run("applies discount then GST with whole-unit rounding", func(t *testing.T) {
		amounts := ComputeLine(line("Paracetamol 500mg", 100, 2, 10, 5))

		assert.True(t, amounts.Base.Equal(decimal.NewFromInt(200)))
		assert.True(t, amounts.AfterDiscount.Equal(decimal.NewFromInt(180)))
		assert.True(t, amounts.LineTotal.Equal(decimal.NewFromInt(189)))
	})

	t.Run("rounds half away from zero", func(t *testing.T) {
		// 10.10 * 5 = 50.50 -> rounds to 51, not 50
		amounts := ComputeLine(line("Syrup", 10.10, 5, 0, 0))
		assert.True(t, amounts.LineTotal.Equal(decimal.NewFromInt(51)))
	})

	t.Run("clamps negative percentages to zero", func(t *testing.T) {
		amounts := ComputeLine(line("Tablet", 50, 2, -10, -5))
		assert.True(t, amounts.LineTotal.Equal(decimal.NewFromInt(100)))
	})

	t.Run("is idempotent over the same input", func(t *testing.T) {
		in := line("Capsule", 33.33, 3, 7.5, 12)
		first := ComputeLine(in)
		second := ComputeLine(in)
		assert.True(t, first.Base.Equal(second.Base))
		assert.True(t, first.AfterDiscount.Equal(second.AfterDiscount))
		assert.True(t, first.LineTotal.Equal(second.LineTotal))
	})
}

func TestValidLine(t *testing.T) {
	tests := []struct {
		name  string
		input LineInput
		want  bool
	}{
		{"valid line", line("Aspirin", 20, 1, 0, 0), true},
		{"empty name", line("", 20, 1, 0, 0), false},
		{"whitespace name", line("   ", 20, 1, 0, 0), false},
		{"zero quantity", line("Aspirin", 20, 0, 0, 0), false},
		{"negative quantity", line("Aspirin", 20, -1, 0, 0), false},
		{"zero price", line("Aspirin", 0, 1, 0, 0), false},
		{"full discount yields zero total", line("Aspirin", 20, 1, 100, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidLine(tt.input))
		})
	}
}

func TestComputeTotals(t *testing.T) {
	t.Run("single line scenario", func(t *testing.T) {
		totals, valid, err := ComputeTotals([]LineInput{line("Paracetamol", 100, 2, 10, 5)})
		require.NoError(t, err)
		require.Len(t, valid, 1)

		assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal=%s", totals.Subtotal)
		assert.True(t, totals.TotalDiscount.Equal(decimal.NewFromInt(20)))
		assert.True(t, totals.TotalGST.Equal(decimal.NewFromInt(9)))
		assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(189)))
	})

	t.Run("invalid lines are excluded before totals", func(t *testing.T) {
		totals, valid, err := ComputeTotals([]LineInput{
			line("Paracetamol", 100, 2, 10, 5),
			line("", 50, 1, 0, 0),
			line("Zero qty", 50, 0, 0, 0),
		})
		require.NoError(t, err)
		assert.Len(t, valid, 1)
		assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(189)))
	})

	t.Run("rejects when every line is invalid", func(t *testing.T) {
		_, _, err := ComputeTotals([]LineInput{
			line("", 50, 1, 0, 0),
			line("No price", 0, 1, 0, 0),
		})
		assert.ErrorIs(t, err, shared.ErrNoValidItems)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, _, err := ComputeTotals(nil)
		assert.ErrorIs(t, err, shared.ErrNoValidItems)
	})

	t.Run("sum-of-lines invariant holds", func(t *testing.T) {
		lines := []LineInput{
			line("A", 100, 2, 10, 5),
			line("B", 45, 3, 0, 12),
			line("C", 250, 1, 5, 18),
			line("D", 12, 10, 2, 0),
		}
		totals, _, err := ComputeTotals(lines)
		require.NoError(t, err)

		lhs := totals.Subtotal.Sub(totals.TotalDiscount).Add(totals.TotalGST)
		assert.True(t, lhs.Equal(totals.GrandTotal),
			"subtotal(%s) - discount(%s) + gst(%s) != grand(%s)",
			totals.Subtotal, totals.TotalDiscount, totals.TotalGST, totals.GrandTotal)
	})

	t.Run("totals are deterministic", func(t *testing.T) {
		lines := []LineInput{
			line("A", 99.99, 2, 7.5, 12),
			line("B", 18.5, 4, 0, 5),
		}
		first, _, err := ComputeTotals(lines)
		require.NoError(t, err)
		second, _, err := ComputeTotals(lines)
		require.NoError(t, err)
		assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
		assert.True(t, first.Subtotal.Equal(second.Subtotal))
	})
}
