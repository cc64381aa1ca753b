// Package billing implements the pure calculation layer for point-of-sale
// bills: per-line totals with percentage discount and GST, rounded to whole
// currency units, and aggregate totals summed from independently rounded
// lines.
package billing

import (
	"strings"

	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineInput is one requested bill line before validation
type LineInput struct {
	ProductName string
	MRP         decimal.Decimal
	Quantity    decimal.Decimal
	DiscountPct decimal.Decimal
	GSTPct      decimal.Decimal
}

// LineAmounts holds the computed amounts for one line. Base and
// AfterDiscount keep full precision; LineTotal is rounded to the nearest
// whole currency unit (round half away from zero).
type LineAmounts struct {
	Base          decimal.Decimal
	AfterDiscount decimal.Decimal
	LineTotal     decimal.Decimal
}

// Totals are the aggregate amounts for a bill. Each term is the sum of the
// corresponding per-line amounts, rounded independently, so
// Subtotal - TotalDiscount + TotalGST == GrandTotal always holds.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalGST      decimal.Decimal `json:"total_gst"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// ComputeLine computes the amounts for a single line:
//
//	base          = mrp * quantity
//	afterDiscount = base * (1 - discountPct/100)
//	lineTotal     = round(afterDiscount * (1 + gstPct/100))
//
// Negative discount and GST percentages are clamped to zero, matching how
// the billing surface treats malformed input.
func ComputeLine(in LineInput) LineAmounts {
	qty := in.Quantity
	if qty.IsNegative() {
		qty = decimal.Zero
	}
	discountPct := in.DiscountPct
	if discountPct.IsNegative() {
		discountPct = decimal.Zero
	}
	gstPct := in.GSTPct
	if gstPct.IsNegative() {
		gstPct = decimal.Zero
	}

	base := in.MRP.Mul(qty)
	afterDiscount := base.Mul(decimal.NewFromInt(1).Sub(discountPct.Div(hundred)))
	lineTotal := afterDiscount.Mul(decimal.NewFromInt(1).Add(gstPct.Div(hundred))).Round(0)

	return LineAmounts{
		Base:          base,
		AfterDiscount: afterDiscount,
		LineTotal:     lineTotal,
	}
}

// ValidLine reports whether a line survives basic validity filtering:
// a non-empty product name, positive quantity and MRP, and a positive
// computed line total.
func ValidLine(in LineInput) bool {
	if strings.TrimSpace(in.ProductName) == "" {
		return false
	}
	if !in.Quantity.IsPositive() || !in.MRP.IsPositive() {
		return false
	}
	return ComputeLine(in).LineTotal.IsPositive()
}

// FilterValid drops lines that fail basic validity filtering
func FilterValid(lines []LineInput) []LineInput {
	valid := make([]LineInput, 0, len(lines))
	for _, line := range lines {
		if ValidLine(line) {
			valid = append(valid, line)
		}
	}
	return valid
}

// ComputeTotals computes aggregate totals over the given lines. Lines are
// filtered first; if none survive, shared.ErrNoValidItems is returned.
// Rounding is applied per term after summation of the exact per-line values,
// mirroring the per-line rounding of LineTotal, so the aggregate invariant
// holds without accumulating rounding drift.
func ComputeTotals(lines []LineInput) (Totals, []LineInput, error) {
	valid := FilterValid(lines)
	if len(valid) == 0 {
		return Totals{}, nil, shared.ErrNoValidItems
	}

	subtotal := decimal.Zero
	totalDiscount := decimal.Zero
	totalGST := decimal.Zero
	grandTotal := decimal.Zero

	for _, line := range valid {
		amounts := ComputeLine(line)
		subtotal = subtotal.Add(amounts.Base)
		totalDiscount = totalDiscount.Add(amounts.Base.Sub(amounts.AfterDiscount))
		totalGST = totalGST.Add(amounts.LineTotal.Sub(amounts.AfterDiscount))
		grandTotal = grandTotal.Add(amounts.LineTotal)
	}

	return Totals{
		Subtotal:      subtotal.Round(0),
		TotalDiscount: totalDiscount.Round(0),
		TotalGST:      totalGST.Round(0),
		GrandTotal:    grandTotal.Round(0),
	}, valid, nil
}
