package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/billing"
	"github.com/pharmaledger/backend/internal/domain/inventory"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureStore struct {
	key  string
	data []byte
}

func (s *captureStore) Store(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.key = key
	s.data = data
	return "/tmp/" + key, nil
}

func TestInvoiceRenderer_Render(t *testing.T) {
	sale := trade.NewSale(nil, "Asha Medical", "cash", time.Now())
	line := billing.LineInput{
		ProductName: "Paracetamol 500mg",
		MRP:         decimal.NewFromInt(100),
		Quantity:    decimal.NewFromInt(2),
		DiscountPct: decimal.NewFromInt(10),
		GSTPct:      decimal.NewFromInt(5),
	}
	require.NoError(t, sale.AddItem(uuid.New(), "Paracetamol 500mg", line,
		[]inventory.AllocationRecord{{BatchID: uuid.New(), Quantity: decimal.NewFromInt(2), UnitCost: decimal.NewFromInt(40)}}))
	totals, _, err := billing.ComputeTotals([]billing.LineInput{line})
	require.NoError(t, err)
	sale.SealTotals(totals)

	invoice, err := trade.NewInvoice(sale.ID, trade.FormatInvoiceNumber(1))
	require.NoError(t, err)

	store := &captureStore{}
	renderer := NewInvoiceRenderer(store, "City Pharmacy", "919876543210", zap.NewNop())

	location, err := renderer.Render(context.Background(), sale, invoice)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/invoices/INV-000001.pdf", location)
	assert.Equal(t, "invoices/INV-000001.pdf", store.key)
	assert.NotEmpty(t, store.data)
	assert.Equal(t, "%PDF", string(store.data[:4]))
}
