package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-000001", FormatInvoiceNumber(1))
	assert.Equal(t, "INV-004217", FormatInvoiceNumber(4217))
}

func TestInvoiceLifecycle(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		invoice, err := NewInvoice(uuid.New(), "INV-000001")

		require.NoError(t, err)
		assert.Equal(t, InvoiceStatusPending, invoice.Status)
		assert.True(t, invoice.CanRetry())
	})

	t.Run("mark generated records document path", func(t *testing.T) {
		invoice, err := NewInvoice(uuid.New(), "INV-000002")
		require.NoError(t, err)

		require.NoError(t, invoice.MarkGenerated("invoices/INV-000002.pdf"))

		assert.Equal(t, InvoiceStatusGenerated, invoice.Status)
		assert.NotNil(t, invoice.GeneratedAt)
		assert.False(t, invoice.CanRetry())
	})

	t.Run("mark failed keeps invoice retryable", func(t *testing.T) {
		invoice, err := NewInvoice(uuid.New(), "INV-000003")
		require.NoError(t, err)

		invoice.MarkFailed("renderer unavailable")

		assert.Equal(t, InvoiceStatusFailed, invoice.Status)
		assert.True(t, invoice.CanRetry())
	})

	t.Run("retry after failure clears reason", func(t *testing.T) {
		invoice, err := NewInvoice(uuid.New(), "INV-000004")
		require.NoError(t, err)
		invoice.MarkFailed("renderer unavailable")

		require.NoError(t, invoice.MarkGenerated("invoices/INV-000004.pdf"))

		assert.Empty(t, invoice.FailureReason)
	})

	t.Run("fails without sale reference", func(t *testing.T) {
		invoice, err := NewInvoice(uuid.Nil, "INV-000005")

		assert.Error(t, err)
		assert.Nil(t, invoice)
	})
}
