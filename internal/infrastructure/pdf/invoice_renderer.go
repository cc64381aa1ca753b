// Package pdf renders invoice documents with maroto.
package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// DocumentStore persists a rendered document and returns its location
type DocumentStore interface {
	Store(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// InvoiceRenderer renders a committed sale into a PDF invoice and stores
// the document. It implements the renderer port of the sale service.
type InvoiceRenderer struct {
	store        DocumentStore
	pharmacyName string
	contactPhone string
	logger       *zap.Logger
}

// NewInvoiceRenderer creates an InvoiceRenderer
func NewInvoiceRenderer(store DocumentStore, pharmacyName, contactPhone string, logger *zap.Logger) *InvoiceRenderer {
	if pharmacyName == "" {
		pharmacyName = "Pharmacy"
	}
	return &InvoiceRenderer{
		store:        store,
		pharmacyName: pharmacyName,
		contactPhone: contactPhone,
		logger:       logger,
	}
}

// Render builds the PDF and stores it, returning the document location
func (r *InvoiceRenderer) Render(ctx context.Context, sale *trade.Sale, invoice *trade.Invoice) (string, error) {
	data, err := r.build(sale, invoice)
	if err != nil {
		return "", fmt.Errorf("failed to render invoice %s: %w", invoice.InvoiceNumber, err)
	}

	key := fmt.Sprintf("invoices/%s.pdf", invoice.InvoiceNumber)
	location, err := r.store.Store(ctx, key, data, "application/pdf")
	if err != nil {
		return "", fmt.Errorf("failed to store invoice %s: %w", invoice.InvoiceNumber, err)
	}

	r.logger.Info("invoice rendered",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("location", location))
	return location, nil
}

func (r *InvoiceRenderer) build(sale *trade.Sale, invoice *trade.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, r.pharmacyName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	if r.contactPhone != "" {
		m.AddRow(6,
			text.NewCol(12, "Phone: "+r.contactPhone, props.Text{Size: 9}),
		)
	}

	customerName := sale.CustomerName
	if customerName == "" {
		customerName = "Walk-in customer"
	}
	m.AddRow(20,
		col.New(6).Add(
			text.New("Invoice: "+invoice.InvoiceNumber, props.Text{Style: fontstyle.Bold}),
			text.New("Date: "+sale.SaleDate.Format("02 Jan 2006"), props.Text{Top: 5}),
			text.New("Payment: "+sale.PaymentMethod, props.Text{Top: 10}),
		),
		col.New(6).Add(
			text.New("Billed to", props.Text{Style: fontstyle.Bold}),
			text.New(customerName, props.Text{Top: 5}),
		),
	)

	m.AddRow(8,
		text.NewCol(5, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "MRP", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Disc%", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "GST%", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range sale.Items {
		m.AddRow(7,
			text.NewCol(5, item.MedicineName, props.Text{Size: 9}),
			text.NewCol(1, item.Quantity.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.MRP.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, item.DiscountPct.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, item.GSTPct.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.LineTotal.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, sale.Subtotal.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Discount", props.Text{Size: 9}),
		text.NewCol(2, sale.TotalDiscount.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "GST", props.Text{Size: 9}),
		text.NewCol(2, sale.TotalGST.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Grand total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, sale.GrandTotal.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
