package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/application/ledger"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"github.com/pharmaledger/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// SaleHandler serves the FEFO sale endpoints
type SaleHandler struct {
	BaseHandler
	svc   *ledger.SaleService
	sales trade.SaleRepository
}

// NewSaleHandler creates a SaleHandler
func NewSaleHandler(svc *ledger.SaleService, sales trade.SaleRepository) *SaleHandler {
	return &SaleHandler{svc: svc, sales: sales}
}

// SaleLineRequest is one requested sale line
type SaleLineRequest struct {
	MedicineID   uuid.UUID       `json:"medicine_id" binding:"required"`
	MedicineName string          `json:"medicine_name" binding:"required,max=200"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	MRP          decimal.Decimal `json:"mrp" binding:"required"`
	DiscountPct  decimal.Decimal `json:"discount_pct"`
	GSTPct       decimal.Decimal `json:"gst_pct"`
}

// SaleRequest is the record-sale payload
type SaleRequest struct {
	CustomerID    *uuid.UUID        `json:"customer_id"`
	CustomerName  string            `json:"customer_name" binding:"max=200"`
	PaymentMethod string            `json:"payment_method" binding:"omitempty,oneof=cash card upi credit"`
	SaleDate      time.Time         `json:"sale_date"`
	Lines         []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// SaleResponse is the record-sale result including invoice state
type SaleResponse struct {
	Sale         *trade.Sale    `json:"sale"`
	Invoice      *trade.Invoice `json:"invoice,omitempty"`
	InvoiceError string         `json:"invoice_error,omitempty"`
}

// Record handles POST /sales. A sale whose invoice document failed to
// render still committed; the response carries the invoice failure so the
// client can offer a retry.
func (h *SaleHandler) Record(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lines := make([]ledger.SaleLineRequest, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, ledger.SaleLineRequest{
			MedicineID:   line.MedicineID,
			MedicineName: line.MedicineName,
			Quantity:     line.Quantity,
			MRP:          line.MRP,
			DiscountPct:  line.DiscountPct,
			GSTPct:       line.GSTPct,
		})
	}

	result, err := h.svc.RecordSale(c.Request.Context(), ledger.SaleRequest{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
		SaleDate:      req.SaleDate,
		Lines:         lines,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	response := SaleResponse{Sale: result.Sale, Invoice: result.Invoice}
	if result.InvoiceErr != nil {
		response.InvoiceError = result.InvoiceErr.Error()
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// Get handles GET /sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid sale ID")
		return
	}

	sale, err := h.sales.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List handles GET /sales
func (h *SaleHandler) List(c *gin.Context) {
	filter, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.sales.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RetryInvoice handles POST /sales/:id/invoice/retry
func (h *SaleHandler) RetryInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid sale ID")
		return
	}

	invoice, err := h.svc.RetryInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}
