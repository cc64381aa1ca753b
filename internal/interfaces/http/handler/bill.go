package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/application/ledger"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// BillHandler serves the counter billing endpoints
type BillHandler struct {
	BaseHandler
	svc   *ledger.BillService
	bills trade.BillRepository
}

// NewBillHandler creates a BillHandler
func NewBillHandler(svc *ledger.BillService, bills trade.BillRepository) *BillHandler {
	return &BillHandler{svc: svc, bills: bills}
}

// BillLineRequest is one requested bill line. BatchID set means the line
// deducts stock from that batch; free-form lines carry neither reference.
type BillLineRequest struct {
	MedicineID  *uuid.UUID      `json:"medicine_id"`
	BatchID     *uuid.UUID      `json:"batch_id"`
	ProductName string          `json:"product_name" binding:"required,max=200"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	MRP         decimal.Decimal `json:"mrp" binding:"required"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	GSTPct      decimal.Decimal `json:"gst_pct"`
}

// BillRequest is the record-bill payload
type BillRequest struct {
	CustomerID    *uuid.UUID        `json:"customer_id"`
	CustomerName  string            `json:"customer_name" binding:"max=200"`
	CustomerPhone string            `json:"customer_phone" binding:"max=50"`
	PaymentMethod string            `json:"payment_method" binding:"omitempty,oneof=cash card upi credit"`
	BillDate      time.Time         `json:"bill_date"`
	Lines         []BillLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// Record handles POST /bills
func (h *BillHandler) Record(c *gin.Context) {
	var req BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lines := make([]ledger.BillLineRequest, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, ledger.BillLineRequest{
			MedicineID:  line.MedicineID,
			BatchID:     line.BatchID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			MRP:         line.MRP,
			DiscountPct: line.DiscountPct,
			GSTPct:      line.GSTPct,
		})
	}

	bill, err := h.svc.RecordBill(c.Request.Context(), ledger.BillRequest{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		BillDate:      req.BillDate,
		Lines:         lines,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, bill)
}

// Get handles GET /bills/:id
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid bill ID")
		return
	}

	bill, err := h.bills.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// List handles GET /bills
func (h *BillHandler) List(c *gin.Context) {
	filter, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.bills.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Delete handles DELETE /bills/:id. Stock deducted by the bill is not
// restored; only the customer counters are reversed.
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid bill ID")
		return
	}

	if err := h.svc.DeleteBill(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
