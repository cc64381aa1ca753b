package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/application/ledger"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// PurchaseHandler serves the vendor purchase endpoints
type PurchaseHandler struct {
	BaseHandler
	svc       *ledger.PurchaseService
	purchases trade.PurchaseRepository
}

// NewPurchaseHandler creates a PurchaseHandler
func NewPurchaseHandler(svc *ledger.PurchaseService, purchases trade.PurchaseRepository) *PurchaseHandler {
	return &PurchaseHandler{svc: svc, purchases: purchases}
}

// PurchaseLineRequest is one received batch line
type PurchaseLineRequest struct {
	MedicineID        uuid.UUID       `json:"medicine_id" binding:"required"`
	MedicineName      string          `json:"medicine_name" binding:"required,max=200"`
	BatchNo           string          `json:"batch_no" binding:"required,max=100"`
	Quantity          decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost          decimal.Decimal `json:"unit_cost" binding:"required"`
	MRP               decimal.Decimal `json:"mrp" binding:"required"`
	ExpiryDate        time.Time       `json:"expiry_date" binding:"required"`
	ManufacturingDate *time.Time      `json:"manufacturing_date"`
}

// PurchaseRequest is the record-purchase payload
type PurchaseRequest struct {
	VendorID      uuid.UUID             `json:"vendor_id" binding:"required"`
	InvoiceRef    string                `json:"invoice_ref" binding:"max=100"`
	PurchaseDate  time.Time             `json:"purchase_date"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	PaymentMethod string                `json:"payment_method" binding:"omitempty,oneof=cash card upi bank_transfer credit"`
	Lines         []PurchaseLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// Record handles POST /purchases
func (h *PurchaseHandler) Record(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lines := make([]ledger.PurchaseLineRequest, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, ledger.PurchaseLineRequest{
			MedicineID:        line.MedicineID,
			MedicineName:      line.MedicineName,
			BatchNo:           line.BatchNo,
			Quantity:          line.Quantity,
			UnitCost:          line.UnitCost,
			MRP:               line.MRP,
			ExpiryDate:        line.ExpiryDate,
			ManufacturingDate: line.ManufacturingDate,
		})
	}

	purchase, err := h.svc.RecordPurchase(c.Request.Context(), ledger.PurchaseRequest{
		VendorID:      req.VendorID,
		InvoiceRef:    req.InvoiceRef,
		PurchaseDate:  req.PurchaseDate,
		PaidAmount:    req.PaidAmount,
		PaymentMethod: req.PaymentMethod,
		Lines:         lines,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// PaymentRequest is the record-payment payload
type PaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"omitempty,oneof=cash card upi bank_transfer"`
	Reference string          `json:"reference" binding:"max=100"`
}

// RecordPayment handles POST /purchases/:id/payments
func (h *PurchaseHandler) RecordPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid purchase ID")
		return
	}
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.svc.RecordPayment(c.Request.Context(), id, req.Amount, req.Method, req.Reference)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Get handles GET /purchases/:id
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid purchase ID")
		return
	}

	purchase, err := h.purchases.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// List handles GET /purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	filter, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.purchases.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListDue handles GET /purchases/due
func (h *PurchaseHandler) ListDue(c *gin.Context) {
	purchases, err := h.purchases.FindWithDue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchases)
}
