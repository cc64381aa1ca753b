package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/pharmaledger/backend/internal/application/inventory"
	"github.com/pharmaledger/backend/internal/application/ledger"
	"github.com/shopspring/decimal"
)

// InventoryHandler serves the stock endpoints
type InventoryHandler struct {
	BaseHandler
	svc   *inventoryapp.Service
	sales *ledger.SaleService
}

// NewInventoryHandler creates an InventoryHandler
func NewInventoryHandler(svc *inventoryapp.Service, sales *ledger.SaleService) *InventoryHandler {
	return &InventoryHandler{svc: svc, sales: sales}
}

// AddBatchRequest is the payload for receiving a batch outside a purchase
type AddBatchRequest struct {
	MedicineID        uuid.UUID       `json:"medicine_id" binding:"required"`
	BatchNo           string          `json:"batch_no" binding:"required,max=100"`
	Quantity          decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	MRP               decimal.Decimal `json:"mrp"`
	ExpiryDate        time.Time       `json:"expiry_date" binding:"required"`
	ManufacturingDate *time.Time      `json:"manufacturing_date"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	VendorID          *uuid.UUID      `json:"vendor_id"`
}

// AddBatch handles POST /inventory/batches
func (h *InventoryHandler) AddBatch(c *gin.Context) {
	var req AddBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.svc.AddBatch(c.Request.Context(), inventoryapp.AddBatchRequest{
		MedicineID:        req.MedicineID,
		BatchNo:           req.BatchNo,
		Quantity:          req.Quantity,
		UnitCost:          req.UnitCost,
		MRP:               req.MRP,
		ExpiryDate:        req.ExpiryDate,
		ManufacturingDate: req.ManufacturingDate,
		PurchaseDate:      req.PurchaseDate,
		VendorID:          req.VendorID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, batch)
}

// AdjustStockRequest is the payload for a manual stock adjustment
type AdjustStockRequest struct {
	MedicineID uuid.UUID       `json:"medicine_id" binding:"required"`
	Delta      decimal.Decimal `json:"delta" binding:"required"`
}

// AdjustStock handles POST /inventory/adjustments
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.svc.AdjustStock(c.Request.Context(), req.MedicineID, req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, batch)
}

// ListBatches handles GET /inventory/medicines/:id/batches
func (h *InventoryHandler) ListBatches(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid medicine ID")
		return
	}
	filter, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batches, err := h.svc.BatchesForMedicine(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// LowStock handles GET /inventory/low-stock
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Expiring handles GET /inventory/expiring?days=15
func (h *InventoryHandler) Expiring(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "days must be a non-negative integer")
			return
		}
		days = parsed
	}

	batches, err := h.svc.ExpiringStock(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// StockSummary handles GET /inventory/summary
func (h *InventoryHandler) StockSummary(c *gin.Context) {
	summaries, err := h.svc.StockSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summaries)
}

// PreviewAllocation handles GET /inventory/medicines/:id/allocation?quantity=7
func (h *InventoryHandler) PreviewAllocation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid medicine ID")
		return
	}
	quantity, err := decimal.NewFromString(c.Query("quantity"))
	if err != nil {
		h.BadRequest(c, "quantity must be a number")
		return
	}

	preview, err := h.sales.PreviewAllocation(c.Request.Context(), id, quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preview)
}
