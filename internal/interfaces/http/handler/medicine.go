package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/pharmaledger/backend/internal/application/catalog"
	"github.com/shopspring/decimal"
)

// MedicineHandler serves the medicine registry endpoints
type MedicineHandler struct {
	BaseHandler
	svc *catalogapp.Service
}

// NewMedicineHandler creates a MedicineHandler
func NewMedicineHandler(svc *catalogapp.Service) *MedicineHandler {
	return &MedicineHandler{svc: svc}
}

// MedicineRequest is the create/update payload
type MedicineRequest struct {
	Name              string          `json:"name" binding:"required,max=200"`
	GenericName       string          `json:"generic_name" binding:"max=200"`
	Category          string          `json:"category" binding:"max=100"`
	Manufacturer      string          `json:"manufacturer" binding:"max=200"`
	Unit              string          `json:"unit" binding:"max=20"`
	RackLocation      string          `json:"rack_location" binding:"max=50"`
	Description       string          `json:"description"`
	DefaultGSTPct     decimal.Decimal `json:"default_gst_pct"`
	LowStockThreshold *int            `json:"low_stock_threshold" binding:"omitempty,min=0"`
}

func (r MedicineRequest) toInput() catalogapp.MedicineInput {
	return catalogapp.MedicineInput{
		Name:              r.Name,
		GenericName:       r.GenericName,
		Category:          r.Category,
		Manufacturer:      r.Manufacturer,
		Unit:              r.Unit,
		RackLocation:      r.RackLocation,
		Description:       r.Description,
		DefaultGSTPct:     r.DefaultGSTPct,
		LowStockThreshold: r.LowStockThreshold,
	}
}

// Create handles POST /medicines
func (h *MedicineHandler) Create(c *gin.Context) {
	var req MedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	medicine, err := h.svc.CreateMedicine(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, medicine)
}

// Update handles PUT /medicines/:id
func (h *MedicineHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid medicine ID")
		return
	}
	var req MedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	medicine, err := h.svc.UpdateMedicine(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, medicine)
}

// Get handles GET /medicines/:id
func (h *MedicineHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid medicine ID")
		return
	}

	medicine, err := h.svc.GetMedicine(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, medicine)
}

// List handles GET /medicines
func (h *MedicineHandler) List(c *gin.Context) {
	filter, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.svc.ListMedicines(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Discontinue handles POST /medicines/:id/discontinue
func (h *MedicineHandler) Discontinue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid medicine ID")
		return
	}

	if err := h.svc.DiscontinueMedicine(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
