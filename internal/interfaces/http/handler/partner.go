package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/pharmaledger/backend/internal/application/partner"
	"github.com/pharmaledger/backend/internal/domain/partner"
)

// PartnerHandler serves the customer and vendor endpoints
type PartnerHandler struct {
	BaseHandler
	svc       *partnerapp.Service
	customers partner.CustomerRepository
	vendors   partner.VendorRepository
}

// NewPartnerHandler creates a PartnerHandler
func NewPartnerHandler(svc *partnerapp.Service, customers partner.CustomerRepository, vendors partner.VendorRepository) *PartnerHandler {
	return &PartnerHandler{svc: svc, customers: customers, vendors: vendors}
}

// RegisterPartnerRequest is the shared registration payload
type RegisterPartnerRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Phone string `json:"phone" binding:"max=50"`
}

// RegisterCustomer handles POST /customers
func (h *PartnerHandler) RegisterCustomer(c *gin.Context) {
	var req RegisterPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.svc.RegisterCustomer(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// GetCustomer handles GET /customers/:id
func (h *PartnerHandler) GetCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid customer ID")
		return
	}

	customer, err := h.customers.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// ListCustomers handles GET /customers
func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	filter, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.customers.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ReconcileCustomer handles POST /customers/:id/reconcile. Rebuilds the
// order counters from committed sales and bills.
func (h *PartnerHandler) ReconcileCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid customer ID")
		return
	}

	customer, err := h.svc.ReconcileCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// RegisterVendor handles POST /vendors
func (h *PartnerHandler) RegisterVendor(c *gin.Context) {
	var req RegisterPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vendor, err := h.svc.RegisterVendor(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, vendor)
}

// GetVendor handles GET /vendors/:id
func (h *PartnerHandler) GetVendor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid vendor ID")
		return
	}

	vendor, err := h.vendors.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// ListVendors handles GET /vendors
func (h *PartnerHandler) ListVendors(c *gin.Context) {
	filter, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.vendors.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListVendorsWithOutstanding handles GET /vendors/outstanding
func (h *PartnerHandler) ListVendorsWithOutstanding(c *gin.Context) {
	vendors, err := h.vendors.FindWithOutstanding(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendors)
}
