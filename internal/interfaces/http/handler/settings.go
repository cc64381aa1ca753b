package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pharmaledger/backend/internal/domain/settings"
)

// SettingsHandler serves the pharmacy settings endpoints
type SettingsHandler struct {
	BaseHandler
	repo settings.Repository
}

// NewSettingsHandler creates a SettingsHandler
func NewSettingsHandler(repo settings.Repository) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

// Get handles GET /settings
func (h *SettingsHandler) Get(c *gin.Context) {
	current, err := h.repo.Load(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, current)
}

// UpdateSettingsRequest is the settings update payload. Omitted threshold
// fields keep their current values.
type UpdateSettingsRequest struct {
	LowStockThreshold *int    `json:"low_stock_threshold"`
	ExpiryAlertDays   *int    `json:"expiry_alert_days"`
	PharmacyName      *string `json:"pharmacy_name"`
	ContactPhone      *string `json:"contact_phone"`
	AlertRecipient    *string `json:"alert_recipient"`
}

// Update handles PUT /settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	current, err := h.repo.Load(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if req.LowStockThreshold != nil || req.ExpiryAlertDays != nil {
		lowStock := current.LowStockThreshold
		if req.LowStockThreshold != nil {
			lowStock = *req.LowStockThreshold
		}
		expiryDays := current.ExpiryAlertDays
		if req.ExpiryAlertDays != nil {
			expiryDays = *req.ExpiryAlertDays
		}
		if err := current.UpdateThresholds(lowStock, expiryDays); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	if req.PharmacyName != nil || req.ContactPhone != nil || req.AlertRecipient != nil {
		name := current.PharmacyName
		if req.PharmacyName != nil {
			name = *req.PharmacyName
		}
		phone := current.ContactPhone
		if req.ContactPhone != nil {
			phone = *req.ContactPhone
		}
		recipient := current.AlertRecipient
		if req.AlertRecipient != nil {
			recipient = *req.AlertRecipient
		}
		if err := current.UpdateContact(name, phone, recipient); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	if err := h.repo.Save(c.Request.Context(), current); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, current)
}
