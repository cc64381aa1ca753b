package handler

import (
	"github.com/gin-gonic/gin"
	notifyapp "github.com/pharmaledger/backend/internal/application/notify"
	"github.com/pharmaledger/backend/internal/domain/notification"
)

// NotificationHandler serves the alert queue endpoints
type NotificationHandler struct {
	BaseHandler
	svc  *notifyapp.Service
	repo notification.Repository
}

// NewNotificationHandler creates a NotificationHandler
func NewNotificationHandler(svc *notifyapp.Service, repo notification.Repository) *NotificationHandler {
	return &NotificationHandler{svc: svc, repo: repo}
}

// List handles GET /notifications?status=pending
func (h *NotificationHandler) List(c *gin.Context) {
	filter, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	status := notification.Status(c.DefaultQuery("status", string(notification.StatusPending)))
	switch status {
	case notification.StatusPending, notification.StatusSent, notification.StatusFailed:
	default:
		h.BadRequest(c, "status must be one of pending, sent, failed")
		return
	}

	page, err := h.repo.FindByStatus(c.Request.Context(), status, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Dispatch handles POST /notifications/dispatch. Drains one batch of the
// pending queue immediately instead of waiting for the scheduler.
func (h *NotificationHandler) Dispatch(c *gin.Context) {
	result, err := h.svc.DispatchPending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Requeue handles POST /notifications/:id/requeue
func (h *NotificationHandler) Requeue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "invalid notification ID")
		return
	}

	n, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.svc.Requeue(c.Request.Context(), n); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, n)
}
