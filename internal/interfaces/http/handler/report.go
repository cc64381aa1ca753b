package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/pharmaledger/backend/internal/application/report"
)

// ReportHandler serves the sales reporting endpoints
type ReportHandler struct {
	BaseHandler
	svc *reportapp.Service
}

// NewReportHandler creates a ReportHandler
func NewReportHandler(svc *reportapp.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// parseRange reads from/to query dates. Missing values default to the
// last 30 days ending today.
func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, true
}

// Summary handles GET /reports/summary?from=2026-08-01&to=2026-08-29
func (h *ReportHandler) Summary(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		h.BadRequest(c, "dates must use the format 2006-01-02")
		return
	}

	summary, err := h.svc.SalesSummary(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Daily handles GET /reports/daily?from=2026-08-01&to=2026-08-29
func (h *ReportHandler) Daily(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		h.BadRequest(c, "dates must use the format 2006-01-02")
		return
	}

	days, err := h.svc.DailyBreakdown(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, days)
}

// parseLimit reads the optional ?limit= query. Zero means service default.
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, false
	}
	return limit, true
}

// TopProducts handles GET /reports/top-products?from=&to=&limit=
func (h *ReportHandler) TopProducts(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		h.BadRequest(c, "dates must use the format 2006-01-02")
		return
	}
	limit, ok := parseLimit(c)
	if !ok {
		h.BadRequest(c, "limit must be a positive integer")
		return
	}

	products, err := h.svc.TopProducts(c.Request.Context(), from, to, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// TopCustomers handles GET /reports/top-customers?from=&to=&limit=
func (h *ReportHandler) TopCustomers(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		h.BadRequest(c, "dates must use the format 2006-01-02")
		return
	}
	limit, ok := parseLimit(c)
	if !ok {
		h.BadRequest(c, "limit must be a positive integer")
		return
	}

	customers, err := h.svc.TopCustomers(c.Request.Context(), from, to, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}
