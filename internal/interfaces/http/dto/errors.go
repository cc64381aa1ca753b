package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed fall back to 422 so a new domain rule never leaks a 500.
var domainCodeHTTPStatus = map[string]int{
	"NOT_FOUND":                 http.StatusNotFound,
	"ALREADY_EXISTS":            http.StatusConflict,
	"STOCK_CONFLICT":            http.StatusConflict,
	"CONCURRENCY_CONFLICT":      http.StatusConflict,
	"INVALID_INPUT":             http.StatusBadRequest,
	"INVALID_QUANTITY":          http.StatusBadRequest,
	"NO_VALID_ITEMS":            http.StatusBadRequest,
	"INSUFFICIENT_STOCK":        http.StatusUnprocessableEntity,
	"INVALID_STATE":             http.StatusUnprocessableEntity,
	"ALREADY_SENT":              http.StatusUnprocessableEntity,
	"INVOICE_GENERATION_FAILED": http.StatusBadGateway,
	ErrCodeBadRequest:           http.StatusBadRequest,
	ErrCodeInternal:             http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
