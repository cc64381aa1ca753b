package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidQuantity     = NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	ErrStockConflict       = NewDomainError("STOCK_CONFLICT", "Stock was modified by a concurrent transaction")
	ErrNoValidItems        = NewDomainError("NO_VALID_ITEMS", "No valid line items after validation")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)

// IsRetryable reports whether the error indicates a transient conflict the
// caller should retry by re-running the whole transaction.
func IsRetryable(err error) bool {
	de, ok := err.(*DomainError)
	if !ok {
		return false
	}
	return de.Code == ErrStockConflict.Code || de.Code == ErrConcurrencyConflict.Code
}
