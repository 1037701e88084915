package shared

import "fmt"

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
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrEmptyCart           = NewDomainError("EMPTY_CART", "The cart is empty")
	ErrInvalidRating       = NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	ErrNotPurchased        = NewDomainError("NOT_PURCHASED", "Only purchased products can be reviewed")
	ErrAlreadyReviewed     = NewDomainError("ALREADY_REVIEWED", "This product has already been reviewed")
	ErrUpstreamUnavailable = NewDomainError("UPSTREAM_UNAVAILABLE", "External service is unavailable")
)

// NewInsufficientStockError reports which product cannot cover the requested
// quantity and how many units remain.
func NewInsufficientStockError(productName string, available int) *DomainError {
	return NewDomainError(
		"INSUFFICIENT_STOCK",
		fmt.Sprintf("Insufficient stock for %s: only %d available", productName, available),
	)
}
