package service

import (
	"errors"
	"fmt"
)

// Sale recording failures. Each one rejects the whole request.
var (
	ErrIncompleteSale       = errors.New("incomplete sale data")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrCustomerNameRequired = errors.New("customer name required")
	ErrInvalidSaleItem      = errors.New("invalid sale item")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
)

// Master data failures
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateCode   = errors.New("code already exists")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
)

// InsufficientStockError names the product whose stock ran out.
type InsufficientStockError struct {
	Code      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.Code)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// IsSaleRejection reports whether err is one of the validation, reference or
// stock failures a client can fix, as opposed to a storage failure.
func IsSaleRejection(err error) bool {
	for _, target := range []error{
		ErrIncompleteSale,
		ErrCustomerNotFound,
		ErrCustomerNameRequired,
		ErrInvalidSaleItem,
		ErrProductNotFound,
		ErrInsufficientStock,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// RejectionReason is a short label for metrics.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrIncompleteSale):
		return "incomplete"
	case errors.Is(err, ErrCustomerNotFound):
		return "customer_not_found"
	case errors.Is(err, ErrCustomerNameRequired):
		return "customer_name_required"
	case errors.Is(err, ErrInvalidSaleItem):
		return "invalid_item"
	case errors.Is(err, ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "internal"
	}
}
