package inventory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidQuantity is returned for zero or negative quantities
	ErrInvalidQuantity = shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")

	// ErrQuantityPrecision is returned for quantities finer than the stored scale.
	// It shares the INVALID_QUANTITY code, so errors.Is matches ErrInvalidQuantity.
	ErrQuantityPrecision = shared.NewDomainError("INVALID_QUANTITY",
		fmt.Sprintf("Quantity cannot have more than %d decimal places", shared.DecimalScale))

	// ErrInvalidCost is returned for negative unit costs or costs finer than the stored scale
	ErrInvalidCost = shared.NewDomainError("INVALID_COST",
		fmt.Sprintf("Cost per unit must be zero or positive with at most %d decimal places", shared.DecimalScale))

	// ErrBatchUnderflow guards against a batch going below zero
	ErrBatchUnderflow = shared.NewDomainError("BATCH_UNDERFLOW", "Batch remaining quantity cannot go below zero")

	// ErrBatchOverflow guards against a batch exceeding its initial quantity
	ErrBatchOverflow = shared.NewDomainError("BATCH_OVERFLOW", "Batch remaining quantity cannot exceed its initial quantity")
)

// ValidateQuantity checks that q is positive and storable without rounding
func ValidateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return ErrInvalidQuantity
	}
	if !shared.FitsScale(q) {
		return ErrQuantityPrecision
	}
	return nil
}

// InsufficientStockError reports that the open batches of an item cannot cover a request
type InsufficientStockError struct {
	ItemID    uuid.UUID
	Available decimal.Decimal
	Required  decimal.Decimal
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(itemID uuid.UUID, available, required decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{
		ItemID:    itemID,
		Available: available,
		Required:  required,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: available %s, required %s", e.ItemID, e.Available, e.Required)
}

// Unwrap lets errors.Is match shared.ErrInsufficientStock
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}

// Shortfall returns how much more stock the request needed
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Required.Sub(e.Available)
}
