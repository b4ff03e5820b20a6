package inventory

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BatchStatus is derived from the remaining quantity of a batch
type BatchStatus string

const (
	BatchStatusOpen      BatchStatus = "OPEN"
	BatchStatusExhausted BatchStatus = "EXHAUSTED"
)

// InventoryBatch is a quantity of one item received at one moment at one unit cost.
// QuantityInitial, CostPerUnit and ReceivedAt never change after creation;
// QuantityRemaining always stays within [0, QuantityInitial].
type InventoryBatch struct {
	shared.BaseEntity
	InventoryItemID   uuid.UUID
	QuantityInitial   decimal.Decimal
	QuantityRemaining decimal.Decimal
	CostPerUnit       decimal.Decimal
	ReceivedAt        time.Time
}

// NewInventoryBatch creates a fully available batch
func NewInventoryBatch(itemID uuid.UUID, quantity, costPerUnit decimal.Decimal, receivedAt time.Time) (*InventoryBatch, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Inventory item ID cannot be empty")
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	if costPerUnit.IsNegative() || !shared.FitsScale(costPerUnit) {
		return nil, ErrInvalidCost
	}
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}
	return &InventoryBatch{
		BaseEntity:        shared.NewBaseEntity(),
		InventoryItemID:   itemID,
		QuantityInitial:   quantity,
		QuantityRemaining: quantity,
		CostPerUnit:       costPerUnit,
		ReceivedAt:        receivedAt,
	}, nil
}

// Status returns OPEN while stock remains and EXHAUSTED otherwise
func (b *InventoryBatch) Status() BatchStatus {
	if b.QuantityRemaining.IsPositive() {
		return BatchStatusOpen
	}
	return BatchStatusExhausted
}

// IsAvailable returns true if the batch can satisfy any deduction
func (b *InventoryBatch) IsAvailable() bool {
	return b.Status() == BatchStatusOpen
}

// Take removes quantity from the batch.
// It never partially applies: a quantity above the remaining stock is rejected.
func (b *InventoryBatch) Take(quantity decimal.Decimal) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	if quantity.GreaterThan(b.QuantityRemaining) {
		return fmt.Errorf("batch %s: take %s of %s: %w", b.ID, quantity, b.QuantityRemaining, ErrBatchUnderflow)
	}
	b.QuantityRemaining = b.QuantityRemaining.Sub(quantity)
	b.UpdatedAt = time.Now()
	return nil
}

// Credit returns quantity to the batch, reopening it if it was exhausted
func (b *InventoryBatch) Credit(quantity decimal.Decimal) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	next := b.QuantityRemaining.Add(quantity)
	if next.GreaterThan(b.QuantityInitial) {
		return fmt.Errorf("batch %s: credit %s onto %s of %s: %w", b.ID, quantity, b.QuantityRemaining, b.QuantityInitial, ErrBatchOverflow)
	}
	b.QuantityRemaining = next
	b.UpdatedAt = time.Now()
	return nil
}

// RemainingValue returns the FIFO valuation of what is left in the batch
func (b *InventoryBatch) RemainingValue() decimal.Decimal {
	return b.QuantityRemaining.Mul(b.CostPerUnit)
}

// Before reports whether b is consumed ahead of other under FIFO
func (b *InventoryBatch) Before(other *InventoryBatch) bool {
	if !b.ReceivedAt.Equal(other.ReceivedAt) {
		return b.ReceivedAt.Before(other.ReceivedAt)
	}
	return bytes.Compare(b.ID[:], other.ID[:]) < 0
}
