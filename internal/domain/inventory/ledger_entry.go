package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryKind distinguishes consumption from reversal entries
type EntryKind string

const (
	EntryKindDeduct  EntryKind = "DEDUCT"
	EntryKindRestock EntryKind = "RESTOCK"
)

// IsValid returns true if the kind is known
func (k EntryKind) IsValid() bool {
	return k == EntryKindDeduct || k == EntryKindRestock
}

// LedgerEntry is one immutable record of a batch movement.
// Quantity is always a positive magnitude; the direction comes from Kind.
type LedgerEntry struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	InventoryItemID uuid.UUID
	BatchID         uuid.UUID
	Quantity        decimal.Decimal
	Kind            EntryKind
	OrderID         *uuid.UUID
	ReversesEntryID *uuid.UUID // set on RESTOCK entries
	UnitCost        decimal.Decimal
	CreatedAt       time.Time
}

// NewDeductEntry records quantity consumed from a batch
func NewDeductEntry(tenantID uuid.UUID, batch *InventoryBatch, quantity decimal.Decimal, orderID *uuid.UUID) (*LedgerEntry, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	return &LedgerEntry{
		ID:              shared.NewID(),
		TenantID:        tenantID,
		InventoryItemID: batch.InventoryItemID,
		BatchID:         batch.ID,
		Quantity:        quantity,
		Kind:            EntryKindDeduct,
		OrderID:         copyID(orderID),
		UnitCost:        batch.CostPerUnit,
		CreatedAt:       time.Now(),
	}, nil
}

// NewRestockEntry records the reversal of a DEDUCT entry
func NewRestockEntry(deduct *LedgerEntry) (*LedgerEntry, error) {
	if deduct.Kind != EntryKindDeduct {
		return nil, shared.NewDomainError("INVALID_REVERSAL", "Only DEDUCT entries can be reversed")
	}
	reverses := deduct.ID
	return &LedgerEntry{
		ID:              shared.NewID(),
		TenantID:        deduct.TenantID,
		InventoryItemID: deduct.InventoryItemID,
		BatchID:         deduct.BatchID,
		Quantity:        deduct.Quantity,
		Kind:            EntryKindRestock,
		OrderID:         copyID(deduct.OrderID),
		ReversesEntryID: &reverses,
		UnitCost:        deduct.UnitCost,
		CreatedAt:       time.Now(),
	}, nil
}

// SignedQuantity returns the stock delta of the entry: negative for DEDUCT, positive for RESTOCK
func (e *LedgerEntry) SignedQuantity() decimal.Decimal {
	if e.Kind == EntryKindDeduct {
		return e.Quantity.Neg()
	}
	return e.Quantity
}

// Cost returns quantity times the unit cost captured at entry time
func (e *LedgerEntry) Cost() decimal.Decimal {
	return e.Quantity.Mul(e.UnitCost)
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
