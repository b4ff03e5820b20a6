package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchViolation describes a batch whose remaining quantity is out of bounds
type BatchViolation struct {
	BatchID           uuid.UUID       `json:"batch_id"`
	QuantityInitial   decimal.Decimal `json:"quantity_initial"`
	QuantityRemaining decimal.Decimal `json:"quantity_remaining"`
}

// Reconciliation compares the batch totals of an item with its ledger.
//
// For every item: Σ initial = Σ remaining + Σ deducted − Σ restocked.
// Drift is the left side minus the right side and must be zero.
type Reconciliation struct {
	ItemID         uuid.UUID        `json:"item_id"`
	TotalInitial   decimal.Decimal  `json:"total_initial"`
	TotalRemaining decimal.Decimal  `json:"total_remaining"`
	TotalDeducted  decimal.Decimal  `json:"total_deducted"`
	TotalRestocked decimal.Decimal  `json:"total_restocked"`
	Drift          decimal.Decimal  `json:"drift"`
	Violations     []BatchViolation `json:"violations,omitempty"`
}

// Balanced returns true when the ledger explains every batch movement
func (r Reconciliation) Balanced() bool {
	return r.Drift.IsZero() && len(r.Violations) == 0
}

// Reconcile checks the conservation invariant for one item
func Reconcile(itemID uuid.UUID, batches []InventoryBatch, entries []LedgerEntry) Reconciliation {
	r := Reconciliation{
		ItemID:         itemID,
		TotalInitial:   decimal.Zero,
		TotalRemaining: decimal.Zero,
		TotalDeducted:  decimal.Zero,
		TotalRestocked: decimal.Zero,
	}

	for _, b := range batches {
		r.TotalInitial = r.TotalInitial.Add(b.QuantityInitial)
		r.TotalRemaining = r.TotalRemaining.Add(b.QuantityRemaining)
		if b.QuantityRemaining.IsNegative() || b.QuantityRemaining.GreaterThan(b.QuantityInitial) {
			r.Violations = append(r.Violations, BatchViolation{
				BatchID:           b.ID,
				QuantityInitial:   b.QuantityInitial,
				QuantityRemaining: b.QuantityRemaining,
			})
		}
	}

	for _, e := range entries {
		switch e.Kind {
		case EntryKindDeduct:
			r.TotalDeducted = r.TotalDeducted.Add(e.Quantity)
		case EntryKindRestock:
			r.TotalRestocked = r.TotalRestocked.Add(e.Quantity)
		}
	}

	r.Drift = r.TotalInitial.Sub(r.TotalRemaining.Add(r.TotalDeducted).Sub(r.TotalRestocked))
	return r
}
