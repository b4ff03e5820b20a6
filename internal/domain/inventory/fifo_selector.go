package inventory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation is the quantity a plan takes from a single batch
type Allocation struct {
	BatchID  uuid.UUID
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Cost returns the value of the allocation at the batch's unit cost
func (a Allocation) Cost() decimal.Decimal {
	return a.Quantity.Mul(a.UnitCost)
}

// AllocationPlan is the ordered set of batch allocations that satisfies one deduction
type AllocationPlan struct {
	ItemID      uuid.UUID
	Allocations []Allocation
	Total       decimal.Decimal
	TotalCost   decimal.Decimal
}

// BatchCount returns the number of batches the plan touches
func (p *AllocationPlan) BatchCount() int {
	return len(p.Allocations)
}

// SelectFIFO plans a deduction of required units across batches, oldest first.
//
// Batches with nothing remaining are ignored. The rest are ordered by ReceivedAt
// ascending, ties broken by ID. When the open batches cannot cover required, an
// *InsufficientStockError is returned and no plan is produced.
// The input slice and batches are not modified.
func SelectFIFO(itemID uuid.UUID, required decimal.Decimal, batches []InventoryBatch) (*AllocationPlan, error) {
	if err := ValidateQuantity(required); err != nil {
		return nil, err
	}

	open := make([]*InventoryBatch, 0, len(batches))
	available := decimal.Zero
	for i := range batches {
		b := &batches[i]
		if !b.IsAvailable() {
			continue
		}
		open = append(open, b)
		available = available.Add(b.QuantityRemaining)
	}

	if available.LessThan(required) {
		return nil, NewInsufficientStockError(itemID, available, required)
	}

	sort.SliceStable(open, func(i, j int) bool {
		return open[i].Before(open[j])
	})

	plan := &AllocationPlan{
		ItemID:      itemID,
		Allocations: make([]Allocation, 0, len(open)),
		Total:       decimal.Zero,
		TotalCost:   decimal.Zero,
	}
	need := required
	for _, b := range open {
		if !need.IsPositive() {
			break
		}
		take := decimal.Min(need, b.QuantityRemaining)
		alloc := Allocation{
			BatchID:  b.ID,
			Quantity: take,
			UnitCost: b.CostPerUnit,
		}
		plan.Allocations = append(plan.Allocations, alloc)
		plan.Total = plan.Total.Add(take)
		plan.TotalCost = plan.TotalCost.Add(alloc.Cost())
		need = need.Sub(take)
	}

	return plan, nil
}
