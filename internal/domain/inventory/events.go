package inventory

import (
	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInventoryItem = "InventoryItem"

// Event type constants
const (
	EventTypeStockDeducted  = "inventory.stock_deducted"
	EventTypeStockRestocked = "inventory.stock_restocked"
	EventTypeBatchReceived  = "inventory.batch_received"
)

// BatchMovement is one batch-level line of a stock event
type BatchMovement struct {
	BatchID  uuid.UUID       `json:"batch_id"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// StockDeductedEvent is raised after stock of one item is consumed
type StockDeductedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	OrderID         *uuid.UUID      `json:"order_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Batches         []BatchMovement `json:"batches"`
}

// NewStockDeductedEvent creates a StockDeductedEvent from an allocation plan
func NewStockDeductedEvent(tenantID uuid.UUID, plan *AllocationPlan, orderID *uuid.UUID) *StockDeductedEvent {
	movements := make([]BatchMovement, 0, len(plan.Allocations))
	for _, a := range plan.Allocations {
		movements = append(movements, BatchMovement{BatchID: a.BatchID, Quantity: a.Quantity, UnitCost: a.UnitCost})
	}
	return &StockDeductedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDeducted, AggregateTypeInventoryItem, plan.ItemID, tenantID),
		InventoryItemID: plan.ItemID,
		OrderID:         copyID(orderID),
		Quantity:        plan.Total,
		TotalCost:       plan.TotalCost,
		Batches:         movements,
	}
}

// StockRestockedEvent is raised after a reversal returns stock of one item
type StockRestockedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	OrderID         uuid.UUID       `json:"order_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Batches         []BatchMovement `json:"batches"`
}

// NewStockRestockedEvent creates a StockRestockedEvent from the RESTOCK entries of one item
func NewStockRestockedEvent(tenantID, itemID, orderID uuid.UUID, entries []*LedgerEntry) *StockRestockedEvent {
	total := decimal.Zero
	movements := make([]BatchMovement, 0, len(entries))
	for _, e := range entries {
		total = total.Add(e.Quantity)
		movements = append(movements, BatchMovement{BatchID: e.BatchID, Quantity: e.Quantity, UnitCost: e.UnitCost})
	}
	return &StockRestockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRestocked, AggregateTypeInventoryItem, itemID, tenantID),
		InventoryItemID: itemID,
		OrderID:         orderID,
		Quantity:        total,
		Batches:         movements,
	}
}

// BatchReceivedEvent is raised when a new batch is added to an item
type BatchReceivedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	BatchID         uuid.UUID       `json:"batch_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
}

// NewBatchReceivedEvent creates a BatchReceivedEvent
func NewBatchReceivedEvent(tenantID uuid.UUID, batch *InventoryBatch) *BatchReceivedEvent {
	return &BatchReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchReceived, AggregateTypeInventoryItem, batch.InventoryItemID, tenantID),
		InventoryItemID: batch.InventoryItemID,
		BatchID:         batch.ID,
		Quantity:        batch.QuantityInitial,
		CostPerUnit:     batch.CostPerUnit,
	}
}
