package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents a request to register an inventory item
type CreateItemRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
	Unit string `json:"unit" binding:"required,oneof=COUNT MASS VOLUME"`
}

// ReceiveBatchRequest represents a request to add a batch to an item
type ReceiveBatchRequest struct {
	Quantity    decimal.Decimal `json:"quantity" binding:"decimal_positive"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit" binding:"decimal_gte_zero"`
	ReceivedAt  *time.Time      `json:"received_at"`
}

// AdjustStockRequest represents a manual deduction not tied to an order
type AdjustStockRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"decimal_positive"`
	Reason   string          `json:"reason" binding:"max=255"`
}

// LedgerListFilter represents paging options for ledger listings
type LedgerListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

// BatchResponse represents a batch in API responses
type BatchResponse struct {
	ID                uuid.UUID       `json:"id"`
	InventoryItemID   uuid.UUID       `json:"inventory_item_id"`
	QuantityInitial   decimal.Decimal `json:"quantity_initial"`
	QuantityRemaining decimal.Decimal `json:"quantity_remaining"`
	CostPerUnit       decimal.Decimal `json:"cost_per_unit"`
	Status            string          `json:"status"`
	ReceivedAt        time.Time       `json:"received_at"`
}

// LedgerEntryResponse represents a ledger entry in API responses
type LedgerEntryResponse struct {
	ID              uuid.UUID       `json:"id"`
	BatchID         uuid.UUID       `json:"batch_id"`
	Kind            string          `json:"kind"`
	Quantity        decimal.Decimal `json:"quantity"`
	SignedQuantity  decimal.Decimal `json:"signed_quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	OrderID         *uuid.UUID      `json:"order_id,omitempty"`
	ReversesEntryID *uuid.UUID      `json:"reverses_entry_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// AllocationResponse is one batch allocation of a deduction
type AllocationResponse struct {
	BatchID  uuid.UUID       `json:"batch_id"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// DeductionResponse represents the outcome of a deduction
type DeductionResponse struct {
	InventoryItemID uuid.UUID            `json:"inventory_item_id"`
	Quantity        decimal.Decimal      `json:"quantity"`
	TotalCost       decimal.Decimal      `json:"total_cost"`
	Allocations     []AllocationResponse `json:"allocations"`
}

// StockLevel is the on-hand position of one item
type StockLevel struct {
	ItemID      uuid.UUID       `json:"item_id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	OnHand      decimal.Decimal `json:"on_hand"`
	OpenBatches int             `json:"open_batches"`
	Valuation   decimal.Decimal `json:"valuation"`
	ComputedAt  time.Time       `json:"computed_at"`
}

// ToItemResponse converts a domain item to a response
func ToItemResponse(item *inventory.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		TenantID:  item.TenantID,
		Name:      item.Name,
		Unit:      string(item.Unit),
		CreatedAt: item.CreatedAt,
	}
}

// ToBatchResponse converts a domain batch to a response
func ToBatchResponse(b *inventory.InventoryBatch) BatchResponse {
	return BatchResponse{
		ID:                b.ID,
		InventoryItemID:   b.InventoryItemID,
		QuantityInitial:   b.QuantityInitial,
		QuantityRemaining: b.QuantityRemaining,
		CostPerUnit:       b.CostPerUnit,
		Status:            string(b.Status()),
		ReceivedAt:        b.ReceivedAt,
	}
}

// ToLedgerEntryResponse converts a ledger entry to a response
func ToLedgerEntryResponse(e *inventory.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:              e.ID,
		BatchID:         e.BatchID,
		Kind:            string(e.Kind),
		Quantity:        e.Quantity,
		SignedQuantity:  e.SignedQuantity(),
		UnitCost:        e.UnitCost,
		OrderID:         e.OrderID,
		ReversesEntryID: e.ReversesEntryID,
		CreatedAt:       e.CreatedAt,
	}
}

// ToDeductionResponse converts an allocation plan to a response
func ToDeductionResponse(plan *inventory.AllocationPlan) DeductionResponse {
	allocs := make([]AllocationResponse, len(plan.Allocations))
	for i, a := range plan.Allocations {
		allocs[i] = AllocationResponse{BatchID: a.BatchID, Quantity: a.Quantity, UnitCost: a.UnitCost}
	}
	return DeductionResponse{
		InventoryItemID: plan.ItemID,
		Quantity:        plan.Total,
		TotalCost:       plan.TotalCost,
		Allocations:     allocs,
	}
}

// NewStockLevel summarizes the batches of an item
func NewStockLevel(item *inventory.InventoryItem, batches []inventory.InventoryBatch) *StockLevel {
	level := &StockLevel{
		ItemID:     item.ID,
		TenantID:   item.TenantID,
		Name:       item.Name,
		Unit:       string(item.Unit),
		OnHand:     decimal.Zero,
		Valuation:  decimal.Zero,
		ComputedAt: time.Now(),
	}
	for i := range batches {
		if !batches[i].IsAvailable() {
			continue
		}
		level.OnHand = level.OnHand.Add(batches[i].QuantityRemaining)
		level.Valuation = level.Valuation.Add(batches[i].RemainingValue())
		level.OpenBatches++
	}
	return level
}
