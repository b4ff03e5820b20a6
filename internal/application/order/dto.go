package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderLineInput represents one line of a create-order request
type OrderLineInput struct {
	MenuItemID uuid.UUID       `json:"menu_item_id" binding:"required"`
	Quantity   int             `json:"quantity" binding:"required,min=1"`
	Price      decimal.Decimal `json:"price" binding:"decimal_gte_zero"`
}

// CreateOrderInput represents a request to place an order
type CreateOrderInput struct {
	TenantID    uuid.UUID        `json:"-"`
	Items       []OrderLineInput `json:"items" binding:"required,min=1,dive"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
}

// RefundOrderInput represents a request to refund an order
type RefundOrderInput struct {
	Reason string `json:"reason" binding:"max=255"`
}

// CreateRecipeInput represents a request to link a menu item to inventory
type CreateRecipeInput struct {
	MenuItemID       uuid.UUID       `json:"menu_item_id" binding:"required"`
	InventoryItemID  uuid.UUID       `json:"inventory_item_id" binding:"required"`
	QuantityRequired decimal.Decimal `json:"quantity_required" binding:"decimal_positive"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID           uuid.UUID       `json:"id"`
	MenuItemID   uuid.UUID       `json:"menu_item_id"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	TenantID    uuid.UUID           `json:"tenant_id"`
	Status      string              `json:"status"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Lines       []OrderLineResponse `json:"lines"`
	CreatedAt   time.Time           `json:"created_at"`
}

// RefundResponse represents a refund in API responses
type RefundResponse struct {
	ID             uuid.UUID       `json:"id"`
	OrderID        uuid.UUID       `json:"order_id"`
	Amount         decimal.Decimal `json:"amount"`
	Reason         string          `json:"reason"`
	RestockedLines int             `json:"restocked_lines"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RecipeResponse represents a recipe in API responses
type RecipeResponse struct {
	ID               uuid.UUID       `json:"id"`
	MenuItemID       uuid.UUID       `json:"menu_item_id"`
	InventoryItemID  uuid.UUID       `json:"inventory_item_id"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
}

// ToOrderResponse converts a domain order to a response
func ToOrderResponse(o *order.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			ID:           l.ID,
			MenuItemID:   l.MenuItemID,
			Quantity:     l.Quantity,
			PriceAtOrder: l.PriceAtOrder,
		}
	}
	return OrderResponse{
		ID:          o.ID,
		TenantID:    o.TenantID,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		Lines:       lines,
		CreatedAt:   o.CreatedAt,
	}
}
