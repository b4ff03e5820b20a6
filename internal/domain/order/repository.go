package order

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByIDForTenant finds an order with its lines
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByIDForUpdate finds an order and locks it for the rest of the transaction
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// Save creates or updates an order and its lines
	Save(ctx context.Context, order *Order) error
}

// RecipeRepository defines the interface for recipe persistence
type RecipeRepository interface {
	// FindByMenuItem returns the recipes of a menu item
	FindByMenuItem(ctx context.Context, tenantID, menuItemID uuid.UUID) ([]Recipe, error)

	// Save creates or updates a recipe
	Save(ctx context.Context, recipe *Recipe) error
}

// RefundRepository defines the interface for refund persistence
type RefundRepository interface {
	// Create stores a refund
	Create(ctx context.Context, refund *Refund) error

	// FindByOrder returns the refunds of an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Refund, error)
}
