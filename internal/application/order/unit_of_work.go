package order

import (
	"context"

	appinventory "github.com/qreats/backend/internal/application/inventory"
	"github.com/qreats/backend/internal/domain/order"
)

// Tx extends the inventory transaction with order repositories,
// all bound to the same storage transaction
type Tx interface {
	appinventory.Tx
	Orders() order.OrderRepository
	Recipes() order.RecipeRepository
	Refunds() order.RefundRepository
}

// UnitOfWork runs an order workflow inside one storage transaction
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(tx Tx) error) error
}
