package order

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Recipe links a menu item to the inventory it consumes per unit sold
type Recipe struct {
	shared.BaseEntity
	TenantID         uuid.UUID
	MenuItemID       uuid.UUID
	InventoryItemID  uuid.UUID
	QuantityRequired decimal.Decimal
}

// NewRecipe creates a recipe line
func NewRecipe(tenantID, menuItemID, inventoryItemID uuid.UUID, quantity decimal.Decimal) (*Recipe, error) {
	if menuItemID == uuid.Nil || inventoryItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPE", "Recipe requires a menu item and an inventory item")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Recipe quantity must be positive")
	}
	if !shared.FitsScale(quantity) {
		return nil, shared.NewDomainError("INVALID_QUANTITY",
			fmt.Sprintf("Recipe quantity cannot have more than %d decimal places", shared.DecimalScale))
	}
	return &Recipe{
		BaseEntity:       shared.NewBaseEntity(),
		TenantID:         tenantID,
		MenuItemID:       menuItemID,
		InventoryItemID:  inventoryItemID,
		QuantityRequired: quantity,
	}, nil
}

// QuantityFor returns the inventory needed for the given number of units sold
func (r *Recipe) QuantityFor(units int) decimal.Decimal {
	return r.QuantityRequired.Mul(decimal.NewFromInt(int64(units)))
}
