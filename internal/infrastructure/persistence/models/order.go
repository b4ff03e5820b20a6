package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/qreats/backend/internal/domain/order"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	TenantAggregateModel
	Status      string           `gorm:"type:varchar(20);not null"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Lines       []OrderLineModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		Status:      order.Status(m.Status),
		TotalAmount: m.TotalAmount,
		Lines:       make([]order.Line, len(m.Lines)),
	}
	m.PopulateTenantAggregateRoot(&o.TenantAggregateRoot)
	for i := range m.Lines {
		o.Lines[i] = m.Lines[i].ToDomain()
	}
	return o
}

// OrderModelFromDomain creates a persistence model from a domain Order.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		Lines:       make([]OrderLineModel, len(o.Lines)),
	}
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	for i, l := range o.Lines {
		m.Lines[i] = OrderLineModel{
			ID:           l.ID,
			OrderID:      o.ID,
			MenuItemID:   l.MenuItemID,
			Quantity:     l.Quantity,
			PriceAtOrder: l.PriceAtOrder,
		}
	}
	return m
}

// OrderLineModel is the persistence model for an order line.
type OrderLineModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	MenuItemID   uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity     int             `gorm:"not null"`
	PriceAtOrder decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain Line.
func (m *OrderLineModel) ToDomain() order.Line {
	return order.Line{
		ID:           m.ID,
		OrderID:      m.OrderID,
		MenuItemID:   m.MenuItemID,
		Quantity:     m.Quantity,
		PriceAtOrder: m.PriceAtOrder,
	}
}

// RecipeModel is the persistence model for Recipe.
type RecipeModel struct {
	BaseModel
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_recipes_menu_item,priority:1"`
	MenuItemID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_recipes_menu_item,priority:2"`
	InventoryItemID  uuid.UUID       `gorm:"type:uuid;not null"`
	QuantityRequired decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (RecipeModel) TableName() string {
	return "recipes"
}

// ToDomain converts the persistence model to a domain Recipe.
func (m *RecipeModel) ToDomain() *order.Recipe {
	return &order.Recipe{
		BaseEntity:       m.BaseModel.ToDomain(),
		TenantID:         m.TenantID,
		MenuItemID:       m.MenuItemID,
		InventoryItemID:  m.InventoryItemID,
		QuantityRequired: m.QuantityRequired,
	}
}

// RecipeModelFromDomain creates a persistence model from a domain Recipe.
func RecipeModelFromDomain(r *order.Recipe) *RecipeModel {
	m := &RecipeModel{
		TenantID:         r.TenantID,
		MenuItemID:       r.MenuItemID,
		InventoryItemID:  r.InventoryItemID,
		QuantityRequired: r.QuantityRequired,
	}
	m.BaseModel.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// RefundModel is the persistence model for Refund.
type RefundModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason    string          `gorm:"type:varchar(500);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RefundModel) TableName() string {
	return "refunds"
}

// ToDomain converts the persistence model to a domain Refund.
func (m *RefundModel) ToDomain() *order.Refund {
	return &order.Refund{
		ID:        m.ID,
		TenantID:  m.TenantID,
		OrderID:   m.OrderID,
		Amount:    m.Amount,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
}

// RefundModelFromDomain creates a persistence model from a domain Refund.
func RefundModelFromDomain(r *order.Refund) *RefundModel {
	return &RefundModel{
		ID:        r.ID,
		TenantID:  r.TenantID,
		OrderID:   r.OrderID,
		Amount:    r.Amount,
		Reason:    r.Reason,
		CreatedAt: r.CreatedAt,
	}
}

// AllModels lists every persistence model, for AutoMigrate in tests.
func AllModels() []any {
	return []any{
		&InventoryItemModel{},
		&InventoryBatchModel{},
		&LedgerEntryModel{},
		&OrderModel{},
		&OrderLineModel{},
		&RecipeModel{},
		&RefundModel{},
	}
}
