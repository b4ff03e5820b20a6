package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusPaid     Status = "PAID"
	StatusRefunded Status = "REFUNDED"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// ErrAlreadyRefunded is returned when a refund is requested twice
var ErrAlreadyRefunded = shared.NewDomainError("ORDER_ALREADY_REFUNDED", "Order already refunded")

// Line is one menu item of an order
type Line struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	MenuItemID   uuid.UUID
	Quantity     int
	PriceAtOrder decimal.Decimal
}

// Subtotal returns price times quantity
func (l Line) Subtotal() decimal.Decimal {
	return l.PriceAtOrder.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineInput describes a line to add to a new order
type LineInput struct {
	MenuItemID uuid.UUID
	Quantity   int
	Price      decimal.Decimal
}

// Order is a customer order whose lines consume inventory through recipes
type Order struct {
	shared.TenantAggregateRoot
	Status      Status
	TotalAmount decimal.Decimal
	Lines       []Line
}

// NewOrder creates a pending order.
// When total is zero the sum of the line subtotals is used.
func NewOrder(tenantID uuid.UUID, lines []LineInput, total decimal.Decimal) (*Order, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one line")
	}
	if total.IsNegative() || !shared.FitsScale(total) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order total must be zero or positive with at most 4 decimal places")
	}

	o := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Status:              StatusPending,
		Lines:               make([]Line, 0, len(lines)),
	}
	sum := decimal.Zero
	for _, in := range lines {
		if in.MenuItemID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_MENU_ITEM", "Menu item ID cannot be empty")
		}
		if in.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
		}
		if in.Price.IsNegative() || !shared.FitsScale(in.Price) {
			return nil, shared.NewDomainError("INVALID_PRICE", "Line price must be zero or positive with at most 4 decimal places")
		}
		line := Line{
			ID:           shared.NewID(),
			OrderID:      o.ID,
			MenuItemID:   in.MenuItemID,
			Quantity:     in.Quantity,
			PriceAtOrder: in.Price,
		}
		sum = sum.Add(line.Subtotal())
		o.Lines = append(o.Lines, line)
	}
	if total.IsZero() {
		total = sum
	}
	o.TotalAmount = total
	return o, nil
}

// MarkPaid moves a pending order to PAID
func (o *Order) MarkPaid() error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be paid")
	}
	o.Status = StatusPaid
	o.touch()
	return nil
}

// MarkRefunded moves the order to REFUNDED and returns the refund record for its total
func (o *Order) MarkRefunded(reason string) (*Refund, error) {
	if o.Status == StatusRefunded {
		return nil, ErrAlreadyRefunded
	}
	o.Status = StatusRefunded
	o.touch()
	return NewRefund(o.TenantID, o.ID, o.TotalAmount, reason), nil
}

// IsRefunded returns true if the order has been refunded
func (o *Order) IsRefunded() bool {
	return o.Status == StatusRefunded
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
