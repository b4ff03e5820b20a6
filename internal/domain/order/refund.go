package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultRefundReason is used when no reason is given
const DefaultRefundReason = "Full Refund"

// Refund records money returned for an order
type Refund struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	OrderID   uuid.UUID
	Amount    decimal.Decimal
	Reason    string
	CreatedAt time.Time
}

// NewRefund creates a refund record
func NewRefund(tenantID, orderID uuid.UUID, amount decimal.Decimal, reason string) *Refund {
	if reason == "" {
		reason = DefaultRefundReason
	}
	return &Refund{
		ID:        shared.NewID(),
		TenantID:  tenantID,
		OrderID:   orderID,
		Amount:    amount,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
}
