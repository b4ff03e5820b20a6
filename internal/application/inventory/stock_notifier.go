package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockNotifier fans out the outcome of a committed unit of work.
// Failures are logged and never reported to the caller: the stock change
// has already been committed.
type StockNotifier struct {
	publisher shared.EventPublisher
	cache     StockCache
	logger    *zap.Logger
}

// NewStockNotifier creates a new StockNotifier. Nil collaborators are skipped.
func NewStockNotifier(publisher shared.EventPublisher, cache StockCache, logger *zap.Logger) *StockNotifier {
	if cache == nil {
		cache = NoopStockCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockNotifier{publisher: publisher, cache: cache, logger: logger}
}

// AfterCommit invalidates the cached levels of the items and publishes the events
func (n *StockNotifier) AfterCommit(ctx context.Context, tenantID uuid.UUID, itemIDs []uuid.UUID, events []shared.DomainEvent) {
	for _, itemID := range itemIDs {
		if err := n.cache.Invalidate(ctx, tenantID, itemID); err != nil {
			n.logger.Warn("Failed to invalidate stock cache",
				zap.String("tenant_id", tenantID.String()),
				zap.String("inventory_item_id", itemID.String()),
				zap.Error(err),
			)
		}
	}

	if n.publisher == nil || len(events) == 0 {
		return
	}
	if err := n.publisher.Publish(ctx, events...); err != nil {
		n.logger.Error("Failed to publish stock events",
			zap.String("tenant_id", tenantID.String()),
			zap.Int("event_count", len(events)),
			zap.Error(err),
		)
	}
}
