package inventory

import (
	"context"

	"github.com/google/uuid"
)

// StockCache caches stock levels and notifies listeners when they change.
// A miss is reported as (nil, nil).
//
// Every Invalidate advances the item's generation. A reader takes the
// generation before loading from storage and passes it to Set, which stores
// nothing if an invalidation landed in between.
type StockCache interface {
	Get(ctx context.Context, itemID uuid.UUID) (*StockLevel, error)
	Generation(ctx context.Context, itemID uuid.UUID) (int64, error)
	// Set stores level if the item is still at generation and reports whether it did
	Set(ctx context.Context, level *StockLevel, generation int64) (bool, error)
	// Invalidate drops the cached level and announces the change to the tenant
	Invalidate(ctx context.Context, tenantID, itemID uuid.UUID) error
}

// NoopStockCache is a StockCache that never stores anything
type NoopStockCache struct{}

func (NoopStockCache) Get(context.Context, uuid.UUID) (*StockLevel, error) { return nil, nil }

func (NoopStockCache) Generation(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func (NoopStockCache) Set(context.Context, *StockLevel, int64) (bool, error) { return false, nil }

func (NoopStockCache) Invalidate(context.Context, uuid.UUID, uuid.UUID) error { return nil }
