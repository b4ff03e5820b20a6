package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/shared"
)

// ItemRepository defines the interface for inventory item persistence
type ItemRepository interface {
	// FindByID finds an item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindByIDForTenant finds an item by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*InventoryItem, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *InventoryItem) error
}

// BatchRepository defines the interface for inventory batch persistence.
// Batches are never deleted.
type BatchRepository interface {
	// FindByID finds a batch by ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryBatch, error)

	// FindByIDsForUpdate finds batches by ID in FIFO order and locks them
	// for the rest of the transaction
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]InventoryBatch, error)

	// FindOpenByItemForUpdate finds batches with remaining stock in FIFO order,
	// locking them for the rest of the transaction
	FindOpenByItemForUpdate(ctx context.Context, itemID uuid.UUID) ([]InventoryBatch, error)

	// FindByItem finds all batches of an item in FIFO order
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]InventoryBatch, error)

	// Save creates or updates a batch
	Save(ctx context.Context, batch *InventoryBatch) error
}

// LedgerRepository defines the interface for ledger entry persistence.
// Entries are append-only: there is no update or delete.
type LedgerRepository interface {
	// Append stores new entries
	Append(ctx context.Context, entries ...*LedgerEntry) error

	// FindDeductsByOrder returns the DEDUCT entries of an order, most recent first
	FindDeductsByOrder(ctx context.Context, orderID uuid.UUID) ([]LedgerEntry, error)

	// FindReversedEntryIDs returns which of the given DEDUCT entries already have a RESTOCK entry
	FindReversedEntryIDs(ctx context.Context, entryIDs []uuid.UUID) (map[uuid.UUID]bool, error)

	// FindByItem returns entries of an item, most recent first
	FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]LedgerEntry, int64, error)

	// FindAllByItem returns every entry of an item
	FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]LedgerEntry, error)
}
