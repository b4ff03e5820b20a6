package inventory

import (
	"context"

	"github.com/qreats/backend/internal/domain/inventory"
)

// Tx gives access to the inventory repositories of one storage transaction.
// Every repository returned by a Tx shares that transaction, so the caller's
// commit or rollback covers all of them.
type Tx interface {
	// Items returns the inventory item repository scoped to the transaction
	Items() inventory.ItemRepository
	// Batches returns the batch repository scoped to the transaction
	Batches() inventory.BatchRepository
	// Ledger returns the ledger repository scoped to the transaction
	Ledger() inventory.LedgerRepository
}

// UnitOfWork runs a function inside one storage transaction.
// If the function returns an error, or the context is cancelled, every
// mutation made through the Tx is rolled back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(tx Tx) error) error
}
