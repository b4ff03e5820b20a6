package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/inventory"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type ledgerFixture struct {
	tenantID uuid.UUID
	item     *inventory.InventoryItem
	batchA   inventory.InventoryBatch
	batchB   inventory.InventoryBatch
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	tenantID := uuid.New()
	item, err := inventory.NewInventoryItem(tenantID, "Flour", inventory.UnitMass)
	require.NoError(t, err)

	received := time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC)
	a, err := inventory.NewInventoryBatch(item.ID, dec("10"), dec("5.00"), received)
	require.NoError(t, err)
	b, err := inventory.NewInventoryBatch(item.ID, dec("10"), dec("10.00"), received.Add(48*time.Hour))
	require.NoError(t, err)

	return &ledgerFixture{tenantID: tenantID, item: item, batchA: *a, batchB: *b}
}

func TestLedger_Deduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Spans batches oldest first", func(t *testing.T) {
		f := newLedgerFixture(t)
		tx := newMockTx()
		ledger := NewLedger(zap.NewNop())
		orderID := uuid.New()

		saved := map[uuid.UUID]decimal.Decimal{}
		tx.items.On("FindByID", mock.Anything, f.item.ID).Return(f.item, nil)
		tx.batches.On("FindOpenByItemForUpdate", mock.Anything, f.item.ID).
			Return([]inventory.InventoryBatch{f.batchA, f.batchB}, nil)
		tx.batches.On("Save", mock.Anything, mock.AnythingOfType("*inventory.InventoryBatch")).
			Run(func(args mock.Arguments) {
				b := args.Get(1).(*inventory.InventoryBatch)
				saved[b.ID] = b.QuantityRemaining
			}).Return(nil).Times(2)
		tx.ledger.On("Append", mock.Anything, mock.MatchedBy(func(es []*inventory.LedgerEntry) bool {
			return len(es) == 2
		})).Return(nil)

		result, err := ledger.Deduct(ctx, tx, f.item.ID, dec("15"), &orderID)
		require.NoError(t, err)

		assert.True(t, saved[f.batchA.ID].IsZero())
		assert.True(t, saved[f.batchB.ID].Equal(dec("5")))
		assert.True(t, result.Plan.TotalCost.Equal(dec("100.00")))

		require.Len(t, result.Entries, 2)
		first, second := result.Entries[0], result.Entries[1]
		assert.Equal(t, f.batchA.ID, first.BatchID)
		assert.True(t, first.Quantity.Equal(dec("10")))
		assert.Equal(t, f.batchB.ID, second.BatchID)
		assert.True(t, second.Quantity.Equal(dec("5")))
		for _, e := range result.Entries {
			assert.Equal(t, inventory.EntryKindDeduct, e.Kind)
			assert.Equal(t, f.tenantID, e.TenantID)
			assert.Equal(t, orderID, *e.OrderID)
		}

		require.Len(t, result.Events, 1)
		assert.Equal(t, inventory.EventTypeStockDeducted, result.Events[0].EventType())
		tx.assertExpectations(t)
	})

	t.Run("Deduction without order", func(t *testing.T) {
		f := newLedgerFixture(t)
		tx := newMockTx()
		ledger := NewLedger(nil)

		tx.items.On("FindByID", mock.Anything, f.item.ID).Return(f.item, nil)
		tx.batches.On("FindOpenByItemForUpdate", mock.Anything, f.item.ID).
			Return([]inventory.InventoryBatch{f.batchA}, nil)
		tx.batches.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
		tx.ledger.On("Append", mock.Anything, mock.Anything).Return(nil)

		result, err := ledger.Deduct(ctx, tx, f.item.ID, dec("3"), nil)
		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.Nil(t, result.Entries[0].OrderID)
	})

	t.Run("Rejects non-positive quantity before touching storage", func(t *testing.T) {
		tx := newMockTx()
		ledger := NewLedger(nil)

		_, err := ledger.Deduct(ctx, tx, uuid.New(), decimal.Zero, nil)
		assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)

		_, err = ledger.Deduct(ctx, tx, uuid.New(), dec("-2"), nil)
		assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)

		tx.items.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Rejects quantity finer than the stored scale", func(t *testing.T) {
		f := newLedgerFixture(t)
		tx := newMockTx()
		ledger := NewLedger(nil)

		_, err := ledger.Deduct(ctx, tx, f.item.ID, dec("0.00005"), nil)
		assert.ErrorIs(t, err, inventory.ErrQuantityPrecision)
		assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)

		tx.items.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		tx.batches.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		tx.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Keeps four-decimal deductions exact", func(t *testing.T) {
		f := newLedgerFixture(t)
		tx := newMockTx()
		ledger := NewLedger(nil)

		tx.items.On("FindByID", mock.Anything, f.item.ID).Return(f.item, nil)
		tx.batches.On("FindOpenByItemForUpdate", mock.Anything, f.item.ID).
			Return([]inventory.InventoryBatch{f.batchA}, nil)
		tx.batches.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
		tx.ledger.On("Append", mock.Anything, mock.Anything).Return(nil)

		result, err := ledger.Deduct(ctx, tx, f.item.ID, dec("0.0001"), nil)
		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "0.0001", result.Entries[0].Quantity.String())
		assert.True(t, shared.FitsScale(result.Plan.Allocations[0].Quantity))
	})

	t.Run("Insufficient stock mutates nothing", func(t *testing.T) {
		f := newLedgerFixture(t)
		tx := newMockTx()
		ledger := NewLedger(nil)

		tx.items.On("FindByID", mock.Anything, f.item.ID).Return(f.item, nil)
		tx.batches.On("FindOpenByItemForUpdate", mock.Anything, f.item.ID).
			Return([]inventory.InventoryBatch{f.batchA, f.batchB}, nil)

		_, err := ledger.Deduct(ctx, tx, f.item.ID, dec("25"), nil)
		require.Error(t, err)

		var stockErr *inventory.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.True(t, stockErr.Available.Equal(dec("20")))
		assert.True(t, stockErr.Required.Equal(dec("25")))
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		tx.batches.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		tx.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Unknown item", func(t *testing.T) {
		tx := newMockTx()
		ledger := NewLedger(nil)
		itemID := uuid.New()
		tx.items.On("FindByID", mock.Anything, itemID).Return(nil, shared.ErrNotFound)

		_, err := ledger.Deduct(ctx, tx, itemID, dec("1"), nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Storage failure is propagated", func(t *testing.T) {
		f := newLedgerFixture(t)
		tx := newMockTx()
		ledger := NewLedger(nil)
		storageErr := errors.New("connection reset")

		tx.items.On("FindByID", mock.Anything, f.item.ID).Return(f.item, nil)
		tx.batches.On("FindOpenByItemForUpdate", mock.Anything, f.item.ID).
			Return([]inventory.InventoryBatch{f.batchA}, nil)
		tx.batches.On("Save", mock.Anything, mock.Anything).Return(nil)
		tx.ledger.On("Append", mock.Anything, mock.Anything).Return(storageErr)

		_, err := ledger.Deduct(ctx, tx, f.item.ID, dec("1"), nil)
		assert.ErrorIs(t, err, storageErr)
	})
}

func TestLedger_Restock(t *testing.T) {
	ctx := context.Background()

	// deductEntries builds the entries of a 15-unit deduction over A and B,
	// returned most recent first
	deductEntries := func(t *testing.T, f *ledgerFixture, orderID uuid.UUID) (inventory.InventoryBatch, inventory.InventoryBatch, []inventory.LedgerEntry) {
		a, b := f.batchA, f.batchB
		require.NoError(t, a.Take(dec("10")))
		require.NoError(t, b.Take(dec("5")))
		ea, err := inventory.NewDeductEntry(f.tenantID, &a, dec("10"), &orderID)
		require.NoError(t, err)
		eb, err := inventory.NewDeductEntry(f.tenantID, &b, dec("5"), &orderID)
		require.NoError(t, err)
		return a, b, []inventory.LedgerEntry{*eb, *ea}
	}

	t.Run("Credits the exact batches most recent first", func(t *testing.T) {
		f := newLedgerFixture(t)
		orderID := uuid.New()
		a, b, entries := deductEntries(t, f, orderID)
		tx := newMockTx()
		ledger := NewLedger(zap.NewNop())

		saved := map[uuid.UUID]decimal.Decimal{}
		var appended []*inventory.LedgerEntry
		tx.ledger.On("FindDeductsByOrder", mock.Anything, orderID).Return(entries, nil)
		tx.ledger.On("FindReversedEntryIDs", mock.Anything, []uuid.UUID{entries[0].ID, entries[1].ID}).
			Return(map[uuid.UUID]bool{}, nil)
		tx.batches.On("FindByIDsForUpdate", mock.Anything, []uuid.UUID{b.ID, a.ID}).
			Return([]inventory.InventoryBatch{a, b}, nil)
		tx.batches.On("Save", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				batch := args.Get(1).(*inventory.InventoryBatch)
				saved[batch.ID] = batch.QuantityRemaining
			}).Return(nil).Times(2)
		tx.ledger.On("Append", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				appended = args.Get(1).([]*inventory.LedgerEntry)
			}).Return(nil)

		result, err := ledger.Restock(ctx, tx, orderID)
		require.NoError(t, err)

		assert.True(t, saved[a.ID].Equal(dec("10")))
		assert.True(t, saved[b.ID].Equal(dec("10")))
		require.Len(t, appended, 2)
		assert.Equal(t, entries[0].ID, *appended[0].ReversesEntryID)
		assert.Equal(t, b.ID, appended[0].BatchID)
		assert.Equal(t, entries[1].ID, *appended[1].ReversesEntryID)
		assert.Equal(t, a.ID, appended[1].BatchID)
		for _, e := range appended {
			assert.Equal(t, inventory.EntryKindRestock, e.Kind)
			assert.Equal(t, orderID, *e.OrderID)
		}

		assert.Equal(t, 0, result.Skipped)
		assert.Equal(t, []uuid.UUID{f.item.ID}, result.ItemIDs)
		require.Len(t, result.Events, 1)
		assert.Equal(t, inventory.EventTypeStockRestocked, result.Events[0].EventType())
		tx.assertExpectations(t)
	})

	t.Run("Order without deductions is a no-op", func(t *testing.T) {
		tx := newMockTx()
		ledger := NewLedger(nil)
		orderID := uuid.New()
		tx.ledger.On("FindDeductsByOrder", mock.Anything, orderID).Return([]inventory.LedgerEntry{}, nil)

		result, err := ledger.Restock(ctx, tx, orderID)
		require.NoError(t, err)
		assert.Empty(t, result.Entries)
		tx.batches.AssertNotCalled(t, "FindByIDsForUpdate", mock.Anything, mock.Anything)
		tx.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Second reversal is skipped", func(t *testing.T) {
		f := newLedgerFixture(t)
		orderID := uuid.New()
		_, _, entries := deductEntries(t, f, orderID)
		tx := newMockTx()
		ledger := NewLedger(nil)

		tx.ledger.On("FindDeductsByOrder", mock.Anything, orderID).Return(entries, nil)
		tx.ledger.On("FindReversedEntryIDs", mock.Anything, mock.Anything).
			Return(map[uuid.UUID]bool{entries[0].ID: true, entries[1].ID: true}, nil)

		result, err := ledger.Restock(ctx, tx, orderID)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Skipped)
		assert.Empty(t, result.Entries)
		tx.batches.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		tx.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Overflowing credit aborts", func(t *testing.T) {
		f := newLedgerFixture(t)
		orderID := uuid.New()
		a, b, entries := deductEntries(t, f, orderID)
		tx := newMockTx()
		ledger := NewLedger(nil)

		// batch B was already credited out of band
		require.NoError(t, b.Credit(dec("5")))

		tx.ledger.On("FindDeductsByOrder", mock.Anything, orderID).Return(entries, nil)
		tx.ledger.On("FindReversedEntryIDs", mock.Anything, mock.Anything).Return(map[uuid.UUID]bool{}, nil)
		tx.batches.On("FindByIDsForUpdate", mock.Anything, mock.Anything).
			Return([]inventory.InventoryBatch{a, b}, nil)

		_, err := ledger.Restock(ctx, tx, orderID)
		assert.ErrorIs(t, err, inventory.ErrBatchOverflow)
		tx.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}
