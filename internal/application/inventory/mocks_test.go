package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/inventory"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock implementation of inventory.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockBatchRepository is a mock implementation of inventory.BatchRepository
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryBatch), args.Error(1)
}

func (m *MockBatchRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]inventory.InventoryBatch, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryBatch), args.Error(1)
}

func (m *MockBatchRepository) FindOpenByItemForUpdate(ctx context.Context, itemID uuid.UUID) ([]inventory.InventoryBatch, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryBatch), args.Error(1)
}

func (m *MockBatchRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.InventoryBatch, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryBatch), args.Error(1)
}

func (m *MockBatchRepository) Save(ctx context.Context, batch *inventory.InventoryBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of inventory.LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, entries ...*inventory.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindDeductsByOrder(ctx context.Context, orderID uuid.UUID) ([]inventory.LedgerEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindReversedEntryIDs(ctx context.Context, entryIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

func (m *MockLedgerRepository) FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]inventory.LedgerEntry, int64, error) {
	args := m.Called(ctx, itemID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]inventory.LedgerEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepository) FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.LedgerEntry, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.LedgerEntry), args.Error(1)
}

// MockStockCache is a mock implementation of StockCache
type MockStockCache struct {
	mock.Mock
}

func (m *MockStockCache) Get(ctx context.Context, itemID uuid.UUID) (*StockLevel, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StockLevel), args.Error(1)
}

func (m *MockStockCache) Generation(ctx context.Context, itemID uuid.UUID) (int64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockCache) Set(ctx context.Context, level *StockLevel, generation int64) (bool, error) {
	args := m.Called(ctx, level, generation)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockCache) Invalidate(ctx context.Context, tenantID, itemID uuid.UUID) error {
	args := m.Called(ctx, tenantID, itemID)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// mockTx bundles the mock repositories behind the Tx interface
type mockTx struct {
	items   *MockItemRepository
	batches *MockBatchRepository
	ledger  *MockLedgerRepository
}

func newMockTx() *mockTx {
	return &mockTx{
		items:   new(MockItemRepository),
		batches: new(MockBatchRepository),
		ledger:  new(MockLedgerRepository),
	}
}

func (t *mockTx) Items() inventory.ItemRepository    { return t.items }
func (t *mockTx) Batches() inventory.BatchRepository { return t.batches }
func (t *mockTx) Ledger() inventory.LedgerRepository { return t.ledger }

func (t *mockTx) assertExpectations(tt mock.TestingT) {
	t.items.AssertExpectations(tt)
	t.batches.AssertExpectations(tt)
	t.ledger.AssertExpectations(tt)
}

// mockUnitOfWork runs the function directly on the mock Tx.
// Rollback is not simulated; tests assert on what was attempted.
type mockUnitOfWork struct {
	tx *mockTx
}

func (u *mockUnitOfWork) Execute(_ context.Context, fn func(tx Tx) error) error {
	return fn(u.tx)
}
