package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/inventory"
	"github.com/qreats/backend/internal/domain/order"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

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
	return m.Called(ctx, item).Error(0)
}

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
	return m.Called(ctx, batch).Error(0)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, entries ...*inventory.LedgerEntry) error {
	return m.Called(ctx, entries).Error(0)
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

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) FindByMenuItem(ctx context.Context, tenantID, menuItemID uuid.UUID) ([]order.Recipe, error) {
	args := m.Called(ctx, tenantID, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Save(ctx context.Context, recipe *order.Recipe) error {
	return m.Called(ctx, recipe).Error(0)
}

type MockRefundRepository struct {
	mock.Mock
}

func (m *MockRefundRepository) Create(ctx context.Context, refund *order.Refund) error {
	return m.Called(ctx, refund).Error(0)
}

func (m *MockRefundRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]order.Refund, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Refund), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

type mockTx struct {
	items   *MockItemRepository
	batches *MockBatchRepository
	ledger  *MockLedgerRepository
	orders  *MockOrderRepository
	recipes *MockRecipeRepository
	refunds *MockRefundRepository
}

func newMockTx() *mockTx {
	return &mockTx{
		items:   new(MockItemRepository),
		batches: new(MockBatchRepository),
		ledger:  new(MockLedgerRepository),
		orders:  new(MockOrderRepository),
		recipes: new(MockRecipeRepository),
		refunds: new(MockRefundRepository),
	}
}

func (t *mockTx) Items() inventory.ItemRepository    { return t.items }
func (t *mockTx) Batches() inventory.BatchRepository { return t.batches }
func (t *mockTx) Ledger() inventory.LedgerRepository { return t.ledger }
func (t *mockTx) Orders() order.OrderRepository      { return t.orders }
func (t *mockTx) Recipes() order.RecipeRepository    { return t.recipes }
func (t *mockTx) Refunds() order.RefundRepository    { return t.refunds }

type mockUnitOfWork struct {
	tx *mockTx
}

func (u *mockUnitOfWork) Execute(_ context.Context, fn func(tx Tx) error) error {
	return fn(u.tx)
}
