package testutil

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	inventoryapp "github.com/qreats/backend/internal/application/inventory"
	orderapp "github.com/qreats/backend/internal/application/order"
	"github.com/qreats/backend/internal/infrastructure/event"
	"github.com/qreats/backend/internal/infrastructure/persistence"
)

// Stack is the ledger and order services wired over one database,
// with every committed event captured by Events.
type Stack struct {
	DB       *gorm.DB
	UoW      *persistence.GormUnitOfWork
	Bus      *event.InMemoryEventBus
	Events   *MockEventHandler
	Ledger   *inventoryapp.Ledger
	Stock    *inventoryapp.StockService
	Orders   *orderapp.OrderService
	Notifier *inventoryapp.StockNotifier
}

// NewStack wires the services over db. A nil db gets a fresh SQLite database.
func NewStack(t *testing.T, db *gorm.DB, opts ...persistence.UnitOfWorkOption) *Stack {
	t.Helper()
	if db == nil {
		db = NewSQLiteDB(t)
	}

	log := zap.NewNop()
	bus := event.NewInMemoryEventBus(log)
	events := NewMockEventHandler()
	bus.Subscribe(events)

	uow := persistence.NewGormUnitOfWork(db, log, opts...)
	ledger := inventoryapp.NewLedger(log)
	notifier := inventoryapp.NewStockNotifier(bus, inventoryapp.NoopStockCache{}, log)

	return &Stack{
		DB:       db,
		UoW:      uow,
		Bus:      bus,
		Events:   events,
		Ledger:   ledger,
		Notifier: notifier,
		Stock:    inventoryapp.NewStockService(uow, ledger, inventoryapp.NoopStockCache{}, notifier, log),
		Orders:   orderapp.NewOrderService(uow.ForOrders(), ledger, notifier, log),
	}
}
