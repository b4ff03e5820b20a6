package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appinventory "github.com/qreats/backend/internal/application/inventory"
	apporder "github.com/qreats/backend/internal/application/order"
	"github.com/qreats/backend/internal/domain/inventory"
	"github.com/qreats/backend/internal/domain/order"
)

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// ParseIsolationLevel maps the configured isolation level name to database/sql.
func ParseIsolationLevel(level string) (sql.IsolationLevel, error) {
	switch level {
	case "read_committed":
		return sql.LevelReadCommitted, nil
	case "repeatable_read":
		return sql.LevelRepeatableRead, nil
	case "", "serializable":
		return sql.LevelSerializable, nil
	default:
		return sql.LevelDefault, fmt.Errorf("unknown isolation level %q", level)
	}
}

// GormUnitOfWork runs ledger workflows in a GORM transaction.
// Serialization failures and deadlocks reported by PostgreSQL are retried
// with a short backoff; any other error rolls back and is returned as is.
type GormUnitOfWork struct {
	db         *gorm.DB
	isolation  sql.IsolationLevel
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
}

// UnitOfWorkOption configures a GormUnitOfWork
type UnitOfWorkOption func(*GormUnitOfWork)

// WithIsolation sets the transaction isolation level (PostgreSQL only)
func WithIsolation(level sql.IsolationLevel) UnitOfWorkOption {
	return func(u *GormUnitOfWork) { u.isolation = level }
}

// WithRetries sets how many times a conflicting transaction is retried
func WithRetries(n int, backoff time.Duration) UnitOfWorkOption {
	return func(u *GormUnitOfWork) {
		u.maxRetries = n
		u.backoff = backoff
	}
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB, logger *zap.Logger, opts ...UnitOfWorkOption) *GormUnitOfWork {
	if logger == nil {
		logger = zap.NewNop()
	}
	u := &GormUnitOfWork{
		db:         db,
		isolation:  sql.LevelSerializable,
		maxRetries: 3,
		backoff:    20 * time.Millisecond,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Execute implements appinventory.UnitOfWork
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(tx appinventory.Tx) error) error {
	return u.run(ctx, func(tx *gormTx) error { return fn(tx) })
}

// ForOrders returns a view of the unit of work that exposes order repositories
func (u *GormUnitOfWork) ForOrders() apporder.UnitOfWork {
	return orderUnitOfWork{u}
}

type orderUnitOfWork struct {
	u *GormUnitOfWork
}

func (o orderUnitOfWork) Execute(ctx context.Context, fn func(tx apporder.Tx) error) error {
	return o.u.run(ctx, func(tx *gormTx) error { return fn(tx) })
}

func (u *GormUnitOfWork) run(ctx context.Context, fn func(tx *gormTx) error) error {
	var opts []*sql.TxOptions
	if u.db.Dialector.Name() == "postgres" {
		opts = append(opts, &sql.TxOptions{Isolation: u.isolation})
	}

	for attempt := 0; ; attempt++ {
		err := u.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
			return fn(&gormTx{db: db})
		}, opts...)
		if err == nil || attempt >= u.maxRetries || !isRetryable(err) {
			return err
		}

		wait := u.backoff * time.Duration(attempt+1)
		u.logger.Debug("Retrying conflicting transaction",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
}

// gormTx binds every repository to one *gorm.DB transaction
type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) Items() inventory.ItemRepository    { return NewGormItemRepository(t.db) }
func (t *gormTx) Batches() inventory.BatchRepository { return NewGormBatchRepository(t.db) }
func (t *gormTx) Ledger() inventory.LedgerRepository { return NewGormLedgerRepository(t.db) }
func (t *gormTx) Orders() order.OrderRepository      { return NewGormOrderRepository(t.db) }
func (t *gormTx) Recipes() order.RecipeRepository    { return NewGormRecipeRepository(t.db) }
func (t *gormTx) Refunds() order.RefundRepository    { return NewGormRefundRepository(t.db) }

var (
	_ appinventory.UnitOfWork = (*GormUnitOfWork)(nil)
	_ apporder.UnitOfWork     = orderUnitOfWork{}
	_ apporder.Tx             = (*gormTx)(nil)
)
