package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/inventory"
	"github.com/qreats/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockService handles item registration, batch receiving and stock queries
type StockService struct {
	uow      UnitOfWork
	ledger   *Ledger
	cache    StockCache
	notifier *StockNotifier
	logger   *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(uow UnitOfWork, ledger *Ledger, cache StockCache, notifier *StockNotifier, logger *zap.Logger) *StockService {
	if cache == nil {
		cache = NoopStockCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewStockNotifier(nil, cache, logger)
	}
	return &StockService{
		uow:      uow,
		ledger:   ledger,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateItem registers a new inventory item
func (s *StockService) CreateItem(ctx context.Context, tenantID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	item, err := inventory.NewInventoryItem(tenantID, req.Name, inventory.UnitOfMeasure(req.Unit))
	if err != nil {
		return nil, err
	}
	err = s.uow.Execute(ctx, func(tx Tx) error {
		return tx.Items().Save(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// ReceiveBatch adds a fully available batch to an item
func (s *StockService) ReceiveBatch(ctx context.Context, tenantID, itemID uuid.UUID, req ReceiveBatchRequest) (*BatchResponse, error) {
	receivedAt := time.Now()
	if req.ReceivedAt != nil {
		receivedAt = *req.ReceivedAt
	}

	var batch *inventory.InventoryBatch
	err := s.uow.Execute(ctx, func(tx Tx) error {
		if _, err := tx.Items().FindByIDForTenant(ctx, tenantID, itemID); err != nil {
			return err
		}
		b, err := inventory.NewInventoryBatch(itemID, req.Quantity, req.CostPerUnit, receivedAt)
		if err != nil {
			return err
		}
		if err := tx.Batches().Save(ctx, b); err != nil {
			return fmt.Errorf("save batch: %w", err)
		}
		batch = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.AfterCommit(ctx, tenantID, []uuid.UUID{itemID},
		[]shared.DomainEvent{inventory.NewBatchReceivedEvent(tenantID, batch)})

	resp := ToBatchResponse(batch)
	return &resp, nil
}

// GetStockLevel returns the on-hand position of an item, served from cache when possible
func (s *StockService) GetStockLevel(ctx context.Context, tenantID, itemID uuid.UUID) (*StockLevel, error) {
	cached, err := s.cache.Get(ctx, itemID)
	if err != nil {
		s.logger.Warn("Stock cache read failed", zap.String("inventory_item_id", itemID.String()), zap.Error(err))
	}
	if cached != nil && cached.TenantID == tenantID {
		return cached, nil
	}

	generation, genErr := s.cache.Generation(ctx, itemID)
	if genErr != nil {
		s.logger.Warn("Stock cache generation read failed", zap.String("inventory_item_id", itemID.String()), zap.Error(genErr))
	}

	var level *StockLevel
	err = s.uow.Execute(ctx, func(tx Tx) error {
		item, err := tx.Items().FindByIDForTenant(ctx, tenantID, itemID)
		if err != nil {
			return err
		}
		batches, err := tx.Batches().FindByItem(ctx, itemID)
		if err != nil {
			return fmt.Errorf("load batches: %w", err)
		}
		level = NewStockLevel(item, batches)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		return level, nil
	}
	stored, err := s.cache.Set(ctx, level, generation)
	if err != nil {
		s.logger.Warn("Stock cache write failed", zap.String("inventory_item_id", itemID.String()), zap.Error(err))
	} else if !stored {
		s.logger.Debug("Stock changed during read, level not cached", zap.String("inventory_item_id", itemID.String()))
	}
	return level, nil
}

// ListBatches returns every batch of an item in FIFO order
func (s *StockService) ListBatches(ctx context.Context, tenantID, itemID uuid.UUID) ([]BatchResponse, error) {
	var out []BatchResponse
	err := s.uow.Execute(ctx, func(tx Tx) error {
		if _, err := tx.Items().FindByIDForTenant(ctx, tenantID, itemID); err != nil {
			return err
		}
		batches, err := tx.Batches().FindByItem(ctx, itemID)
		if err != nil {
			return fmt.Errorf("load batches: %w", err)
		}
		out = make([]BatchResponse, len(batches))
		for i := range batches {
			out[i] = ToBatchResponse(&batches[i])
		}
		return nil
	})
	return out, err
}

// ListLedger returns the ledger entries of an item, most recent first
func (s *StockService) ListLedger(ctx context.Context, tenantID, itemID uuid.UUID, filter LedgerListFilter) ([]LedgerEntryResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}

	var (
		out   []LedgerEntryResponse
		total int64
	)
	err := s.uow.Execute(ctx, func(tx Tx) error {
		if _, err := tx.Items().FindByIDForTenant(ctx, tenantID, itemID); err != nil {
			return err
		}
		entries, count, err := tx.Ledger().FindByItem(ctx, itemID, f)
		if err != nil {
			return fmt.Errorf("load ledger: %w", err)
		}
		total = count
		out = make([]LedgerEntryResponse, len(entries))
		for i := range entries {
			out[i] = ToLedgerEntryResponse(&entries[i])
		}
		return nil
	})
	return out, total, err
}

// Reconcile checks that the ledger of an item explains its batch quantities
func (s *StockService) Reconcile(ctx context.Context, tenantID, itemID uuid.UUID) (*inventory.Reconciliation, error) {
	var r inventory.Reconciliation
	err := s.uow.Execute(ctx, func(tx Tx) error {
		if _, err := tx.Items().FindByIDForTenant(ctx, tenantID, itemID); err != nil {
			return err
		}
		batches, err := tx.Batches().FindByItem(ctx, itemID)
		if err != nil {
			return fmt.Errorf("load batches: %w", err)
		}
		entries, err := tx.Ledger().FindAllByItem(ctx, itemID)
		if err != nil {
			return fmt.Errorf("load ledger: %w", err)
		}
		r = inventory.Reconcile(itemID, batches, entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !r.Balanced() {
		s.logger.Error("Inventory ledger out of balance",
			zap.String("tenant_id", tenantID.String()),
			zap.String("inventory_item_id", itemID.String()),
			zap.String("drift", r.Drift.String()),
			zap.Int("violations", len(r.Violations)),
		)
	}
	return &r, nil
}

// Adjust deducts stock outside of any order, e.g. for waste counted at close
func (s *StockService) Adjust(ctx context.Context, tenantID, itemID uuid.UUID, req AdjustStockRequest) (*DeductionResponse, error) {
	var result *DeductionResult
	err := s.uow.Execute(ctx, func(tx Tx) error {
		if _, err := tx.Items().FindByIDForTenant(ctx, tenantID, itemID); err != nil {
			return err
		}
		r, err := s.ledger.Deduct(ctx, tx, itemID, req.Quantity, nil)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock adjusted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("inventory_item_id", itemID.String()),
		zap.String("quantity", req.Quantity.String()),
		zap.String("reason", req.Reason),
	)
	s.notifier.AfterCommit(ctx, tenantID, []uuid.UUID{itemID}, result.Events)

	resp := ToDeductionResponse(result.Plan)
	return &resp, nil
}
