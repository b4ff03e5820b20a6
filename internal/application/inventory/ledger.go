package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/inventory"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/qreats/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DeductionResult describes what a deduction did
type DeductionResult struct {
	Plan    *inventory.AllocationPlan
	Entries []*inventory.LedgerEntry
	Events  []shared.DomainEvent
}

// RestockResult describes what a reversal did
type RestockResult struct {
	OrderID uuid.UUID
	Entries []*inventory.LedgerEntry
	// Skipped counts DEDUCT entries that had already been reversed
	Skipped int
	// ItemIDs lists the items whose stock changed
	ItemIDs []uuid.UUID
	Events  []shared.DomainEvent
}

// Ledger records FIFO deductions and their reversals.
// It never opens a transaction of its own: every call runs on the caller's Tx.
type Ledger struct {
	logger  *zap.Logger
	metrics *telemetry.LedgerMetrics
}

// NewLedger creates a new Ledger
func NewLedger(logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{logger: logger}
}

// SetMetrics sets the ledger metrics recorder (optional)
func (l *Ledger) SetMetrics(m *telemetry.LedgerMetrics) {
	l.metrics = m
}

// Deduct consumes quantity of an item from its oldest open batches.
//
// The open batches are read with a row lock through tx, the FIFO plan is applied
// batch by batch, and one DEDUCT entry is appended per touched batch.
// On any error the caller must roll tx back; partial work is never committed
// by the ledger itself.
func (l *Ledger) Deduct(ctx context.Context, tx Tx, itemID uuid.UUID, quantity decimal.Decimal, orderID *uuid.UUID) (*DeductionResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "deduct",
		telemetry.WithAttribute(telemetry.SpanAttrItemID, itemID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrQuantity, quantity.String()),
	)
	defer span.End()

	if err := inventory.ValidateQuantity(quantity); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	item, err := tx.Items().FindByID(ctx, itemID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("load inventory item %s: %w", itemID, err)
	}

	batches, err := tx.Batches().FindOpenByItemForUpdate(ctx, itemID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("lock batches of item %s: %w", itemID, err)
	}

	plan, err := inventory.SelectFIFO(itemID, quantity, batches)
	if err != nil {
		var stockErr *inventory.InsufficientStockError
		if errors.As(err, &stockErr) {
			l.logger.Info("Insufficient stock for deduction",
				zap.String("tenant_id", item.TenantID.String()),
				zap.String("inventory_item_id", itemID.String()),
				zap.String("available", stockErr.Available.String()),
				zap.String("required", stockErr.Required.String()),
			)
			if l.metrics != nil {
				l.metrics.RecordInsufficientStock(ctx, item.TenantID)
			}
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	byID := make(map[uuid.UUID]*inventory.InventoryBatch, len(batches))
	for i := range batches {
		byID[batches[i].ID] = &batches[i]
	}

	entries := make([]*inventory.LedgerEntry, 0, len(plan.Allocations))
	for _, alloc := range plan.Allocations {
		batch := byID[alloc.BatchID]
		if err := batch.Take(alloc.Quantity); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if err := tx.Batches().Save(ctx, batch); err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("save batch %s: %w", batch.ID, err)
		}
		entry, err := inventory.NewDeductEntry(item.TenantID, batch, alloc.Quantity, orderID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := tx.Ledger().Append(ctx, entries...); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("append deduct entries: %w", err)
	}

	telemetry.SetAttributes(span,
		"batch_count", plan.BatchCount(),
		"total_cost", plan.TotalCost.String(),
	)
	telemetry.SetOK(span)

	l.logger.Debug("Stock deducted",
		zap.String("tenant_id", item.TenantID.String()),
		zap.String("inventory_item_id", itemID.String()),
		zap.String("quantity", plan.Total.String()),
		zap.String("total_cost", plan.TotalCost.String()),
		zap.Int("batch_count", plan.BatchCount()),
	)
	if l.metrics != nil {
		l.metrics.RecordDeduction(ctx, item.TenantID, plan.Total, plan.BatchCount())
	}

	return &DeductionResult{
		Plan:    plan,
		Entries: entries,
		Events:  []shared.DomainEvent{inventory.NewStockDeductedEvent(item.TenantID, plan, orderID)},
	}, nil
}

// Restock reverses every DEDUCT entry recorded for orderID.
//
// Entries are processed most recent first and each one credits exactly the batch
// it was taken from. An order without DEDUCT entries is a no-op. Entries that
// were already reversed are skipped, so calling Restock twice never credits twice.
func (l *Ledger) Restock(ctx context.Context, tx Tx, orderID uuid.UUID) (*RestockResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "restock",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID.String()),
	)
	defer span.End()

	result := &RestockResult{OrderID: orderID}

	deducts, err := tx.Ledger().FindDeductsByOrder(ctx, orderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("load deduct entries of order %s: %w", orderID, err)
	}
	if len(deducts) == 0 {
		l.logger.Debug("Nothing to restock", zap.String("order_id", orderID.String()))
		telemetry.SetOK(span)
		return result, nil
	}

	ids := make([]uuid.UUID, len(deducts))
	for i := range deducts {
		ids[i] = deducts[i].ID
	}
	reversed, err := tx.Ledger().FindReversedEntryIDs(ctx, ids)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("load reversals of order %s: %w", orderID, err)
	}

	pending := make([]*inventory.LedgerEntry, 0, len(deducts))
	batchIDs := make([]uuid.UUID, 0, len(deducts))
	seenBatch := make(map[uuid.UUID]bool)
	for i := range deducts {
		if reversed[deducts[i].ID] {
			result.Skipped++
			continue
		}
		pending = append(pending, &deducts[i])
		if !seenBatch[deducts[i].BatchID] {
			seenBatch[deducts[i].BatchID] = true
			batchIDs = append(batchIDs, deducts[i].BatchID)
		}
	}

	if len(pending) == 0 {
		l.logger.Warn("Order already restocked, skipping",
			zap.String("order_id", orderID.String()),
			zap.Int("skipped", result.Skipped),
		)
		telemetry.SetOK(span)
		return result, nil
	}

	locked, err := tx.Batches().FindByIDsForUpdate(ctx, batchIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("lock batches of order %s: %w", orderID, err)
	}
	batches := make(map[uuid.UUID]*inventory.InventoryBatch, len(locked))
	for i := range locked {
		batches[locked[i].ID] = &locked[i]
	}

	byItem := make(map[uuid.UUID][]*inventory.LedgerEntry)
	tenantByItem := make(map[uuid.UUID]uuid.UUID)
	for _, deduct := range pending {
		batch, ok := batches[deduct.BatchID]
		if !ok {
			err := fmt.Errorf("batch %s of entry %s: %w", deduct.BatchID, deduct.ID, shared.ErrNotFound)
			telemetry.RecordError(span, err)
			return nil, err
		}
		if err := batch.Credit(deduct.Quantity); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		entry, err := inventory.NewRestockEntry(deduct)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		result.Entries = append(result.Entries, entry)
		if _, ok := byItem[entry.InventoryItemID]; !ok {
			result.ItemIDs = append(result.ItemIDs, entry.InventoryItemID)
		}
		byItem[entry.InventoryItemID] = append(byItem[entry.InventoryItemID], entry)
		tenantByItem[entry.InventoryItemID] = entry.TenantID
	}

	for _, id := range batchIDs {
		if err := tx.Batches().Save(ctx, batches[id]); err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("save batch %s: %w", id, err)
		}
	}

	if err := tx.Ledger().Append(ctx, result.Entries...); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("append restock entries: %w", err)
	}

	for _, itemID := range result.ItemIDs {
		result.Events = append(result.Events,
			inventory.NewStockRestockedEvent(tenantByItem[itemID], itemID, orderID, byItem[itemID]))
	}

	if result.Skipped > 0 {
		l.logger.Warn("Skipped already reversed entries",
			zap.String("order_id", orderID.String()),
			zap.Int("skipped", result.Skipped),
		)
	}
	l.logger.Debug("Stock restocked",
		zap.String("order_id", orderID.String()),
		zap.Int("entries", len(result.Entries)),
	)
	if l.metrics != nil {
		for _, itemID := range result.ItemIDs {
			l.metrics.RecordRestock(ctx, tenantByItem[itemID], len(byItem[itemID]))
		}
	}

	telemetry.SetAttributes(span, "entry_count", len(result.Entries), "skipped", result.Skipped)
	telemetry.SetOK(span)
	return result, nil
}
