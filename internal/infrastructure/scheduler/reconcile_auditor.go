// Package scheduler runs background jobs against the ledger.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/qreats/backend/internal/domain/inventory"
	"github.com/qreats/backend/internal/infrastructure/telemetry"
)

// ItemLister lists every inventory item the audit should visit
type ItemLister interface {
	ListRefs(ctx context.Context) ([]inventory.ItemRef, error)
}

// Reconciler recomputes the ledger balance of one item
type Reconciler interface {
	Reconcile(ctx context.Context, tenantID, itemID uuid.UUID) (*inventory.Reconciliation, error)
}

// AuditConfig holds auditor configuration
type AuditConfig struct {
	Interval    time.Duration
	Concurrency int
	ItemTimeout time.Duration
}

// DefaultAuditConfig returns default auditor configuration
func DefaultAuditConfig() AuditConfig {
	return AuditConfig{
		Interval:    time.Hour,
		Concurrency: 4,
		ItemTimeout: 30 * time.Second,
	}
}

// AuditReport summarizes one sweep over all items
type AuditReport struct {
	StartedAt  time.Time
	Duration   time.Duration
	Checked    int
	Failed     int
	Unbalanced []inventory.ItemRef
}

// Balanced returns true when every checked item reconciled without drift
func (r *AuditReport) Balanced() bool {
	return len(r.Unbalanced) == 0
}

// ReconcileAuditor periodically checks that every batch's remaining quantity
// is explained by its ledger entries. Imbalances are logged and counted,
// never repaired.
type ReconcileAuditor struct {
	config     AuditConfig
	items      ItemLister
	reconciler Reconciler
	metrics    *telemetry.LedgerMetrics
	logger     *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	last      *AuditReport
}

// NewReconcileAuditor creates a new auditor
func NewReconcileAuditor(config AuditConfig, items ItemLister, reconciler Reconciler, logger *zap.Logger) (*ReconcileAuditor, error) {
	if config.Interval <= 0 || config.Concurrency < 1 {
		return nil, fmt.Errorf("%w: interval %s, concurrency %d", ErrInvalidConfig, config.Interval, config.Concurrency)
	}
	if config.ItemTimeout <= 0 {
		config.ItemTimeout = DefaultAuditConfig().ItemTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconcileAuditor{
		config:     config,
		items:      items,
		reconciler: reconciler,
		logger:     logger,
	}, nil
}

// SetMetrics attaches ledger metrics; nil disables recording
func (a *ReconcileAuditor) SetMetrics(m *telemetry.LedgerMetrics) {
	a.metrics = m
}

// Start runs a sweep every Interval until Stop is called
func (a *ReconcileAuditor) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.isRunning {
		return ErrAuditorRunning
	}
	a.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.wg.Add(1)
	go a.loop(ctx)

	a.logger.Info("Reconciliation auditor started",
		zap.Duration("interval", a.config.Interval),
		zap.Int("concurrency", a.config.Concurrency),
	)
	return nil
}

// Stop cancels the running sweep and waits for it to exit
func (a *ReconcileAuditor) Stop(ctx context.Context) error {
	a.mu.Lock()
	if !a.isRunning {
		a.mu.Unlock()
		return nil
	}
	a.isRunning = false
	a.cancel()
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("Reconciliation auditor stopped")
		return nil
	case <-ctx.Done():
		a.logger.Warn("Reconciliation auditor stop timed out")
		return ctx.Err()
	}
}

// LastReport returns the report of the most recent completed sweep, if any
func (a *ReconcileAuditor) LastReport() *AuditReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

func (a *ReconcileAuditor) loop(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(a.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.RunOnce(ctx); err != nil && ctx.Err() == nil {
				a.logger.Error("Reconciliation sweep failed", zap.Error(err))
			}
		}
	}
}

// RunOnce reconciles every item once. Per-item failures are counted in the
// report; only a failure to list items aborts the sweep.
func (a *ReconcileAuditor) RunOnce(ctx context.Context) (*AuditReport, error) {
	report := &AuditReport{StartedAt: time.Now()}

	refs, err := a.items.ListRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Concurrency)

	for _, ref := range refs {
		g.Go(func() error {
			balanced, err := a.check(gctx, ref)

			mu.Lock()
			defer mu.Unlock()
			report.Checked++
			switch {
			case err != nil:
				report.Failed++
			case !balanced:
				report.Unbalanced = append(report.Unbalanced, ref)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Duration = time.Since(report.StartedAt)
	a.mu.Lock()
	a.last = report
	a.mu.Unlock()

	fields := []zap.Field{
		zap.Int("checked", report.Checked),
		zap.Int("unbalanced", len(report.Unbalanced)),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.Duration),
	}
	if report.Balanced() && report.Failed == 0 {
		a.logger.Info("Reconciliation sweep completed", fields...)
	} else {
		a.logger.Warn("Reconciliation sweep found problems", fields...)
	}
	return report, nil
}

func (a *ReconcileAuditor) check(ctx context.Context, ref inventory.ItemRef) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.ItemTimeout)
	defer cancel()

	rec, err := a.reconciler.Reconcile(ctx, ref.TenantID, ref.ItemID)
	if err != nil {
		a.logger.Warn("Failed to reconcile item",
			zap.String("tenant_id", ref.TenantID.String()),
			zap.String("inventory_item_id", ref.ItemID.String()),
			zap.Error(err),
		)
		return false, err
	}

	balanced := rec.Balanced()
	a.metrics.RecordReconciliation(ctx, ref.TenantID, balanced)
	if !balanced {
		a.logger.Error("Ledger does not explain batch quantities",
			zap.String("tenant_id", ref.TenantID.String()),
			zap.String("inventory_item_id", ref.ItemID.String()),
			zap.String("drift", rec.Drift.String()),
			zap.Int("violations", len(rec.Violations)),
		)
	}
	return balanced, nil
}
