package telemetry

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope for ledger metrics.
const MeterName = "qreats-inventory/ledger"

// LedgerMetrics records stock movement counters for the FIFO ledger.
type LedgerMetrics struct {
	deductions        *Counter
	restocks          *Counter
	insufficientStock *Counter
	deductedQuantity  *Histogram
	batchesPerDeduct  *Histogram
	reconciliations   *Counter
}

// NewLedgerMetrics registers the ledger instruments on the given meter.
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	m := &LedgerMetrics{}
	var err error

	if m.deductions, err = NewCounter(meter, "ledger_deductions_total",
		"Committed FIFO deductions", "{deduction}"); err != nil {
		return nil, err
	}
	if m.restocks, err = NewCounter(meter, "ledger_restock_entries_total",
		"Restock entries written by order reversals", "{entry}"); err != nil {
		return nil, err
	}
	if m.insufficientStock, err = NewCounter(meter, "ledger_insufficient_stock_total",
		"Deductions rejected for insufficient stock", "{deduction}"); err != nil {
		return nil, err
	}
	if m.deductedQuantity, err = NewHistogram(meter, HistogramOpts{
		Name:        "ledger_deducted_quantity",
		Description: "Quantity removed per deduction in the item's base unit",
		Unit:        "1",
	}); err != nil {
		return nil, err
	}
	if m.batchesPerDeduct, err = NewHistogram(meter, HistogramOpts{
		Name:        "ledger_batches_per_deduction",
		Description: "Number of batches consumed by a single deduction",
		Unit:        "{batch}",
		Boundaries:  BatchCountBuckets,
	}); err != nil {
		return nil, err
	}
	if m.reconciliations, err = NewCounter(meter, "ledger_reconciliations_total",
		"Items checked by the reconciliation audit", "{item}"); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordDeduction records a committed deduction.
func (m *LedgerMetrics) RecordDeduction(ctx context.Context, tenantID uuid.UUID, qty decimal.Decimal, batches int) {
	if m == nil {
		return
	}
	tenant := AttrTenantID.String(tenantID.String())
	m.deductions.Inc(ctx, tenant)
	m.deductedQuantity.Record(ctx, qty.InexactFloat64(), tenant)
	m.batchesPerDeduct.Record(ctx, float64(batches), tenant)
}

// RecordRestock records the number of restock entries written for one reversal.
func (m *LedgerMetrics) RecordRestock(ctx context.Context, tenantID uuid.UUID, entries int) {
	if m == nil || entries == 0 {
		return
	}
	m.restocks.Add(ctx, int64(entries), AttrTenantID.String(tenantID.String()))
}

// RecordInsufficientStock records a deduction rejected for lack of stock.
func (m *LedgerMetrics) RecordInsufficientStock(ctx context.Context, tenantID uuid.UUID) {
	if m == nil {
		return
	}
	m.insufficientStock.Inc(ctx, AttrTenantID.String(tenantID.String()))
}

// RecordReconciliation records one audited item and whether its ledger balanced.
func (m *LedgerMetrics) RecordReconciliation(ctx context.Context, tenantID uuid.UUID, balanced bool) {
	if m == nil {
		return
	}
	m.reconciliations.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		attribute.Bool("balanced", balanced),
	)
}
