package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/qreats/backend/internal/domain/inventory"
)

// InventoryItemModel is the persistence model for InventoryItem.
type InventoryItemModel struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(200);not null"`
	Unit     string    `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem.
func (m *InventoryItemModel) ToDomain() *inventory.InventoryItem {
	return &inventory.InventoryItem{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		Name:       m.Name,
		Unit:       inventory.UnitOfMeasure(m.Unit),
	}
}

// InventoryItemModelFromDomain creates a persistence model from a domain InventoryItem.
func InventoryItemModelFromDomain(i *inventory.InventoryItem) *InventoryItemModel {
	m := &InventoryItemModel{
		TenantID: i.TenantID,
		Name:     i.Name,
		Unit:     string(i.Unit),
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// InventoryBatchModel is the persistence model for InventoryBatch.
// The composite index matches the FIFO scan of open batches.
type InventoryBatchModel struct {
	BaseModel
	InventoryItemID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_inventory_batches_fifo,priority:1"`
	QuantityInitial   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityRemaining decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CostPerUnit       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedAt        time.Time       `gorm:"not null;index:idx_inventory_batches_fifo,priority:2"`
}

// TableName returns the table name for GORM
func (InventoryBatchModel) TableName() string {
	return "inventory_batches"
}

// ToDomain converts the persistence model to a domain InventoryBatch.
func (m *InventoryBatchModel) ToDomain() *inventory.InventoryBatch {
	return &inventory.InventoryBatch{
		BaseEntity:        m.BaseModel.ToDomain(),
		InventoryItemID:   m.InventoryItemID,
		QuantityInitial:   m.QuantityInitial,
		QuantityRemaining: m.QuantityRemaining,
		CostPerUnit:       m.CostPerUnit,
		ReceivedAt:        m.ReceivedAt,
	}
}

// InventoryBatchModelFromDomain creates a persistence model from a domain InventoryBatch.
func InventoryBatchModelFromDomain(b *inventory.InventoryBatch) *InventoryBatchModel {
	m := &InventoryBatchModel{
		InventoryItemID:   b.InventoryItemID,
		QuantityInitial:   b.QuantityInitial,
		QuantityRemaining: b.QuantityRemaining,
		CostPerUnit:       b.CostPerUnit,
		ReceivedAt:        b.ReceivedAt,
	}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}

// LedgerEntryModel is the persistence model for LedgerEntry.
// Rows are insert-only. ReversesEntryID is unique so a DEDUCT entry can be
// reversed at most once.
type LedgerEntryModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_entries_item_created,priority:1"`
	BatchID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Kind            string          `gorm:"type:varchar(10);not null"`
	OrderID         *uuid.UUID      `gorm:"type:uuid;index"`
	ReversesEntryID *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt       time.Time       `gorm:"not null;index:idx_ledger_entries_item_created,priority:2"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain LedgerEntry.
func (m *LedgerEntryModel) ToDomain() *inventory.LedgerEntry {
	return &inventory.LedgerEntry{
		ID:              m.ID,
		TenantID:        m.TenantID,
		InventoryItemID: m.InventoryItemID,
		BatchID:         m.BatchID,
		Quantity:        m.Quantity,
		Kind:            inventory.EntryKind(m.Kind),
		OrderID:         m.OrderID,
		ReversesEntryID: m.ReversesEntryID,
		UnitCost:        m.UnitCost,
		CreatedAt:       m.CreatedAt,
	}
}

// LedgerEntryModelFromDomain creates a persistence model from a domain LedgerEntry.
func LedgerEntryModelFromDomain(e *inventory.LedgerEntry) *LedgerEntryModel {
	return &LedgerEntryModel{
		ID:              e.ID,
		TenantID:        e.TenantID,
		InventoryItemID: e.InventoryItemID,
		BatchID:         e.BatchID,
		Quantity:        e.Quantity,
		Kind:            string(e.Kind),
		OrderID:         e.OrderID,
		ReversesEntryID: e.ReversesEntryID,
		UnitCost:        e.UnitCost,
		CreatedAt:       e.CreatedAt,
	}
}
