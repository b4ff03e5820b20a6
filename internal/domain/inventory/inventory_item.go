package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/qreats/backend/internal/domain/shared"
)

// UnitOfMeasure is the unit an inventory item is counted in
type UnitOfMeasure string

const (
	UnitCount  UnitOfMeasure = "COUNT"
	UnitMass   UnitOfMeasure = "MASS"
	UnitVolume UnitOfMeasure = "VOLUME"
)

// IsValid returns true if the unit is a known unit of measure
func (u UnitOfMeasure) IsValid() bool {
	switch u {
	case UnitCount, UnitMass, UnitVolume:
		return true
	}
	return false
}

// InventoryItem is a stockable good owned by a tenant.
// The ledger reads it to stamp ledger entries with the owning tenant and never
// changes its name or unit.
type InventoryItem struct {
	shared.BaseEntity
	TenantID uuid.UUID
	Name     string
	Unit     UnitOfMeasure
}

// NewInventoryItem creates a new inventory item
func NewInventoryItem(tenantID uuid.UUID, name string, unit UnitOfMeasure) (*InventoryItem, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 200 characters")
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit must be COUNT, MASS or VOLUME")
	}
	return &InventoryItem{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Name:       name,
		Unit:       unit,
	}, nil
}

// BelongsTo returns true if the item is owned by the tenant
func (i *InventoryItem) BelongsTo(tenantID uuid.UUID) bool {
	return i.TenantID == tenantID
}

// ItemRef identifies an item together with its owning tenant
type ItemRef struct {
	TenantID uuid.UUID
	ItemID   uuid.UUID
}
