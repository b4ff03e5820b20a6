package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qreats/backend/internal/domain/inventory"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/qreats/backend/internal/infrastructure/persistence/models"
)

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an inventory item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds an inventory item owned by the tenant.
// An item of another tenant is reported as not found.
func (r *GormItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	err := r.db.WithContext(ctx).
		Scopes(tenantScope(tenantID)).
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an inventory item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	return r.db.WithContext(ctx).Save(models.InventoryItemModelFromDomain(item)).Error
}

// ListRefs returns every item of every tenant, grouped by tenant
func (r *GormItemRepository) ListRefs(ctx context.Context) ([]inventory.ItemRef, error) {
	var rows []struct {
		TenantID uuid.UUID
		ID       uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Model(&models.InventoryItemModel{}).
		Select("tenant_id", "id").
		Order("tenant_id, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	refs := make([]inventory.ItemRef, len(rows))
	for i, row := range rows {
		refs[i] = inventory.ItemRef{TenantID: row.TenantID, ItemID: row.ID}
	}
	return refs, nil
}

var _ inventory.ItemRepository = (*GormItemRepository)(nil)
