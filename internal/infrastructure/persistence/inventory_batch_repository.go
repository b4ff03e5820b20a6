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

// GormBatchRepository implements inventory.BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryBatch, error) {
	var model models.InventoryBatchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDsForUpdate locks the given batches. Rows are read in FIFO order so
// every transaction acquires batch locks in the same sequence.
func (r *GormBatchRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]inventory.InventoryBatch, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.InventoryBatchModel
	err := r.db.WithContext(ctx).
		Scopes(forUpdate).
		Where("id IN ?", ids).
		Order(fifoOrder).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainBatches(rows), nil
}

// FindOpenByItemForUpdate locks and returns the batches of an item that still
// hold stock, oldest first
func (r *GormBatchRepository) FindOpenByItemForUpdate(ctx context.Context, itemID uuid.UUID) ([]inventory.InventoryBatch, error) {
	var rows []models.InventoryBatchModel
	err := r.db.WithContext(ctx).
		Scopes(forUpdate).
		Where("inventory_item_id = ? AND quantity_remaining > 0", itemID).
		Order(fifoOrder).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainBatches(rows), nil
}

// FindByItem returns every batch of an item, oldest first
func (r *GormBatchRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.InventoryBatch, error) {
	var rows []models.InventoryBatchModel
	err := r.db.WithContext(ctx).
		Where("inventory_item_id = ?", itemID).
		Order(fifoOrder).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainBatches(rows), nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *inventory.InventoryBatch) error {
	return r.db.WithContext(ctx).Save(models.InventoryBatchModelFromDomain(batch)).Error
}

func toDomainBatches(rows []models.InventoryBatchModel) []inventory.InventoryBatch {
	batches := make([]inventory.InventoryBatch, len(rows))
	for i := range rows {
		batches[i] = *rows[i].ToDomain()
	}
	return batches
}

var _ inventory.BatchRepository = (*GormBatchRepository)(nil)
