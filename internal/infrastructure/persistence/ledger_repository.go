package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qreats/backend/internal/domain/inventory"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/qreats/backend/internal/infrastructure/persistence/models"
)

// GormLedgerRepository implements inventory.LedgerRepository using GORM.
// It only ever inserts rows.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append inserts the entries in a single statement
func (r *GormLedgerRepository) Append(ctx context.Context, entries ...*inventory.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]*models.LedgerEntryModel, len(entries))
	for i, e := range entries {
		rows[i] = models.LedgerEntryModelFromDomain(e)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindDeductsByOrder returns the DEDUCT entries of an order, most recent first
func (r *GormLedgerRepository) FindDeductsByOrder(ctx context.Context, orderID uuid.UUID) ([]inventory.LedgerEntry, error) {
	var rows []models.LedgerEntryModel
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND kind = ?", orderID, string(inventory.EntryKindDeduct)).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainEntries(rows), nil
}

// FindReversedEntryIDs reports which of the given DEDUCT entries already have a RESTOCK entry
func (r *GormLedgerRepository) FindReversedEntryIDs(ctx context.Context, entryIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	reversed := make(map[uuid.UUID]bool)
	if len(entryIDs) == 0 {
		return reversed, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("reverses_entry_id IN ?", entryIDs).
		Pluck("reverses_entry_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		reversed[id] = true
	}
	return reversed, nil
}

// FindByItem returns one page of an item's entries, most recent first, with the total count
func (r *GormLedgerRepository) FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]inventory.LedgerEntry, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("inventory_item_id = ?", itemID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := query.Order("created_at DESC, id DESC").Offset(filter.Offset())
	if filter.PageSize > 0 {
		page = page.Limit(filter.PageSize)
	}
	var rows []models.LedgerEntryModel
	err := page.Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return toDomainEntries(rows), total, nil
}

// FindAllByItem returns every entry of an item in the order they were written
func (r *GormLedgerRepository) FindAllByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.LedgerEntry, error) {
	var rows []models.LedgerEntryModel
	err := r.db.WithContext(ctx).
		Where("inventory_item_id = ?", itemID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainEntries(rows), nil
}

func toDomainEntries(rows []models.LedgerEntryModel) []inventory.LedgerEntry {
	entries := make([]inventory.LedgerEntry, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries
}

var _ inventory.LedgerRepository = (*GormLedgerRepository)(nil)
