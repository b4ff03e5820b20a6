package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qreats/backend/internal/domain/order"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/qreats/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByIDForTenant finds an order of the tenant with its lines
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*order.Order, error) {
	return r.find(r.db.WithContext(ctx), tenantID, id)
}

// FindByIDForUpdate finds an order of the tenant and locks its row
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*order.Order, error) {
	return r.find(r.db.WithContext(ctx).Scopes(forUpdate), tenantID, id)
}

func (r *GormOrderRepository) find(db *gorm.DB, tenantID, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	err := db.
		Scopes(tenantScope(tenantID)).
		Preload("Lines").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an order. Lines are immutable once written, so
// existing lines are left untouched.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Save(model).Error; err != nil {
		return err
	}
	if len(model.Lines) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&model.Lines).Error
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)

// GormRecipeRepository implements order.RecipeRepository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// FindByMenuItem returns the recipes of a menu item
func (r *GormRecipeRepository) FindByMenuItem(ctx context.Context, tenantID, menuItemID uuid.UUID) ([]order.Recipe, error) {
	var rows []models.RecipeModel
	err := r.db.WithContext(ctx).
		Scopes(tenantScope(tenantID)).
		Where("menu_item_id = ?", menuItemID).
		Order("inventory_item_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	recipes := make([]order.Recipe, len(rows))
	for i := range rows {
		recipes[i] = *rows[i].ToDomain()
	}
	return recipes, nil
}

// Save creates or updates a recipe
func (r *GormRecipeRepository) Save(ctx context.Context, recipe *order.Recipe) error {
	return r.db.WithContext(ctx).Save(models.RecipeModelFromDomain(recipe)).Error
}

var _ order.RecipeRepository = (*GormRecipeRepository)(nil)

// GormRefundRepository implements order.RefundRepository using GORM
type GormRefundRepository struct {
	db *gorm.DB
}

// NewGormRefundRepository creates a new GormRefundRepository
func NewGormRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// Create inserts a refund
func (r *GormRefundRepository) Create(ctx context.Context, refund *order.Refund) error {
	return r.db.WithContext(ctx).Create(models.RefundModelFromDomain(refund)).Error
}

// FindByOrder returns the refunds of an order, oldest first
func (r *GormRefundRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]order.Refund, error) {
	var rows []models.RefundModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	refunds := make([]order.Refund, len(rows))
	for i := range rows {
		refunds[i] = *rows[i].ToDomain()
	}
	return refunds, nil
}

var _ order.RefundRepository = (*GormRefundRepository)(nil)
