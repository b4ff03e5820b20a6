package order

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	appinventory "github.com/qreats/backend/internal/application/inventory"
	"github.com/qreats/backend/internal/domain/order"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/qreats/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService places and refunds orders, consuming and returning inventory
// in the same unit of work as the order itself
type OrderService struct {
	uow      UnitOfWork
	ledger   *appinventory.Ledger
	notifier *appinventory.StockNotifier
	logger   *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(uow UnitOfWork, ledger *appinventory.Ledger, notifier *appinventory.StockNotifier, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = appinventory.NewStockNotifier(nil, nil, logger)
	}
	return &OrderService{
		uow:      uow,
		ledger:   ledger,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateOrder persists a pending order and deducts the inventory its recipes consume.
// If any item lacks stock nothing is persisted.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, input.TenantID.String()),
	)
	defer span.End()

	lines := make([]order.LineInput, len(input.Items))
	for i, item := range input.Items {
		lines[i] = order.LineInput{MenuItemID: item.MenuItemID, Quantity: item.Quantity, Price: item.Price}
	}
	o, err := order.NewOrder(input.TenantID, lines, input.TotalAmount)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var (
		itemIDs []uuid.UUID
		events  []shared.DomainEvent
	)
	err = s.uow.Execute(ctx, func(tx Tx) error {
		itemIDs, events = nil, nil

		if err := tx.Orders().Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}

		required, sorted, err := s.requiredInventory(ctx, tx, o)
		if err != nil {
			return err
		}
		for _, itemID := range sorted {
			result, err := s.ledger.Deduct(ctx, tx, itemID, required[itemID], &o.ID)
			if err != nil {
				return err
			}
			itemIDs = append(itemIDs, itemID)
			events = append(events, result.Events...)
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Info("Order creation failed",
			zap.String("tenant_id", input.TenantID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.notifier.AfterCommit(ctx, o.TenantID, itemIDs, events)
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, o.ID.String(), telemetry.SpanAttrLineCount, len(o.Lines))
	telemetry.SetOK(span)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// requiredInventory sums recipe quantities per inventory item.
// Items are returned in ID order so concurrent orders lock batches in the same order.
func (s *OrderService) requiredInventory(ctx context.Context, tx Tx, o *order.Order) (map[uuid.UUID]decimal.Decimal, []uuid.UUID, error) {
	required := make(map[uuid.UUID]decimal.Decimal)
	var ids []uuid.UUID
	for _, line := range o.Lines {
		recipes, err := tx.Recipes().FindByMenuItem(ctx, o.TenantID, line.MenuItemID)
		if err != nil {
			return nil, nil, fmt.Errorf("load recipes of menu item %s: %w", line.MenuItemID, err)
		}
		for i := range recipes {
			itemID := recipes[i].InventoryItemID
			current, seen := required[itemID]
			if !seen {
				ids = append(ids, itemID)
				current = decimal.Zero
			}
			required[itemID] = current.Add(recipes[i].QuantityFor(line.Quantity))
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return required, ids, nil
}

// RefundOrder marks an order refunded, records the refund and returns its inventory
func (s *OrderService) RefundOrder(ctx context.Context, tenantID, orderID uuid.UUID, input RefundOrderInput) (*RefundResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "refund",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID.String()),
	)
	defer span.End()

	var (
		refund  *order.Refund
		restock *appinventory.RestockResult
	)
	err := s.uow.Execute(ctx, func(tx Tx) error {
		o, err := tx.Orders().FindByIDForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		r, err := o.MarkRefunded(input.Reason)
		if err != nil {
			return err
		}
		if err := tx.Orders().Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		if err := tx.Refunds().Create(ctx, r); err != nil {
			return fmt.Errorf("create refund: %w", err)
		}
		res, err := s.ledger.Restock(ctx, tx, o.ID)
		if err != nil {
			return err
		}
		refund, restock = r, res
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.notifier.AfterCommit(ctx, tenantID, restock.ItemIDs, restock.Events)
	s.logger.Info("Order refunded",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", orderID.String()),
		zap.String("amount", refund.Amount.String()),
		zap.Int("restocked_entries", len(restock.Entries)),
	)
	telemetry.SetOK(span)

	return &RefundResponse{
		ID:             refund.ID,
		OrderID:        refund.OrderID,
		Amount:         refund.Amount,
		Reason:         refund.Reason,
		RestockedLines: len(restock.Entries),
		CreatedAt:      refund.CreatedAt,
	}, nil
}

// GetOrder returns an order with its lines
func (s *OrderService) GetOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	var resp OrderResponse
	err := s.uow.Execute(ctx, func(tx Tx) error {
		o, err := tx.Orders().FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		resp = ToOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateRecipe links a menu item to an inventory item of the same tenant
func (s *OrderService) CreateRecipe(ctx context.Context, tenantID uuid.UUID, input CreateRecipeInput) (*RecipeResponse, error) {
	recipe, err := order.NewRecipe(tenantID, input.MenuItemID, input.InventoryItemID, input.QuantityRequired)
	if err != nil {
		return nil, err
	}
	err = s.uow.Execute(ctx, func(tx Tx) error {
		if _, err := tx.Items().FindByIDForTenant(ctx, tenantID, input.InventoryItemID); err != nil {
			return err
		}
		return tx.Recipes().Save(ctx, recipe)
	})
	if err != nil {
		return nil, err
	}
	return &RecipeResponse{
		ID:               recipe.ID,
		MenuItemID:       recipe.MenuItemID,
		InventoryItemID:  recipe.InventoryItemID,
		QuantityRequired: recipe.QuantityRequired,
	}, nil
}
