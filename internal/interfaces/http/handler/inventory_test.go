package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryapp "github.com/qreats/backend/internal/application/inventory"
	"github.com/qreats/backend/internal/domain/inventory"
	"github.com/qreats/backend/internal/interfaces/http/dto"
	"github.com/qreats/backend/tests/testutil"
)

func TestInventoryHandler_CreateItem(t *testing.T) {
	s := newServer(t)

	t.Run("creates item for the tenant", func(t *testing.T) {
		w := s.do(http.MethodPost, "/inventory/items", map[string]any{"name": "Flour", "unit": "MASS"})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		item := testutil.DecodeData[inventoryapp.ItemResponse](t, w)
		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.Equal(t, s.tenant, item.TenantID)
		assert.Equal(t, "Flour", item.Name)
		assert.Equal(t, "MASS", item.Unit)
	})

	t.Run("rejects unknown unit", func(t *testing.T) {
		w := s.do(http.MethodPost, "/inventory/items", map[string]any{"name": "Flour", "unit": "BUSHEL"})

		env := testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		require.NotEmpty(t, env.Error.Details)
		assert.Equal(t, "unit", env.Error.Details[0].Field)
		assert.Equal(t, "oneof", env.Error.Details[0].Tag)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		w := testutil.Do(t, s.engine, http.MethodPost, "/api/v1/inventory/items", "not an object",
			map[string]string{"X-Tenant-ID": s.tenant.String()})

		testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
	})
}

func TestInventoryHandler_ReceiveBatchAndStock(t *testing.T) {
	s := newServer(t)
	itemID := s.createItem("Tomatoes")

	s.receive(itemID, "10", "1.50", 2)
	s.receive(itemID, "4", "2.00", 1)

	level := s.stock(itemID)
	assert.True(t, decimal.NewFromInt(14).Equal(level.OnHand), "on hand %s", level.OnHand)
	assert.True(t, decimal.RequireFromString("23").Equal(level.Valuation), "valuation %s", level.Valuation)
	assert.Equal(t, 2, level.OpenBatches)

	w := s.do(http.MethodGet, fmt.Sprintf("/inventory/items/%s/batches", itemID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	batches := testutil.DecodeData[[]inventoryapp.BatchResponse](t, w)
	require.Len(t, batches, 2)
	assert.True(t, batches[0].CostPerUnit.Equal(decimal.RequireFromString("1.50")), "oldest batch first")
	assert.Equal(t, string(inventory.BatchStatusOpen), batches[0].Status)

	assert.Len(t, s.stack.Events.OfType(inventory.EventTypeBatchReceived), 2)
}

func TestInventoryHandler_ReceiveBatch_Validation(t *testing.T) {
	s := newServer(t)
	itemID := s.createItem("Salt")

	tests := []struct {
		name string
		body map[string]any
		tag  string
	}{
		{"zero quantity", map[string]any{"quantity": "0", "cost_per_unit": "1"}, "decimal_positive"},
		{"negative quantity", map[string]any{"quantity": "-2", "cost_per_unit": "1"}, "decimal_positive"},
		{"negative cost", map[string]any{"quantity": "2", "cost_per_unit": "-1"}, "decimal_gte_zero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, fmt.Sprintf("/inventory/items/%s/batches", itemID), tt.body)

			env := testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
			require.NotEmpty(t, env.Error.Details)
			assert.Equal(t, tt.tag, env.Error.Details[0].Tag)
		})
	}
}

func TestInventoryHandler_UnknownItem(t *testing.T) {
	s := newServer(t)
	missing := uuid.New()

	paths := []string{
		"/inventory/items/%s/stock",
		"/inventory/items/%s/batches",
		"/inventory/items/%s/ledger",
		"/inventory/items/%s/reconciliation",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			w := s.do(http.MethodGet, fmt.Sprintf(p, missing), nil)
			testutil.AssertError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
		})
	}

	t.Run("invalid id", func(t *testing.T) {
		w := s.do(http.MethodGet, "/inventory/items/not-a-uuid/stock", nil)
		testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
	})
}

func TestInventoryHandler_TenantIsolation(t *testing.T) {
	s := newServer(t)
	itemID := s.createItem("Basil")
	s.receive(itemID, "3", "1", 1)

	w := s.doAs(testutil.OtherTenantID(), http.MethodGet, fmt.Sprintf("/inventory/items/%s/stock", itemID), nil)
	testutil.AssertError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)

	w = s.doAs(testutil.OtherTenantID(), http.MethodPost, fmt.Sprintf("/inventory/items/%s/adjustments", itemID),
		map[string]any{"quantity": "1"})
	testutil.AssertError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)

	assert.True(t, decimal.NewFromInt(3).Equal(s.stock(itemID).OnHand))
}

func TestInventoryHandler_Adjust(t *testing.T) {
	s := newServer(t)
	itemID := s.createItem("Milk")
	older := s.receive(itemID, "5", "1", 2)
	newer := s.receive(itemID, "5", "3", 1)

	t.Run("spans batches oldest first", func(t *testing.T) {
		w := s.do(http.MethodPost, fmt.Sprintf("/inventory/items/%s/adjustments", itemID),
			map[string]any{"quantity": "7", "reason": "spoiled"})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		result := testutil.DecodeData[inventoryapp.DeductionResponse](t, w)
		require.Len(t, result.Allocations, 2)
		assert.Equal(t, older, result.Allocations[0].BatchID)
		assert.True(t, decimal.NewFromInt(5).Equal(result.Allocations[0].Quantity))
		assert.Equal(t, newer, result.Allocations[1].BatchID)
		assert.True(t, decimal.NewFromInt(2).Equal(result.Allocations[1].Quantity))
		assert.True(t, decimal.NewFromInt(11).Equal(result.TotalCost), "5*1 + 2*3, got %s", result.TotalCost)
	})

	t.Run("insufficient stock leaves batches untouched", func(t *testing.T) {
		w := s.do(http.MethodPost, fmt.Sprintf("/inventory/items/%s/adjustments", itemID),
			map[string]any{"quantity": "4"})

		env := testutil.AssertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInsufficientStock)
		assert.Equal(t, itemID.String(), env.Error.Context["inventory_item_id"])
		assert.Equal(t, "3", env.Error.Context["available"])
		assert.Equal(t, "4", env.Error.Context["required"])
		assert.Equal(t, "1", env.Error.Context["shortfall"])

		assert.True(t, decimal.NewFromInt(3).Equal(s.stock(itemID).OnHand))
	})

	t.Run("rejects quantity finer than the stored scale", func(t *testing.T) {
		w := s.do(http.MethodPost, fmt.Sprintf("/inventory/items/%s/adjustments", itemID),
			map[string]any{"quantity": "0.00005"})

		testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidQuantity)
		assert.True(t, decimal.NewFromInt(3).Equal(s.stock(itemID).OnHand))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		w := s.do(http.MethodPost, fmt.Sprintf("/inventory/items/%s/adjustments", itemID),
			map[string]any{"quantity": "0"})
		testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})
}

type reconciliationBody struct {
	Balanced      bool            `json:"balanced"`
	TotalInitial  decimal.Decimal `json:"total_initial"`
	TotalDeducted decimal.Decimal `json:"total_deducted"`
	Drift         decimal.Decimal `json:"drift"`
}

func TestInventoryHandler_LedgerAndReconcile(t *testing.T) {
	s := newServer(t)
	itemID := s.createItem("Rice")
	s.receive(itemID, "2", "1", 3)
	s.receive(itemID, "2", "1", 2)
	s.receive(itemID, "2", "1", 1)

	w := s.do(http.MethodPost, fmt.Sprintf("/inventory/items/%s/adjustments", itemID), map[string]any{"quantity": "5"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	t.Run("pages entries", func(t *testing.T) {
		w := s.do(http.MethodGet, fmt.Sprintf("/inventory/items/%s/ledger?page=1&page_size=2", itemID), nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		env := testutil.Decode(t, w)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(3), env.Meta.Total)
		assert.Equal(t, 2, env.Meta.PageSize)
		assert.Equal(t, 2, env.Meta.TotalPages)

		entries := testutil.DecodeData[[]inventoryapp.LedgerEntryResponse](t, w)
		assert.Len(t, entries, 2)
		for _, e := range entries {
			assert.Equal(t, string(inventory.EntryKindDeduct), e.Kind)
			assert.True(t, e.SignedQuantity.IsNegative())
			assert.Nil(t, e.OrderID)
		}
	})

	t.Run("defaults paging", func(t *testing.T) {
		w := s.do(http.MethodGet, fmt.Sprintf("/inventory/items/%s/ledger", itemID), nil)

		require.Equal(t, http.StatusOK, w.Code)
		env := testutil.Decode(t, w)
		require.NotNil(t, env.Meta)
		assert.Equal(t, 1, env.Meta.Page)
		assert.Equal(t, 20, env.Meta.PageSize)
	})

	t.Run("rejects oversized page", func(t *testing.T) {
		w := s.do(http.MethodGet, fmt.Sprintf("/inventory/items/%s/ledger?page_size=500", itemID), nil)
		testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("reconciles", func(t *testing.T) {
		w := s.do(http.MethodGet, fmt.Sprintf("/inventory/items/%s/reconciliation", itemID), nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		r := testutil.DecodeData[reconciliationBody](t, w)
		assert.True(t, r.Balanced)
		assert.True(t, decimal.NewFromInt(6).Equal(r.TotalInitial))
		assert.True(t, decimal.NewFromInt(5).Equal(r.TotalDeducted))
		assert.True(t, r.Drift.IsZero())
	})
}

func TestInventoryHandler_RequiresTenant(t *testing.T) {
	s := newServer(t)

	w := testutil.Do(t, s.engine, http.MethodPost, "/api/v1/inventory/items",
		map[string]any{"name": "Flour", "unit": "MASS"}, nil)

	testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeTenantRequired)
}
