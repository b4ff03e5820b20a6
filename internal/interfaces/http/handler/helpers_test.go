package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	inventoryapp "github.com/qreats/backend/internal/application/inventory"
	"github.com/qreats/backend/internal/infrastructure/persistence"
	"github.com/qreats/backend/internal/interfaces/http/handler"
	"github.com/qreats/backend/internal/interfaces/http/router"
	"github.com/qreats/backend/tests/testutil"
)

type server struct {
	t      *testing.T
	engine *gin.Engine
	stack  *testutil.Stack
	tenant uuid.UUID
}

func newServer(t *testing.T) *server {
	t.Helper()

	stack := testutil.NewStack(t, nil)
	engine := router.NewEngine(router.EngineConfig{
		ServiceName: "qreats-test",
		Logger:      zap.NewNop(),
	}, router.Handlers{
		Inventory: handler.NewInventoryHandler(stack.Stock),
		Orders:    handler.NewOrderHandler(stack.Orders),
		Health:    handler.NewHealthHandler(&persistence.Database{DB: stack.DB}),
	})

	return &server{t: t, engine: engine, stack: stack, tenant: testutil.TestTenantID()}
}

// do sends a request as the default tenant
func (s *server) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	return s.doAs(s.tenant, method, path, body)
}

func (s *server) doAs(tenant uuid.UUID, method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	return testutil.Do(s.t, s.engine, method, "/api/v1"+path, body, map[string]string{
		"X-Tenant-ID": tenant.String(),
	})
}

func (s *server) createItem(name string) uuid.UUID {
	s.t.Helper()
	w := s.do(http.MethodPost, "/inventory/items", map[string]any{"name": name, "unit": "MASS"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return testutil.DecodeData[inventoryapp.ItemResponse](s.t, w).ID
}

// receive adds a batch received the given number of hours ago
func (s *server) receive(itemID uuid.UUID, qty, cost string, hoursAgo int) uuid.UUID {
	s.t.Helper()
	receivedAt := time.Now().Add(-time.Duration(hoursAgo) * time.Hour).UTC()
	w := s.do(http.MethodPost, fmt.Sprintf("/inventory/items/%s/batches", itemID), map[string]any{
		"quantity":      qty,
		"cost_per_unit": cost,
		"received_at":   receivedAt.Format(time.RFC3339Nano),
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return testutil.DecodeData[inventoryapp.BatchResponse](s.t, w).ID
}

func (s *server) stock(itemID uuid.UUID) inventoryapp.StockLevel {
	s.t.Helper()
	w := s.do(http.MethodGet, fmt.Sprintf("/inventory/items/%s/stock", itemID), nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return testutil.DecodeData[inventoryapp.StockLevel](s.t, w)
}
