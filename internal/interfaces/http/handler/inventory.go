package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/qreats/backend/internal/application/inventory"
	"github.com/qreats/backend/internal/domain/inventory"
	"github.com/qreats/backend/internal/domain/shared"
)

// InventoryHandler handles inventory item, batch and ledger endpoints
type InventoryHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stockService *inventoryapp.StockService) *InventoryHandler {
	return &InventoryHandler{
		stockService: stockService,
	}
}

// ReconciliationResponse is a reconciliation with its verdict
// @Description Ledger reconciliation of one inventory item
type ReconciliationResponse struct {
	*inventory.Reconciliation
	Balanced bool `json:"balanced" example:"true"`
}

// CreateItem godoc
// @ID           createInventoryItem
// @Summary      Register an inventory item
// @Description  Create a stock-tracked ingredient or product for the tenant
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Param        request body inventoryapp.CreateItemRequest true "Item"
// @Success      201 {object} APIResponse[inventoryapp.ItemResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/items [post]
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req inventoryapp.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.stockService.CreateItem(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// GetStock godoc
// @ID           getInventoryStock
// @Summary      Get stock level
// @Description  On-hand quantity, open batch count and FIFO valuation of an item
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Param        id path string true "Inventory Item ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.StockLevel]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/items/{id}/stock [get]
func (h *InventoryHandler) GetStock(c *gin.Context) {
	tenantID, itemID, ok := h.itemParams(c)
	if !ok {
		return
	}

	level, err := h.stockService.GetStockLevel(c.Request.Context(), tenantID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, level)
}

// ReceiveBatch godoc
// @ID           receiveInventoryBatch
// @Summary      Receive a batch
// @Description  Add a delivery of stock at a unit cost; it is consumed after every older batch
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Param        id path string true "Inventory Item ID" format(uuid)
// @Param        request body inventoryapp.ReceiveBatchRequest true "Batch"
// @Success      201 {object} APIResponse[inventoryapp.BatchResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/items/{id}/batches [post]
func (h *InventoryHandler) ReceiveBatch(c *gin.Context) {
	tenantID, itemID, ok := h.itemParams(c)
	if !ok {
		return
	}

	var req inventoryapp.ReceiveBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	batch, err := h.stockService.ReceiveBatch(c.Request.Context(), tenantID, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, batch)
}

// ListBatches godoc
// @ID           listInventoryBatches
// @Summary      List batches
// @Description  Batches of an item in consumption order, oldest first
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Param        id path string true "Inventory Item ID" format(uuid)
// @Success      200 {object} APIResponse[[]inventoryapp.BatchResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/items/{id}/batches [get]
func (h *InventoryHandler) ListBatches(c *gin.Context) {
	tenantID, itemID, ok := h.itemParams(c)
	if !ok {
		return
	}

	batches, err := h.stockService.ListBatches(c.Request.Context(), tenantID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batches)
}

// ListLedger godoc
// @ID           listInventoryLedger
// @Summary      List ledger entries
// @Description  Append-only movement history of an item, most recent first
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Param        id path string true "Inventory Item ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]inventoryapp.LedgerEntryResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/items/{id}/ledger [get]
func (h *InventoryHandler) ListLedger(c *gin.Context) {
	tenantID, itemID, ok := h.itemParams(c)
	if !ok {
		return
	}

	var filter inventoryapp.LedgerListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	entries, total, err := h.stockService.ListLedger(c.Request.Context(), tenantID, itemID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	defaults := shared.DefaultFilter()
	if page == 0 {
		page = defaults.Page
	}
	if pageSize == 0 {
		pageSize = defaults.PageSize
	}
	h.SuccessWithMeta(c, entries, total, page, pageSize)
}

// Reconcile godoc
// @ID           reconcileInventoryItem
// @Summary      Reconcile an item
// @Description  Check that ledger entries explain every batch's consumed quantity
// @Tags         inventory
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Param        id path string true "Inventory Item ID" format(uuid)
// @Success      200 {object} APIResponse[ReconciliationResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/items/{id}/reconciliation [get]
func (h *InventoryHandler) Reconcile(c *gin.Context) {
	tenantID, itemID, ok := h.itemParams(c)
	if !ok {
		return
	}

	r, err := h.stockService.Reconcile(c.Request.Context(), tenantID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ReconciliationResponse{Reconciliation: r, Balanced: r.Balanced()})
}

// Adjust godoc
// @ID           adjustInventoryStock
// @Summary      Deduct stock manually
// @Description  FIFO deduction not tied to an order, e.g. waste or spoilage
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Param        id path string true "Inventory Item ID" format(uuid)
// @Param        request body inventoryapp.AdjustStockRequest true "Adjustment"
// @Success      200 {object} APIResponse[inventoryapp.DeductionResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/items/{id}/adjustments [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	tenantID, itemID, ok := h.itemParams(c)
	if !ok {
		return
	}

	var req inventoryapp.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.stockService.Adjust(c.Request.Context(), tenantID, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// itemParams resolves the tenant and the :id path parameter
func (h *InventoryHandler) itemParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return uuid.Nil, uuid.Nil, false
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid inventory item ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, itemID, true
}
