package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/qreats/backend/internal/application/order"
)

// OrderHandler handles order, refund and recipe endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrder godoc
// @ID           createOrder
// @Summary      Place an order
// @Description  Persist an order and deduct the recipe ingredients of every line in FIFO order.
// @Description  Insufficient stock for any ingredient rejects the whole order.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Param        request body orderapp.CreateOrderInput true "Order"
// @Success      201 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var input orderapp.CreateOrderInput
	if !h.BindJSON(c, &input) {
		return
	}
	input.TenantID = tenantID

	o, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, o)
}

// GetOrder godoc
// @ID           getOrder
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	tenantID, orderID, ok := h.orderParams(c)
	if !ok {
		return
	}

	o, err := h.orderService.GetOrder(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, o)
}

// RefundOrder godoc
// @ID           refundOrder
// @Summary      Refund an order
// @Description  Mark the order refunded and return every deducted quantity to the batch it came from
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body orderapp.RefundOrderInput false "Refund"
// @Success      200 {object} APIResponse[orderapp.RefundResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/refund [post]
func (h *OrderHandler) RefundOrder(c *gin.Context) {
	tenantID, orderID, ok := h.orderParams(c)
	if !ok {
		return
	}

	var input orderapp.RefundOrderInput
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &input) {
		return
	}

	refund, err := h.orderService.RefundOrder(c.Request.Context(), tenantID, orderID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, refund)
}

// CreateRecipe godoc
// @ID           createRecipe
// @Summary      Link a menu item to an ingredient
// @Description  Each unit of the menu item sold consumes quantity_required of the inventory item
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Param        request body orderapp.CreateRecipeInput true "Recipe"
// @Success      201 {object} APIResponse[orderapp.RecipeResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /recipes [post]
func (h *OrderHandler) CreateRecipe(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var input orderapp.CreateRecipeInput
	if !h.BindJSON(c, &input) {
		return
	}

	recipe, err := h.orderService.CreateRecipe(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, recipe)
}

func (h *OrderHandler) orderParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return uuid.Nil, uuid.Nil, false
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, orderID, true
}
