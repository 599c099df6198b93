package handler

import (
	"net/http"

	"oilbooking/internal/service"
	"oilbooking/pkg/pagination"
	"oilbooking/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/api/orders")
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.POST("", h.CreateOrder)
		orders.PATCH("/:id/status", h.UpdateOrderStatus)
	}
}

// ListOrders returns paginated orders with counter-party and requests resolved
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {object}  response.Response{data=[]service.OrderResponse}
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := pagination.Parse(c)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params.Page, params.Limit, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, orders, params.Page, params.Limit, total))
}

// GetOrder returns one order by id
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=service.OrderResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// CreateOrder aggregates requests into a placed order
// @Summary      Create order
// @Description  Groups requests under a counter-party; rejects requests that are already ordered
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateOrderRequest  true  "Create Order Payload"
// @Success      201      {object}  response.Response{data=service.OrderResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Location", "/api/orders/"+order.ID)
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// UpdateOrderStatus overwrites the order status string
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Param        id       path  string              true  "Order ID"
// @Param        payload  body  handler.StatusBody  true  "New status"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var body StatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), body.Status); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
