package handler

import (
	"net/http"

	"oilbooking/internal/service"
	"oilbooking/pkg/pagination"
	"oilbooking/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.POST("", h.CreateInvoice)
		invoices.PUT("/:id/amount", h.UpdateInvoiceAmount)
		invoices.PATCH("/:id/status", h.UpdateInvoiceStatus)
	}
}

// AmountBody is the payload for the amount override endpoint
type AmountBody struct {
	Amount string `json:"amount" binding:"required"`
}

// ListInvoices returns paginated invoices with their orders resolved
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {object}  response.Response{data=[]service.InvoiceResponse}
// @Router       /api/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	params := pagination.Parse(c)

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), params.Page, params.Limit, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, invoices, params.Page, params.Limit, total))
}

// GetInvoice returns one invoice by id
// @Summary      Get invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=service.InvoiceResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// CreateInvoice aggregates orders into a draft invoice
// @Summary      Create invoice
// @Description  Groups orders into an invoice; rejects orders that are already invoiced
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateInvoiceRequest  true  "Create Invoice Payload"
// @Success      201      {object}  response.Response{data=service.InvoiceResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Location", "/api/invoices/"+invoice.ID)
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, invoice))
}

// UpdateInvoiceAmount overwrites the invoice total with the caller's figure
// @Summary      Update invoice amount
// @Tags         invoices
// @Accept       json
// @Param        id       path  string              true  "Invoice ID"
// @Param        payload  body  handler.AmountBody  true  "New total amount"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id}/amount [put]
func (h *InvoiceHandler) UpdateInvoiceAmount(c *gin.Context) {
	var body AmountBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.invoiceService.UpdateInvoiceAmount(c.Request.Context(), c.Param("id"), body.Amount); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateInvoiceStatus overwrites the invoice status string
// @Summary      Update invoice status
// @Tags         invoices
// @Accept       json
// @Param        id       path  string              true  "Invoice ID"
// @Param        payload  body  handler.StatusBody  true  "New status"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateInvoiceStatus(c *gin.Context) {
	var body StatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), c.Param("id"), body.Status); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
