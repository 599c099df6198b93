package handler

import (
	"net/http"

	"oilbooking/internal/service"
	"oilbooking/pkg/pagination"
	"oilbooking/pkg/response"

	"github.com/gin-gonic/gin"
)

type CounterPartyHandler struct {
	counterPartyService service.CounterPartyService
}

func NewCounterPartyHandler(counterPartyService service.CounterPartyService) *CounterPartyHandler {
	return &CounterPartyHandler{counterPartyService: counterPartyService}
}

func (h *CounterPartyHandler) RegisterRoutes(router *gin.RouterGroup) {
	counterparties := router.Group("/api/counterparties")
	{
		counterparties.GET("", h.ListCounterParties)
		counterparties.GET("/:id", h.GetCounterParty)
		counterparties.POST("", h.CreateCounterParty)
		counterparties.PUT("/:id", h.UpdateCounterParty)
		counterparties.DELETE("/:id", h.DeleteCounterParty)
	}
}

// ListCounterParties returns paginated counterparties, optionally matched by name
// @Summary      List counterparties
// @Tags         counterparties
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Param        search  query     string  false  "Search by name"
// @Success      200     {object}  response.Response{data=[]service.CounterPartyResponse}
// @Router       /api/counterparties [get]
func (h *CounterPartyHandler) ListCounterParties(c *gin.Context) {
	params := pagination.Parse(c)

	counterparties, total, err := h.counterPartyService.ListCounterParties(c.Request.Context(), params.Page, params.Limit, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, counterparties, params.Page, params.Limit, total))
}

// GetCounterParty returns one counterparty by id
// @Summary      Get counterparty
// @Tags         counterparties
// @Produce      json
// @Param        id   path      string  true  "CounterParty ID"
// @Success      200  {object}  response.Response{data=service.CounterPartyResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/counterparties/{id} [get]
func (h *CounterPartyHandler) GetCounterParty(c *gin.Context) {
	counterparty, err := h.counterPartyService.GetCounterPartyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, counterparty))
}

// CreateCounterParty registers a new counterparty
// @Summary      Create counterparty
// @Tags         counterparties
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCounterPartyRequest  true  "Create CounterParty Payload"
// @Success      201      {object}  response.Response{data=service.CounterPartyResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/counterparties [post]
func (h *CounterPartyHandler) CreateCounterParty(c *gin.Context) {
	var req service.CreateCounterPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	counterparty, err := h.counterPartyService.CreateCounterParty(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Location", "/api/counterparties/"+counterparty.ID)
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, counterparty))
}

// UpdateCounterParty updates a counterparty's fields
// @Summary      Update counterparty
// @Tags         counterparties
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "CounterParty ID"
// @Param        payload  body      service.UpdateCounterPartyRequest  true  "Update CounterParty Payload"
// @Success      200      {object}  response.Response{data=service.CounterPartyResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/counterparties/{id} [put]
func (h *CounterPartyHandler) UpdateCounterParty(c *gin.Context) {
	var req service.UpdateCounterPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	counterparty, err := h.counterPartyService.UpdateCounterParty(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, counterparty))
}

// DeleteCounterParty soft deletes a counterparty
// @Summary      Delete counterparty
// @Tags         counterparties
// @Param        id   path  string  true  "CounterParty ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /api/counterparties/{id} [delete]
func (h *CounterPartyHandler) DeleteCounterParty(c *gin.Context) {
	if err := h.counterPartyService.DeleteCounterParty(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
