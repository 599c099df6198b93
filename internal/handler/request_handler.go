package handler

import (
	"net/http"

	"oilbooking/internal/service"
	"oilbooking/pkg/pagination"
	"oilbooking/pkg/response"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/api/requests")
	{
		requests.GET("", h.ListRequests)
		requests.GET("/:id", h.GetRequest)
		requests.POST("", h.CreateRequest)
		requests.PUT("/:id", h.UpdateRequest)
		requests.DELETE("/:id", h.DeleteRequest)
		requests.PATCH("/:id/status", h.UpdateRequestStatus)
	}
}

// ListRequests returns a paginated list of requests with user and product resolved
// @Summary      List requests
// @Tags         requests
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {object}  response.Response{data=[]service.RequestResponse}
// @Router       /api/requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	params := pagination.Parse(c)

	requests, total, err := h.requestService.ListRequests(c.Request.Context(), params.Page, params.Limit, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, requests, params.Page, params.Limit, total))
}

// GetRequest returns one request by id
// @Summary      Get request
// @Tags         requests
// @Produce      json
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.RequestResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	request, err := h.requestService.GetRequestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, request))
}

// CreateRequest creates a product request with a snapshotted price
// @Summary      Create request
// @Description  Creates a Pending request; fails when no price is effective for the product
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateRequestRequest  true  "Create Request Payload"
// @Success      201      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req service.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	request, err := h.requestService.CreateRequest(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Location", "/api/requests/"+request.ID)
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, request))
}

// UpdateRequest edits a request, refreshing the price snapshot when possible
// @Summary      Update request
// @Tags         requests
// @Accept       json
// @Param        id       path  string                        true  "Request ID"
// @Param        payload  body  service.UpdateRequestRequest  true  "Update Request Payload"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /api/requests/{id} [put]
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	var req service.UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if _, err := h.requestService.UpdateRequest(c.Request.Context(), c.Param("id"), req); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteRequest removes a request unless it is already part of an order
// @Summary      Delete request
// @Tags         requests
// @Param        id   path  string  true  "Request ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /api/requests/{id} [delete]
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	if err := h.requestService.DeleteRequest(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateRequestStatus overwrites the request status string
// @Summary      Update request status
// @Tags         requests
// @Accept       json
// @Param        id       path  string               true  "Request ID"
// @Param        payload  body  handler.StatusBody   true  "New status"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /api/requests/{id}/status [patch]
func (h *RequestHandler) UpdateRequestStatus(c *gin.Context) {
	var body StatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.requestService.UpdateRequestStatus(c.Request.Context(), c.Param("id"), body.Status); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
