package handler

import (
	"errors"
	"net/http"

	"oilbooking/internal/service"

	"github.com/gin-gonic/gin"

	"oilbooking/pkg/response"
)

// StatusBody is the payload for the status-only endpoints. The string is
// stored as-is; no transition table is enforced.
type StatusBody struct {
	Status string `json:"status" binding:"required"`
}

// statusFor maps service errors onto the API's two client-error codes:
// missing resources (and the refused request delete) are 404, every other
// rejected operation is a 400 carrying only the message.
func statusFor(err error) int {
	if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrRequestLinked) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func abortWithError(c *gin.Context, err error) {
	code := statusFor(err)
	c.JSON(code, response.Error(code, err.Error()))
}
