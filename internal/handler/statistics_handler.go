package handler

import (
	"net/http"

	"oilbooking/internal/service"
	"oilbooking/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/statistics/summary", h.GetSummary)
}

// GetSummary returns headline counts and totals for the dashboard
// @Summary      Workflow summary
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  response.Response{data=service.SummaryResponse}
// @Router       /api/statistics/summary [get]
func (h *StatisticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.statisticsService.GetSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
