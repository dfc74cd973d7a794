package handlers

import (
	"spendbook/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	statsService *service.StatsService
	logger       *zap.Logger
}

func NewDashboardHandler(statsService *service.StatsService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// Stats godoc
// @Summary Dashboard statistics
// @Description Totals and averages for the period, plus the all-time
// @Description category breakdown, recent expenses and category count
// @Tags dashboard
// @Produce json
// @Param period query string false "Period: week, month, year or all" default(month)
// @Security Bearer
// @Success 200 {object} dto.StatsResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	period := c.Query("period", "month")

	resp, err := h.statsService.GetStats(c.Context(), userID, period)
	if err != nil {
		h.logger.Error("Failed to fetch dashboard stats", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch expense statistics",
		})
	}

	return c.JSON(resp)
}
