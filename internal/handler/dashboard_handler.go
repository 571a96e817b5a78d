package handler

import (
	"strconv"

	"go-sales-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const maxTrendDays = 366

type DashboardHandler struct {
	service service.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(s service.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, log: namedLogger(log, "dashboard")}
}

// GetSalesTrend returns per-day sale counts and revenue for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetSalesTrend(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}

	data, err := h.service.GetSalesTrend(days)
	if err != nil {
		h.log.Error("sales trend", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sales trend"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		h.log.Error("dashboard stats", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(stats)
}
