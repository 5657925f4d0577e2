package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/nermalcat69/promptu/internal/middleware"
	"github.com/nermalcat69/promptu/internal/service"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Get handles GET /api/stats/community?detailed=true
func (h *StatsHandler) Get(c fiber.Ctx) error {
	detailed := fiber.Query[string](c, "detailed") == "true"

	stats, err := h.svc.Stats(c.Context(), detailed)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	return c.JSON(stats)
}
