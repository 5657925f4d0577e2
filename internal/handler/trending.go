package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/nermalcat69/promptu/internal/middleware"
	"github.com/nermalcat69/promptu/internal/model"
	"github.com/nermalcat69/promptu/internal/service"
)

const defaultTrendingLimit = 20

type TrendingHandler struct {
	svc *service.TrendingService
}

func NewTrendingHandler(svc *service.TrendingService) *TrendingHandler {
	return &TrendingHandler{svc: svc}
}

// Get handles GET /api/trending?limit&timeframe&type&category
func (h *TrendingHandler) Get(c fiber.Ctx) error {
	limit, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "limit"), defaultTrendingLimit)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_LIMIT", errMsg)
	}

	timeframe, ok := model.ParseTimeframe(fiber.Query[string](c, "timeframe"))
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_TIMEFRAME",
			"Invalid timeframe. Must be one of: daily, weekly, monthly, all-time")
	}

	var (
		resp *model.TrendingResponse
		err  error
	)

	// type and category narrow the candidate set; type wins when both are given.
	switch {
	case fiber.Query[string](c, "type") != "":
		ptype := model.PromptType(fiber.Query[string](c, "type"))
		resp, err = h.svc.TrendingByType(c.Context(), ptype, limit, timeframe)
	case fiber.Query[string](c, "category") != "":
		var categoryID int64
		categoryID, errMsg = middleware.ValidateCategoryID(fiber.Query[string](c, "category"))
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CATEGORY", errMsg)
		}
		resp, err = h.svc.TrendingByCategory(c.Context(), categoryID, limit, timeframe)
	default:
		resp, err = h.svc.Trending(c.Context(), limit, timeframe)
	}

	if err != nil {
		if errors.Is(err, service.ErrInvalidLimit) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_LIMIT", err.Error())
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute trending")
	}

	return c.JSON(resp)
}
