package handler

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/nermalcat69/promptu/internal/middleware"
	"github.com/nermalcat69/promptu/internal/model"
	"github.com/nermalcat69/promptu/internal/repository"
	"github.com/nermalcat69/promptu/internal/service"
)

// PromptHandler serves the thin read side of prompts plus the monotonic
// view/copy counter increments. Prompt lifecycle (create/edit/delete) belongs
// to the content-management service, not this API.
type PromptHandler struct {
	prompts *repository.PromptRepo
	cache   *service.CacheService
}

func NewPromptHandler(prompts *repository.PromptRepo, cache *service.CacheService) *PromptHandler {
	return &PromptHandler{prompts: prompts, cache: cache}
}

// Get handles GET /api/prompts/:slug
// Uses cache-aside: check Redis first, fall back to DB, then populate cache.
func (h *PromptHandler) Get(c fiber.Ctx) error {
	slug, errMsg := middleware.ValidateSlug(c.Params("slug"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SLUG", errMsg)
	}

	if h.cache != nil {
		cached, err := h.cache.Get(c.Context(), service.PromptKey(slug))
		if err != nil {
			log.Printf("cache: prompt get error: %v", err)
		} else if cached != nil {
			Metrics.CacheHits.Inc()
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}
		Metrics.CacheMisses.Inc()
	}

	p, err := h.prompts.FindBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Prompt not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup prompt")
	}

	resp := &model.PromptResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		AuthorID:    p.AuthorID,
		PromptType:  p.PromptType,
		CategoryID:  p.CategoryID,
		UpvoteCount: p.UpvoteCount,
		ViewCount:   p.ViewCount,
		CopyCount:   p.CopyCount,
		CreatedAt:   p.CreatedAt,
	}

	if h.cache != nil {
		if err := h.cache.Set(c.Context(), service.PromptKey(slug), resp, service.PromptCacheTTL); err != nil {
			log.Printf("cache: prompt set error: %v", err)
		}
	}

	return c.JSON(resp)
}

// View handles POST /api/prompts/:slug/view — an atomic relative increment
// of the view counter.
func (h *PromptHandler) View(c fiber.Ctx) error {
	return h.increment(c, h.prompts.IncrementViewCount, "viewCount")
}

// Copy handles POST /api/prompts/:slug/copy
func (h *PromptHandler) Copy(c fiber.Ctx) error {
	return h.increment(c, h.prompts.IncrementCopyCount, "copyCount")
}

func (h *PromptHandler) increment(c fiber.Ctx, bump func(ctx context.Context, promptID int64) (int, error), field string) error {
	slug, errMsg := middleware.ValidateSlug(c.Params("slug"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SLUG", errMsg)
	}

	p, err := h.prompts.FindBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Prompt not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup prompt")
	}

	n, err := bump(c.Context(), p.ID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update counter")
	}

	if h.cache != nil {
		if err := h.cache.InvalidatePrompt(c.Context(), slug); err != nil {
			log.Printf("cache: invalidate prompt error: %v", err)
		}
	}

	return c.JSON(fiber.Map{field: n})
}
