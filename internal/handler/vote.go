package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/nermalcat69/promptu/internal/middleware"
	"github.com/nermalcat69/promptu/internal/model"
	"github.com/nermalcat69/promptu/internal/service"
	"github.com/nermalcat69/promptu/pkg/hash"
)

type VoteHandler struct {
	svc    *service.VoteService
	ipSalt string
}

func NewVoteHandler(svc *service.VoteService, ipSalt string) *VoteHandler {
	return &VoteHandler{svc: svc, ipSalt: ipSalt}
}

// Status handles GET /api/prompts/:slug/vote
func (h *VoteHandler) Status(c fiber.Ctx) error {
	slug, errMsg := middleware.ValidateSlug(c.Params("slug"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SLUG", errMsg)
	}

	resp, err := h.svc.Status(c.Context(), slug, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Prompt not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch voting status")
	}

	return c.JSON(resp)
}

// Toggle handles POST /api/prompts/:slug/vote
func (h *VoteHandler) Toggle(c fiber.Ctx) error {
	slug, errMsg := middleware.ValidateSlug(c.Params("slug"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SLUG", errMsg)
	}

	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if req.Type != string(model.VoteTypeUpvote) {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VOTE_TYPE",
			"Invalid vote type. Must be: upvote")
	}

	// RequireAuth guarantees a user here; the check is a belt against
	// misrouted registration.
	userID := middleware.UserID(c)
	if userID == "" {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	}

	// Salted so audit rows never hold a bare hash of the address
	ipHash := hash.HashIP(c.IP(), h.ipSalt)

	resp, err := h.svc.Toggle(c.Context(), slug, userID, ipHash)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromptNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Prompt not found")
		case errors.Is(err, service.ErrSelfVote):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "SELF_VOTE_FORBIDDEN",
				"You cannot vote on your own prompt")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to toggle vote")
	}

	action := "removed"
	if resp.Voted {
		action = "recorded"
	}
	Metrics.VotesTotal.WithLabelValues(action).Inc()

	return c.JSON(resp)
}
