package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/nermalcat69/promptu/internal/handler"
	"github.com/nermalcat69/promptu/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Prompt   *handler.PromptHandler
	Vote     *handler.VoteHandler
	Trending *handler.TrendingHandler
	Stats    *handler.StatsHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins, jwtSecret string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health checks and metrics (no auth, no rate limits)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	counterLimiter := middleware.NewCounterRateLimiter()

	// API routes
	api := app.Group("/api")

	// Prompt read side + monotonic counters
	api.Get("/prompts/:slug", h.Prompt.Get)
	api.Post("/prompts/:slug/view", h.Prompt.View, counterLimiter.Handler())
	api.Post("/prompts/:slug/copy", h.Prompt.Copy, counterLimiter.Handler())

	// Vote routes: status is public (anonymous callers get voted=false),
	// toggling requires an identity.
	api.Get("/prompts/:slug/vote", h.Vote.Status, middleware.OptionalAuth(jwtSecret))
	api.Post("/prompts/:slug/vote", h.Vote.Toggle,
		middleware.RequireAuth(jwtSecret),
		middleware.NewVoteRateLimiter().Handler())

	// Trending routes
	api.Get("/trending", h.Trending.Get, middleware.NewTrendingRateLimiter().Handler())

	// Stats routes
	api.Get("/stats/community", h.Stats.Get, middleware.NewStatsRateLimiter().Handler())
}
