package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/nermalcat69/promptu/internal/config"
	"github.com/nermalcat69/promptu/internal/db"
	"github.com/nermalcat69/promptu/internal/handler"
	"github.com/nermalcat69/promptu/internal/middleware"
	"github.com/nermalcat69/promptu/internal/repository"
	"github.com/nermalcat69/promptu/internal/router"
	"github.com/nermalcat69/promptu/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "promptu-api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Bootstrap(ctx, pool); err != nil {
		log.Fatalf("failed to bootstrap schema: %v", err)
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	promptRepo := repository.NewPromptRepo(pool)
	voteRepo := repository.NewVoteRepo(pool)
	statsRepo := repository.NewStatsRepo(pool)

	voteSvc := service.NewVoteService(promptRepo, voteRepo, cache)
	trendingSvc := service.NewTrendingService(promptRepo, cache)
	statsSvc := service.NewStatsService(statsRepo, cache)

	// Counter reconciliation safety net
	worker := service.NewReconcileWorker(pool, voteRepo, promptRepo, cache)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	handler.InitMetrics(pool)

	app := fiber.New(fiber.Config{
		AppName:      "Promptu API",
		ServerHeader: "Promptu",
	})

	router.Setup(app, &router.Handlers{
		Prompt:   handler.NewPromptHandler(promptRepo, cache),
		Vote:     handler.NewVoteHandler(voteSvc, cfg.IPSalt),
		Trending: handler.NewTrendingHandler(trendingSvc),
		Stats:    handler.NewStatsHandler(statsSvc),
		Health:   handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins, cfg.JWTSecret)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("shutting down")
		cancel()
		_ = app.Shutdown()
	}()

	log.Printf("Promptu API starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}

	// Let the worker finish its final flush before the deferred pool.Close
	cancel()
	select {
	case <-workerDone:
	case <-time.After(10 * time.Second):
		log.Println("reconcile worker did not stop in time")
	}
}
