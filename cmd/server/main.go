package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	httpadapter "job-copilot/internal/adapter/http"
	repo "job-copilot/internal/adapter/repository"
	"job-copilot/internal/config"
	"job-copilot/internal/infrastructure/migration"
	"job-copilot/internal/usecase"
	"job-copilot/pkg/ai"
	"job-copilot/pkg/auth"
	infra "job-copilot/pkg/infrastructure"
	"job-copilot/pkg/logger"
	"job-copilot/pkg/ratelimit"
)

func main() {
	ctx := context.Background()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading config")
	}
	logger.Init(cfg.Log)

	pool, err := infra.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connecting to database")
	}
	defer pool.Close()

	if err := migration.RunMigrations(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("running migrations")
	}

	var limiter usecase.Limiter
	if cfg.RateLimit.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RateLimit.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parsing redis url")
		}
		limiter = ratelimit.NewRedis(redis.NewClient(opts), cfg.RateLimit.PerMinute, time.Minute)
		logger.Info().Msg("rate limiter: shared redis counter")
	} else {
		limiter = ratelimit.NewMemory(cfg.RateLimit.PerMinute, time.Minute)
		logger.Info().Msg("rate limiter: in-process counter")
	}

	jobsRepo := repo.NewJobsRepo(pool)
	analysisRepo := repo.NewAnalysisRepo(pool)
	completer := ai.NewClient(cfg.Groq.APIKey, cfg.Groq.BaseURL, cfg.Groq.Model)
	resolver := auth.NewResolver(cfg.Auth.URL, cfg.Auth.AnonKey)
	analyzer := usecase.NewAnalyzer(jobsRepo, analysisRepo, limiter, completer)

	app := fiber.New(fiber.Config{
		AppName:     "job-copilot",
		BodyLimit:   1 << 20,
		ReadTimeout: 30 * time.Second,
	})
	httpadapter.NewHandler(analyzer, jobsRepo, analysisRepo).Register(app, resolver)

	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()
	logger.Info().Str("port", cfg.Server.Port).Msg("listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
	}
}
