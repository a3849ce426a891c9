package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/atelier-hq/atelier/internal/app"
	"github.com/atelier-hq/atelier/internal/auth"
	"github.com/atelier-hq/atelier/internal/items"
	"github.com/atelier-hq/atelier/internal/observability"
	"github.com/atelier-hq/atelier/internal/platform/db"
	"github.com/atelier-hq/atelier/internal/users"
	"github.com/atelier-hq/atelier/internal/utils"
	"github.com/atelier-hq/atelier/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	queue := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Warn("queue close", slog.Any("error", err))
		}
	}()

	hasher := auth.NewHasher(cfg.BcryptCost)
	codec := auth.NewCodec(cfg.SecretKey)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, hasher, codec, cfg.AccessTokenTTL(), cfg.ResetTokenTTL())
	resolver := auth.NewResolver(codec, authRepo)
	authMW := auth.Middleware{Resolver: resolver}
	authHandler := auth.NewHandler(logger, authService, authMW, queue, auth.HandlerConfig{
		ProjectName:  cfg.ProjectName,
		FrontendHost: cfg.FrontendHost,
	})

	itemsRepo := items.NewRepository(pool)
	itemsService := items.NewService(itemsRepo)
	itemsHandler := items.NewHandler(logger, itemsService, authMW)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, hasher, itemsService)
	usersHandler := users.NewHandler(logger, usersService, authMW, queue, users.HandlerConfig{
		ProjectName:   cfg.ProjectName,
		FrontendHost:  cfg.FrontendHost,
		EmailsEnabled: cfg.EmailsEnabled(),
	})

	utilsHandler := utils.NewHandler(logger, queue, authMW, cfg.ProjectName)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:       logger,
		Config:       cfg,
		AuthHandler:  authHandler,
		UsersHandler: usersHandler,
		ItemsHandler: itemsHandler,
		UtilsHandler: utilsHandler,
		Metrics:      metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
