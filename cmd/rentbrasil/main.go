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
	"github.com/shopspring/decimal"

	"github.com/rentbrasil/rentbrasil/internal/app"
	"github.com/rentbrasil/rentbrasil/internal/catalog"
	"github.com/rentbrasil/rentbrasil/internal/condominiums"
	dashboardhttp "github.com/rentbrasil/rentbrasil/internal/dashboard/http"
	"github.com/rentbrasil/rentbrasil/internal/items"
	"github.com/rentbrasil/rentbrasil/internal/observability"
	"github.com/rentbrasil/rentbrasil/internal/people"
	"github.com/rentbrasil/rentbrasil/internal/platform/cache"
	"github.com/rentbrasil/rentbrasil/internal/platform/db"
	"github.com/rentbrasil/rentbrasil/internal/rentals"
	"github.com/rentbrasil/rentbrasil/internal/requests"
	"github.com/rentbrasil/rentbrasil/internal/reviews"
	"github.com/rentbrasil/rentbrasil/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	services, err := app.NewServices(cfg, dbpool, redisClient, logger)
	if err != nil {
		logger.Error("wire services", slog.Any("error", err))
		os.Exit(1)
	}
	defer services.Close()

	if err := services.Selection.Load(ctx); err != nil {
		logger.Warn("load condominium selection", slog.Any("error", err))
	}
	if err := services.Selection.Listen(ctx); err != nil {
		logger.Warn("listen for condominium selection", slog.Any("error", err))
	}
	unsubscribe := services.Selection.Subscribe(func(id string) {
		logger.Info("condominium selection changed", slog.String("condominio_id", id))
	})
	defer unsubscribe()

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	jobClient := jobs.NewClient(redisOpts)
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Metrics:            metrics,
		CatalogHandler:     catalog.NewHandler(logger, services.Catalog),
		CondominiumHandler: condominiums.NewPublicHandler(logger, services.Condominiums, services.Selection),
		DashboardHandler:   dashboardhttp.NewHandler(logger, services.Dashboard),
		Admin: app.AdminResources{
			People:       people.NewHandler(logger, services.People),
			Items:        items.NewHandler(logger, services.Items),
			Condominiums: condominiums.NewHandler(logger, services.Condominiums),
			Rentals:      rentals.NewHandler(logger, services.Rentals),
			Reviews:      reviews.NewHandler(logger, services.Reviews),
			Requests:     requests.NewHandler(logger, services.Requests),
			Jobs:         jobs.NewHandler(inspector, jobClient, logger),
		},
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
