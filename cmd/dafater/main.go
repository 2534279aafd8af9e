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

	"github.com/dafater-app/dafater/internal/access"
	"github.com/dafater-app/dafater/internal/app"
	"github.com/dafater-app/dafater/internal/auth"
	"github.com/dafater-app/dafater/internal/companies"
	"github.com/dafater-app/dafater/internal/dashboard"
	"github.com/dafater-app/dafater/internal/invoices"
	"github.com/dafater-app/dafater/internal/ledger"
	"github.com/dafater-app/dafater/internal/platform/cache"
	"github.com/dafater-app/dafater/internal/platform/db"
	"github.com/dafater-app/dafater/internal/reports"
	"github.com/dafater-app/dafater/internal/shared"
	"github.com/dafater-app/dafater/internal/users"
	"github.com/dafater-app/dafater/jobs"
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

	pool, err := db.Connect(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "dafater_session", cfg.SessionTTL, cfg.IsProduction())

	jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	guard := access.NewGuard(access.NewRepository(pool))

	userService := users.NewService(users.NewRepository(pool))
	authService := auth.NewService(auth.NewRepository(pool))
	authHandler := auth.NewHandler(logger, authService, userService, !cfg.IsProduction())

	companyService := companies.NewService(companies.NewRepository(pool), guard)
	companyHandler := companies.NewHandler(logger, companyService)

	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(dashboard.NewRepository(pool), guard, dashboardCache)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)
	invalidator := dashboard.NewInvalidator(logger, dashboardCache, jobClient)

	ledgerService := ledger.NewService(ledger.NewRepository(pool), guard, invalidator)
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	reportsService := reports.NewService(reports.NewRepository(pool), guard)
	reportsHandler := reports.NewHandler(logger, reportsService)

	invoiceService := invoices.NewService(invoices.NewRepository(pool), guard, invalidator)
	invoiceHandler := invoices.NewHandler(logger, invoiceService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		AuthHandler:      authHandler,
		CompanyHandler:   companyHandler,
		LedgerHandler:    ledgerHandler,
		DashboardHandler: dashboardHandler,
		ReportsHandler:   reportsHandler,
		InvoiceHandler:   invoiceHandler,
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
