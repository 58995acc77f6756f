package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"notary_admin_go/config"
	"notary_admin_go/db"
	"notary_admin_go/handlers"
	"notary_admin_go/logging"
	"notary_admin_go/metrics"
	"notary_admin_go/middleware"
	"notary_admin_go/services/jobs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment, logger); err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(db.Models()...); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	handlers.InitServices(db.DB, cfg, m, logger)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestLogger(logger.Named("http")))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet},
	}))

	e.GET("/health", handlers.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Requests: cfg.RateLimitPerMinute,
		Window:   time.Minute,
	})
	defer limiter.Close()

	api := e.Group("/api")
	api.Use(limiter.Middleware())
	{
		api.GET("/dashboard/stats", handlers.DashboardStatsHandler)
		api.GET("/dashboard/summary", handlers.DashboardSummaryHandler)
		api.GET("/dashboard/grid", handlers.DashboardGridHandler)
		api.GET("/notaries", handlers.ListNotariesHandler)
		api.GET("/notaries/export", handlers.ExportNotariesHandler)
		api.GET("/partners", handlers.ListPartnersHandler)
		api.GET("/act-categories", handlers.ListActCategoriesHandler)
	}

	// Nightly license label sweep
	sweep, err := jobs.StartLicenseSweep(db.DB, cfg, m, logger)
	if err != nil {
		logger.Fatal("Failed to start license sweep", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", zap.String("port", cfg.ServerPort))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		// Wait for a running sweep before closing the database
		<-sweep.Stop().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
