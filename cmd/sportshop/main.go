package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/app"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/ledger"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/products"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/suppliers"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/platform/cache"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/platform/db"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/reports"
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

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Reports fall back to uncached queries when Redis is down.
		logger.Warn("redis unavailable", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	supplierRepo := suppliers.NewRepository(pool)
	supplierService := suppliers.NewService(supplierRepo)
	supplierHandler := suppliers.NewHandler(logger, supplierService)

	productRepo := products.NewRepository(pool)
	productService := products.NewService(productRepo)
	productHandler := products.NewHandler(logger, productService)

	ledgerRepo := ledger.NewRepository(pool)
	ledgerService := ledger.NewService(ledgerRepo)
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	reportsRepo := reports.NewRepository(pool)
	reportsCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportsService := reports.NewService(reportsRepo, reportsCache)
	reportsHandler := reports.NewHandler(logger, reportsService)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		SupplierHandler: supplierHandler,
		ProductHandler:  productHandler,
		LedgerHandler:   ledgerHandler,
		ReportsHandler:  reportsHandler,
		Pool:            pool,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
