package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/app"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/platform/db"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	reconcileJob := jobs.NewReconcileJob(pool, logger)

	reconcileTask, err := jobs.NewReconcileTask(time.Now().UTC())
	if err != nil {
		logger.Error("build reconcile task", slog.Any("error", err))
		os.Exit(1)
	}

	worker := jobs.NewWorker(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, logger)
	worker.Handle(jobs.TaskLedgerReconcile, reconcileJob.Handle)
	if err := worker.Schedule(cfg.ReconcileCron, reconcileTask); err != nil {
		logger.Error("register reconcile schedule", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started", slog.String("cron", cfg.ReconcileCron))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
