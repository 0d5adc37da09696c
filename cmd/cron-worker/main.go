package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pmrathi94/VivahSetu/internal/audit"
	"github.com/pmrathi94/VivahSetu/internal/cron"
	"github.com/pmrathi94/VivahSetu/internal/functions"
	"github.com/pmrathi94/VivahSetu/internal/notifications"
	"github.com/pmrathi94/VivahSetu/internal/weddings"
	"github.com/pmrathi94/VivahSetu/pkg/config"
	"github.com/pmrathi94/VivahSetu/pkg/db"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
	"github.com/pmrathi94/VivahSetu/pkg/metrics"
	"github.com/pmrathi94/VivahSetu/pkg/migrate"
	"github.com/pmrathi94/VivahSetu/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron-worker"), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	archivalJob, err := cron.NewWeddingArchivalJob(cron.WeddingArchivalJobParams{
		Logger:     logg,
		Repository: weddings.NewRepository(dbClient.DB()),
		GraceDays:  cfg.Cron.PostWeddingRetentionDays,
	})
	exitOn(logg, "wedding archival job", err)

	notificationJob, err := cron.NewNotificationCleanupJob(cron.NotificationCleanupJobParams{
		Logger:     logg,
		Repository: notifications.NewRepository(dbClient.DB()),
		Retention:  cfg.Cron.NotificationRetention,
	})
	exitOn(logg, "notification cleanup job", err)

	auditJob, err := cron.NewAuditCleanupJob(cron.AuditCleanupJobParams{
		Logger:     logg,
		Repository: audit.NewRepository(dbClient.DB()),
		Retention:  cfg.Cron.AuditLogRetention,
	})
	exitOn(logg, "audit cleanup job", err)

	overdueJob, err := cron.NewFunctionOverdueJob(cron.FunctionOverdueJobParams{
		Logger:     logg,
		Repository: functions.NewRepository(dbClient.DB()),
	})
	exitOn(logg, "function overdue job", err)

	registry := cron.NewRegistry(archivalJob, notificationJob, auditJob, overdueJob)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	exitOn(logg, "cron service", err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func exitOn(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
