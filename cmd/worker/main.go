package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/erpflow/internal/app/api"
	"github.com/Apurer/erpflow/internal/app/bootstrap"
	seedactivities "github.com/Apurer/erpflow/internal/durable/temporal/activities/seeding"
	seedworkflows "github.com/Apurer/erpflow/internal/durable/temporal/workflows/seeding"
	"github.com/Apurer/erpflow/internal/platform/migrations"
	platformobservability "github.com/Apurer/erpflow/internal/platform/observability"
	platformtemporal "github.com/Apurer/erpflow/internal/platform/temporal"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	const serviceName = "erpflow-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	db, closeDB, err := api.OpenDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeDB()
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to migrate schema", slog.String("error", err.Error()))
		os.Exit(1)
	}
	services, err := bootstrap.Build(db, bootstrap.Options{
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		Instruments: instruments,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("failed to assemble services", slog.String("error", err.Error()))
		os.Exit(1)
	}
	seedActivities := seedactivities.NewActivities(services.Seeder)

	temporalClient, err := platformtemporal.Dial(instruments, platformtemporal.Options{
		Address:    cfg.TemporalAddress,
		Namespace:  cfg.TemporalNamespace,
		TracerName: "temporal-worker",
	})
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, seedworkflows.SeedTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(seedworkflows.SeedWorkflow, workflow.RegisterOptions{Name: seedworkflows.SeedWorkflowName})
	w.RegisterActivityWithOptions(seedActivities.SeedDatabase, activity.RegisterOptions{Name: seedactivities.SeedDatabaseActivityName})

	logger.Info("worker listening", slog.String("taskQueue", seedworkflows.SeedTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
