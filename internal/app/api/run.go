package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	erpserver "github.com/Apurer/erpflow/go"
	"github.com/Apurer/erpflow/internal/app/bootstrap"
	seedingtemporal "github.com/Apurer/erpflow/internal/domains/seeding/adapters/temporal"
	seedingports "github.com/Apurer/erpflow/internal/domains/seeding/ports"
	userpostgres "github.com/Apurer/erpflow/internal/domains/users/adapters/persistence/postgres"
	userredis "github.com/Apurer/erpflow/internal/domains/users/adapters/redis"
	userports "github.com/Apurer/erpflow/internal/domains/users/ports"
	"github.com/Apurer/erpflow/internal/platform/migrations"
	platformobservability "github.com/Apurer/erpflow/internal/platform/observability"
	platformpostgres "github.com/Apurer/erpflow/internal/platform/postgres"
	platformredis "github.com/Apurer/erpflow/internal/platform/redis"
	"github.com/Apurer/erpflow/internal/platform/sqlite"
	platformtemporal "github.com/Apurer/erpflow/internal/platform/temporal"
)

const serviceName = "erpflow-api"

// Run boots the ERP HTTP API with observability, storage, sessions and workflows wired.
// It returns once ctx is cancelled and the server has drained.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB, err := OpenDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	sessions, closeSessions := buildSessionStore(ctx, cfg, logger)
	defer closeSessions()

	services, err := bootstrap.Build(db, bootstrap.Options{
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		Sessions:    sessions,
		Instruments: instruments,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("assemble services: %w", err)
	}

	var seeder seedingports.Service = services.Seeder
	temporalClient, err := platformtemporal.Dial(instruments, platformtemporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	})
	if err != nil {
		logger.Warn("Temporal workflows unavailable, seeding inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		seeder = seedingtemporal.Fallback{
			Durable: seedingtemporal.NewOrchestrator(temporalClient),
			Inline:  services.Seeder,
			OnError: func(ctx context.Context, err error) {
				logger.LogAttrs(ctx, slog.LevelWarn, "seed workflow failed to run, seeding inline", slog.String("error", err.Error()))
			},
		}
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	if purger, ok := services.Sessions.(*userpostgres.SessionStore); ok {
		scheduler, err := scheduleSessionPurge(ctx, purger, cfg.SessionPurgeIntervalMinute, logger)
		if err != nil {
			return err
		}
		if scheduler != nil {
			scheduler.Start()
			defer scheduler.Stop()
		}
	}

	handlers := erpserver.ApiHandleFunctions{
		AuthAPI:      erpserver.NewAuthAPI(services.Users),
		CustomerAPI:  erpserver.NewCustomerAPI(services.Customers),
		InvoiceAPI:   erpserver.NewInvoiceAPI(services.Invoices),
		LeadAPI:      erpserver.NewLeadAPI(services.Leads),
		ProductAPI:   erpserver.NewProductAPI(services.Products),
		AnalyticsAPI: erpserver.NewAnalyticsAPI(services.Analytics, logger),
		SeedAPI:      erpserver.NewSeedAPI(seeder),
	}
	routerOpts := []erpserver.RouterOption{erpserver.WithBasePath(cfg.BasePath)}
	if cfg.AuthRequired {
		routerOpts = append(routerOpts, erpserver.WithAuthentication(services.Users))
	}

	metrics := platformobservability.NewHTTPMetrics(instruments.Registry)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		cors.New(corsConfig(cfg.CORSAllowedOrigins)),
		otelgin.Middleware(serviceName),
		metrics.Middleware(),
		platformobservability.AccessLog(logger),
	)
	router.GET("/healthz", healthHandler(db))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	erpserver.NewRouterWithGinEngine(router, handlers, routerOpts...)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("ERP API listening", slog.String("addr", server.Addr), slog.String("basePath", cfg.BasePath))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("ERP API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down ERP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// OpenDatabase prefers PostgreSQL and falls back to SQLite when no DSN is set or the dial fails.
func OpenDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func(), error) {
	if cfg.PostgresDSN != "" {
		db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
		if err == nil {
			logger.Info("database configured with postgres")
			return db, closer(db), nil
		}
		logger.Warn("failed to connect to postgres, falling back to sqlite", slog.String("error", err.Error()))
	} else {
		logger.Warn("POSTGRES_DSN not set, falling back to sqlite", slog.String("path", cfg.SQLitePath))
	}
	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	return db, closer(db), nil
}

func closer(db *gorm.DB) func() {
	return func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// buildSessionStore returns the Redis store when REDIS_URL is reachable. A nil store selects the database one.
func buildSessionStore(ctx context.Context, cfg Config, logger *slog.Logger) (userports.SessionStore, func()) {
	if cfg.RedisURL == "" {
		return nil, func() {}
	}
	client, err := platformredis.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, storing sessions in the database", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("sessions stored in redis")
	return userredis.NewSessionStore(client), func() { _ = client.Close() }
}

func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
