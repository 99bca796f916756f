package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	"github.com/SscSPs/commission_app/internal/core/services"
	"github.com/SscSPs/commission_app/internal/handlers"
	"github.com/SscSPs/commission_app/internal/jobs"
	"github.com/SscSPs/commission_app/internal/metrics"
	"github.com/SscSPs/commission_app/internal/middleware"
	"github.com/SscSPs/commission_app/internal/notify"
	"github.com/SscSPs/commission_app/internal/platform/config"
	"github.com/SscSPs/commission_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/commission_app/internal/repositories/memory"
	"github.com/SscSPs/commission_app/pkg/database"
	"github.com/SscSPs/commission_app/pkg/tracing"
	"github.com/bsm/redislock"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const serviceName = "commission-backend"

// @title Commission Backend API
// @version 1.0
// @description Lifecycle engine for warehouse commissions: picking, stock deduction, returns, labels and audits.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := "development"
	if cfg.IsProduction {
		env = "production"
	}
	tracer, err := tracing.Initialize(ctx, tracing.Config{
		ServiceName:  serviceName,
		Environment:  env,
		OTLPEndpoint: cfg.OTLPEndpoint,
		Enabled:      cfg.TracingEnabled,
	})
	if err != nil {
		logger.Error("Failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	m := metrics.New("commission")

	// --- Change feed ---
	broker := notify.NewBroker()
	targets := []notify.Named{{Name: "sse", Notifier: broker}}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := notify.NewKafkaPublisher(notify.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Error("Error closing kafka writer", slog.String("error", err.Error()))
			}
		}()
		targets = append(targets, notify.Named{Name: "kafka", Notifier: kafkaPublisher})
		logger.Info("Publishing changes to kafka", slog.String("topic", cfg.KafkaTopic))
	}

	var locker jobs.Locker
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("Invalid REDIS_URL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error("Error closing redis client", slog.String("error", err.Error()))
			}
		}()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis not reachable at startup", slog.String("error", err.Error()))
		}
		instanceID := uuid.NewString()
		targets = append(targets, notify.Named{Name: "redis", Notifier: notify.NewRedisPublisher(rdb, cfg.RedisChannel, instanceID)})
		relay := notify.NewRedisSubscriber(rdb, cfg.RedisChannel, instanceID, broker, logger)
		if err := relay.Start(ctx); err != nil {
			logger.Warn("Redis change relay not started, SSE clients only see local changes", slog.String("error", err.Error()))
		} else {
			defer relay.Stop()
		}
		locker = redislock.New(rdb)
	}
	notifier := notify.NewMulti(m, targets...)

	svc := services.NewServiceContainer(cfg, repos, broker,
		services.WithNotifier(notifier),
		services.WithMetrics(m),
	)

	purger := jobs.NewTrashPurger(svc.Trash, cfg.PurgeInterval, locker, logger)
	purger.Start(ctx)
	defer purger.Stop()

	// --- HTTP ---
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Global middleware (logging, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RateLimit(limiter),
		middleware.Metrics(m),
	)

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svc, m.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	// SSE streams end with their request contexts
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Tracer shutdown failed", slog.String("error", err.Error()))
	}
}

// openStore connects the configured storage backend. The returned func
// releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == "memory" {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
