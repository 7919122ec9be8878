package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/adapters/event"
	"github.com/khoahotran/resume-builder/adapters/persistence"
	workerUC "github.com/khoahotran/resume-builder/internal/application/usecase/portfolio"
	"github.com/khoahotran/resume-builder/internal/config"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
	"github.com/khoahotran/resume-builder/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Portfolio Worker...", zap.String("env", cfg.App.Env))

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("worker needs Kafka", apperror.NewConfiguration("KAFKA_BROKERS is not set"))
	}
	if cfg.Redis.Addr == "" {
		appLogger.Fatal("worker needs Redis", apperror.NewConfiguration("REDIS_ADDR is not set"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(cfg, appLogger, "resume-builder-worker")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Store
	store, err := persistence.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot open store", err, zap.String("driver", cfg.DB.Driver))
	}
	defer store.Close()

	// Cache
	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()
	cache := persistence.NewRedisPortfolioCache(redisClient, cfg.Redis.TTL)

	// Worker Use Case
	processProfileEventUC := workerUC.NewProcessProfileEventUseCase(store.Profiles, cache, appLogger)

	// Kafka Consumer
	consumer := event.NewProfileEventConsumer(cfg, appLogger)
	defer consumer.Close()

	if err := consumer.Run(ctx, processProfileEventUC.Execute); err != nil {
		appLogger.Error("Worker stopped with error", err)
		return
	}
	appLogger.Info("Worker stopped")
}
