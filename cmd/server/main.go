package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/adapters/event"
	httpAdapter "github.com/khoahotran/resume-builder/adapters/http"
	"github.com/khoahotran/resume-builder/adapters/llm"
	"github.com/khoahotran/resume-builder/adapters/media_storage"
	"github.com/khoahotran/resume-builder/adapters/persistence"
	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/application/session"
	"github.com/khoahotran/resume-builder/internal/application/usecase/assist"
	catalogUC "github.com/khoahotran/resume-builder/internal/application/usecase/catalog"
	portfolioUC "github.com/khoahotran/resume-builder/internal/application/usecase/portfolio"
	profileUC "github.com/khoahotran/resume-builder/internal/application/usecase/profile"
	"github.com/khoahotran/resume-builder/internal/config"
	"github.com/khoahotran/resume-builder/pkg/logger"
	"github.com/khoahotran/resume-builder/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start Resume Builder API Server...", zap.String("env", cfg.App.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(cfg, appLogger, "resume-builder-api")
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

	// Optional infrastructure
	var cache service.PortfolioCache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
		cache = persistence.NewRedisPortfolioCache(redisClient, cfg.Redis.TTL)
	}

	var publisher service.EventPublisher = event.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	var uploader service.Uploader
	if cfg.Cloudinary.CloudName != "" {
		uploader, err = media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize uploader", err)
		}
	} else {
		appLogger.Warn("Cloudinary not configured, profile images are stored inline")
	}

	llmService := llm.NewGroqLLMAdapter(cfg, appLogger)

	// Use Cases
	getProfileUseCase := profileUC.NewGetProfileUseCase(store.Profiles, appLogger)
	saveProfileUseCase := profileUC.NewSaveProfileUseCase(store.Profiles, uploader, publisher, cache, cfg.Cloudinary.Folder, appLogger)
	listTemplatesUseCase := catalogUC.NewListTemplatesUseCase(store.Templates)
	generateUseCase := assist.NewGenerateUseCase(llmService, appLogger)
	getPortfolioUseCase := portfolioUC.NewGetPortfolioUseCase(store.Profiles, cache, appLogger)

	// HTTP Handlers
	profileService := session.ProfileService{GetProfile: getProfileUseCase, SaveProfile: saveProfileUseCase}
	sessionDeps := session.Deps{
		Loader:    profileService,
		Saver:     profileService,
		Assistant: session.AssistService{GenerateText: generateUseCase},
		Logger:    appLogger,
	}
	handlers := httpAdapter.Handlers{
		Profile:   httpAdapter.NewProfileHandler(getProfileUseCase, saveProfileUseCase, appLogger),
		Template:  httpAdapter.NewTemplateHandler(listTemplatesUseCase),
		Generate:  httpAdapter.NewGenerateHandler(generateUseCase),
		Portfolio: httpAdapter.NewPortfolioHandler(getPortfolioUseCase, appLogger),
		Builder:   httpAdapter.NewBuilderHandler(sessionDeps, cfg.Builder.SaveDelay, cfg.CORS.AllowedOrigins, appLogger),
		Health:    httpAdapter.NewHealthHandler(store.Health, store.Driver),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(handlers, httpAdapter.RouterConfig{
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		GeneratePerMinute: cfg.RateLimit.GeneratePerMinute,
	}, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
