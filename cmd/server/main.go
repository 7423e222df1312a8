package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/adapters/event"
	githubAdapter "github.com/khoahotran/devconnect/adapters/github"
	httpAdapter "github.com/khoahotran/devconnect/adapters/http"
	"github.com/khoahotran/devconnect/adapters/persistence"
	"github.com/khoahotran/devconnect/internal/application/service"
	githubUC "github.com/khoahotran/devconnect/internal/application/usecase/github"
	profileUC "github.com/khoahotran/devconnect/internal/application/usecase/profile"
	"github.com/khoahotran/devconnect/internal/config"
	"github.com/khoahotran/devconnect/pkg/auth"
	"github.com/khoahotran/devconnect/pkg/logger"
	"github.com/khoahotran/devconnect/pkg/tracing"
)

const serviceName = "devconnect-api"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	appLogger.Info("Start DevConnect API Server...", zap.String("store", cfg.Store.Driver))

	if cfg.Auth.JWTSecret == "" {
		appLogger.Fatal("JWT_SECRET is required", nil)
	}

	shutdownTracing, err := tracing.Init(cfg, appLogger, serviceName)
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			appLogger.Error("Failed to flush traces", err)
		}
	}()

	// Initialize dependencies
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := persistence.OpenStore(connectCtx, cfg, appLogger)
	cancelConnect()
	if err != nil {
		appLogger.Fatal("cannot open store", err)
	}
	defer store.Close()

	var publisher service.EventPublisher = event.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Warn("KAFKA_BROKERS not set, profile events are dropped")
	}

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	repoHost := githubAdapter.NewGithubAdapter(githubAdapter.ConfigFrom(cfg), appLogger)

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(store.Profiles, store.Users, publisher, appLogger)
	repoUseCase := githubUC.NewRepositoryUseCase(repoHost, appLogger)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Profile: httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		Github:  httpAdapter.NewGithubHandler(repoUseCase, appLogger),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		httpAdapter.RecoveryMiddleware(appLogger),
		httpAdapter.RequestLogger(appLogger),
		httpAdapter.ErrorMiddleware(appLogger),
	)
	httpAdapter.RegisterRoutes(router, handlers, httpAdapter.AuthMiddleware(jwtSvc, appLogger))

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
