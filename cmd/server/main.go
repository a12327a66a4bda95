package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/goalpilot/backend/api/handler"
	"github.com/goalpilot/backend/internal/ai"
	"github.com/goalpilot/backend/internal/config"
	"github.com/goalpilot/backend/internal/infrastructure/buffer"
	"github.com/goalpilot/backend/internal/infrastructure/monitor"
	pgInfra "github.com/goalpilot/backend/internal/infrastructure/postgres"
	redisInfra "github.com/goalpilot/backend/internal/infrastructure/redis"
	"github.com/goalpilot/backend/internal/middleware"
	"github.com/goalpilot/backend/internal/router"
	"github.com/goalpilot/backend/internal/services"
	"github.com/goalpilot/backend/internal/services/lifecycle"
	"github.com/goalpilot/backend/pkg/httpcontext"
	"github.com/goalpilot/backend/pkg/logger"
	"github.com/goalpilot/backend/repository/postgres"
	redisRepo "github.com/goalpilot/backend/repository/redis"
	authUC "github.com/goalpilot/backend/usecase/auth"
	goalUC "github.com/goalpilot/backend/usecase/goal"
	insightsUC "github.com/goalpilot/backend/usecase/insights"
	profileUC "github.com/goalpilot/backend/usecase/profile"
	taskUC "github.com/goalpilot/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	goalRepo := postgres.NewGoalRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, 24*time.Hour)

	keyPool, err := ai.NewPool(cfg.AI.APIKeys)
	if err != nil {
		zapLogger.Fatal("no AI credentials configured", zap.Error(err))
	}
	gateway := ai.NewGateway(keyPool, ai.NewGeminiFactory(cfg.AI.Model), cfg.AI.CallTimeout, zapLogger)
	generator := ai.NewGenerator(gateway, zapLogger)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		goalRepo,
		taskRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	authUseCase := authUC.New(userRepo, sessionRepo, zapLogger)
	goalUseCase := goalUC.New(goalRepo, taskRepo, generator, zapLogger)
	taskUseCase := taskUC.New(goalRepo, taskRepo, generator, bufferBridge, zapLogger)
	insightsUseCase := insightsUC.New(goalRepo, taskRepo, generator, zapLogger)
	profileUseCase := profileUC.New(userRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger),
		Goal:     apiHandler.NewGoalHandler(goalUseCase, ctxAdapter, zapLogger),
		Task:     apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Insights: apiHandler.NewInsightsHandler(insightsUseCase, ctxAdapter, zapLogger),
		Profile:  apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
