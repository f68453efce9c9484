package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/users-service/internal/api/http"
	"github.com/spec-kit/users-service/internal/api/http/handlers"
	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/config"
	"github.com/spec-kit/users-service/internal/events"
	"github.com/spec-kit/users-service/internal/observability"
	"github.com/spec-kit/users-service/internal/persistence"
	"github.com/spec-kit/users-service/internal/repository"
	"github.com/spec-kit/users-service/internal/service"
	"github.com/spec-kit/users-service/internal/worker"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, persistence.Migrations(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.Pool
	masterRepo := repository.NewMasterRepository(pool)
	directorRepo := repository.NewDirectorRepository(pool)
	operatorRepo := repository.NewOperatorRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	principalRepo := repository.NewPrincipalRepository(pool)
	errorLogRepo := repository.NewErrorLogRepository(pool)

	tokens, err := auth.NewTokenCodec(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("invalid jwt secret", zap.Error(err))
	}
	existence := auth.NewExistenceCache(cfg.Cache.ExistenceTTL(), cfg.Cache.ExistenceMaxSize, metrics)
	authenticator := auth.NewAuthenticator(auth.AuthenticatorDeps{
		Tokens:  tokens,
		Cookies: auth.NewCookieExtractor(cfg.Cookie),
		Cache:   existence,
		Store:   principalRepo,
		Logger:  logger,
		Metrics: metrics,
	})
	authMiddleware := auth.NewAuthMiddleware(authenticator, cfg.Cookie.UseCookiesHeader, logger)

	dispatcher := events.NewInMemoryDispatcher()
	cacheSync := service.NewCacheSyncService(dispatcher, existence, redis.Handle(), cfg.Events, logger)
	stopRelay, err := worker.StartCacheSyncWorker(ctx, cacheSync, logger)
	if err != nil {
		logger.Fatal("failed to start cache invalidation relay", zap.Error(err))
	}
	defer stopRelay()

	masterService := service.NewMasterService(*cfg, masterRepo, dispatcher, logger)
	directorService := service.NewDirectorService(*cfg, directorRepo, dispatcher, logger)
	operatorService := service.NewOperatorService(*cfg, operatorRepo, dispatcher, logger)
	employeeService := service.NewEmployeeService(employeeRepo, masterService, directorRepo)
	profileService := service.NewProfileService(principalRepo)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return httptransport.ErrorResponse(c, apperrors.ToDomainError(err))
		},
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		ServiceName:      cfg.App.Name,
		Logger:           logger,
		Metrics:          metrics,
		Timeout:          cfg.App.RequestTimeout(),
		CORSOrigins:      cfg.CORS.Origins,
		CookieModeHeader: cfg.Cookie.UseCookiesHeader,
		ErrorLogs:        errorLogRepo,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Masters:        handlers.NewMastersHandler(masterService),
		Directors:      handlers.NewDirectorsHandler(directorService),
		Operators:      handlers.NewOperatorsHandler(operatorService),
		Employees:      handlers.NewEmployeesHandler(employeeService),
		Users:          handlers.NewUsersHandler(profileService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
	})

	go func() {
		logger.Info("users service listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
