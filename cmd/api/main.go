package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/reservation-service/internal/api/http"
	"github.com/spec-kit/reservation-service/internal/api/http/handlers"
	"github.com/spec-kit/reservation-service/internal/auth"
	"github.com/spec-kit/reservation-service/internal/config"
	"github.com/spec-kit/reservation-service/internal/events"
	"github.com/spec-kit/reservation-service/internal/observability"
	"github.com/spec-kit/reservation-service/internal/persistence"
	"github.com/spec-kit/reservation-service/internal/repository"
	"github.com/spec-kit/reservation-service/internal/service"
	"github.com/spec-kit/reservation-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	facilityRepo := repository.NewFacilityRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	revoker := auth.NewTokenRevoker(redis.ClientHandle())
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
		Revoker:           revoker,
	})
	uploadService := service.NewUploadService(cfg.Upload)
	userService := service.NewUserService(userRepo, uploadService, logger)
	facilityService := service.NewFacilityService(facilityRepo)
	reservationService := service.NewReservationService(service.ReservationDependencies{
		ReservationRepo: reservationRepo,
		FacilityRepo:    facilityRepo,
		Dispatcher:      dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, revoker)
	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Upload.MaxSizeBytes) + 1024*1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Facilities:     handlers.NewFacilitiesHandler(facilityService),
		Reservations:   handlers.NewReservationsHandler(reservationService),
		Files:          handlers.NewFilesHandler(uploadService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
