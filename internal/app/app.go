package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Nithya-42/Stagelink/internal/auth"
	"github.com/Nithya-42/Stagelink/internal/config"
	"github.com/Nithya-42/Stagelink/internal/mailer"
	"github.com/Nithya-42/Stagelink/internal/postgres"
	"github.com/Nithya-42/Stagelink/internal/redis"
	postgresrepo "github.com/Nithya-42/Stagelink/internal/repository/postgres"
	redisrepo "github.com/Nithya-42/Stagelink/internal/repository/redis"
	"github.com/Nithya-42/Stagelink/internal/service"
	"github.com/Nithya-42/Stagelink/internal/service/catalog"
	httpgin "github.com/Nithya-42/Stagelink/internal/transport/http/gin"
)

// completionSweepInterval is how often PENDING/ACCEPTED bookings whose
// event date has passed are promoted to COMPLETED.
const completionSweepInterval = time.Hour

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	services   *service.Services
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	if err := postgres.RunMigrations(context.Background(), pgxPool, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	rdb, err := redis.New(context.Background(), redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redis.NewNotificationsPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "rl", cfg.RateLimit.BookingLimit, cfg.RateLimit.BookingWindow)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)

	m := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, logger)

	authn := auth.New(store, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services
	services := service.NewServices(store, cache, pubsub, limiter, m, service.Config{
		Catalog: catalog.Config{},
	})

	// Initialize Gin router
	router := httpgin.NewRouter(services, authn, idempotencyStore, logger)

	return &App{
		cfg:      cfg,
		logger:   logger,
		services: services,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Promote elapsed bookings to COMPLETED in the background
	g.Go(func() error {
		ticker := time.NewTicker(completionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				n, err := a.services.Booking.CompleteElapsed(gCtx)
				if err != nil {
					a.logger.Error("completion sweep failed", "error", err)
					continue
				}
				if n > 0 {
					a.logger.Info("completed elapsed bookings", "count", n)
				}
			}
		}
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
