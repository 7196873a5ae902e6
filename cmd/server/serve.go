package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventreg/config"
	"eventreg/internal/database"
	"eventreg/internal/logger"
	"eventreg/internal/mailer"
	"eventreg/internal/middleware"
	"eventreg/internal/notify"
	"eventreg/internal/rabbit"
	"eventreg/internal/repository"
	"eventreg/internal/router"
	"eventreg/internal/service"
	"eventreg/pkg/payment"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := openDatabase(cfg, &log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := notify.NewPool(
		mailer.New(cfg.Mail, &log),
		repository.NewNotificationRepository(db),
		cfg.Notify.Workers, cfg.Notify.QueueSize, &log,
	)
	pool.Start()

	var dispatcher notify.Dispatcher = pool
	if cfg.Notify.Transport == "amqp" {
		client, err := rabbit.NewRabbit(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue, cfg.Notify.Workers, &log)
		if err != nil {
			return fmt.Errorf("rabbitmq: %w", err)
		}
		defer client.Close()
		if err := notify.NewConsumer(client, pool, &log).Start(ctx); err != nil {
			return fmt.Errorf("rabbitmq consume: %w", err)
		}
		dispatcher = notify.NewPublisher(client, &log)
	}
	notifier := service.NewNotificationService(dispatcher, cfg.Registration.EventName, cfg.Registration.FrontendURL, &log)

	limiter := middleware.NewInMemoryRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer limiter.Stop()

	engine := router.Setup(cfg, db, router.Deps{
		Gateway:  newGateway(cfg, &log),
		Notifier: notifier,
		Limiter:  limiter,
		Log:      &log,
	})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	cancel()
	if err := pool.Stop(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("notification pool did not drain")
	}
	log.Info().Msg("server stopped")
	return nil
}

func openDatabase(cfg *config.Config, log *zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := database.SeedSettings(db, database.DefaultSettings(cfg)); err != nil {
		return nil, fmt.Errorf("seed settings: %w", err)
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("database ready")
	return db, nil
}

// newGateway uses Paystack when a secret key is configured and the local stub otherwise.
func newGateway(cfg *config.Config, log *zerolog.Logger) payment.Provider {
	if cfg.Paystack.SecretKey == "" {
		log.Warn().Msg("PAYSTACK_SECRET_KEY not set; using stub checkout and rejecting all webhooks")
		return &payment.StubProvider{CheckoutURL: cfg.Registration.FrontendURL + "/stub-checkout"}
	}
	return payment.NewPaystack(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey, cfg.Paystack.Timeout, cfg.Paystack.Retries)
}
