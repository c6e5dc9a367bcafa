package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-orderbook-cache/internal/adapter"
	"github.com/feral-file/ff-orderbook-cache/internal/bridge"
	"github.com/feral-file/ff-orderbook-cache/internal/config"
	"github.com/feral-file/ff-orderbook-cache/internal/logger"
	"github.com/feral-file/ff-orderbook-cache/internal/queue"
	"github.com/feral-file/ff-orderbook-cache/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadEventBridgeConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Environment:     cfg.Environment,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "event-bridge",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.Info("Starting Event Bridge")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Initialize the order updates queue with the retry policy stamped on new jobs
	policy := queue.RetryPolicy{
		Attempts:    cfg.Queue.Retry.Attempts,
		BackoffType: queue.BackoffType(cfg.Queue.Retry.BackoffType),
		Delay:       cfg.Queue.Retry.BackoffDelay,
	}
	if err := policy.Validate(); err != nil {
		logger.Fatal("Invalid retry policy", zap.Error(err))
	}
	orderUpdatesQueue := queue.NewQueue(store.NewPGStore(db), adapter.NewClock(), policy)

	// Create bridge
	eventBridge, err := bridge.NewBridge(
		bridge.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			ConsumerName:   cfg.NATS.ConsumerName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			AckWaitTimeout: cfg.NATS.AckWait,
			MaxDeliver:     cfg.NATS.MaxDeliver,
		},
		adapter.NewNatsJetStream(),
		orderUpdatesQueue,
		adapter.NewJSON(),
	)
	if err != nil {
		logger.Fatal("Failed to create event bridge", zap.Error(err))
	}
	defer eventBridge.Close()
	logger.Info("Event bridge created", zap.String("stream", cfg.NATS.StreamName), zap.String("consumer", cfg.NATS.ConsumerName))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel for bridge errors
	errCh := make(chan error, 1)
	doneCh := make(chan struct{})

	// Start the bridge
	go func() {
		defer close(doneCh)
		if err := eventBridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error(err, zap.String("component", "bridge"))
	}
	cancel()

	// Give the consumer time to drain
	select {
	case <-doneCh:
	case <-time.After(5 * time.Second):
		logger.Warn("Event bridge did not stop in time")
	}

	logger.Info("Event Bridge stopped")
}
