package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-orderbook-cache/internal/adapter"
	"github.com/feral-file/ff-orderbook-cache/internal/config"
	"github.com/feral-file/ff-orderbook-cache/internal/lock"
	"github.com/feral-file/ff-orderbook-cache/internal/logger"
	"github.com/feral-file/ff-orderbook-cache/internal/orderupdates"
	"github.com/feral-file/ff-orderbook-cache/internal/queue"
	"github.com/feral-file/ff-orderbook-cache/internal/store"
	"github.com/feral-file/ff-orderbook-cache/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerOrdersConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Environment:     cfg.Environment,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "worker-orders",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Worker Orders")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store and clock
	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()

	// Initialize the order updates worker
	handler := orderupdates.NewHandler(orderupdates.Config{
		TokenBatchSize: cfg.Worker.TokenBatchSize,
	}, dataStore)
	worker := queue.NewWorker(queue.WorkerConfig{
		Concurrency:  cfg.Worker.Concurrency,
		PollInterval: cfg.Worker.PollInterval,
		LockDuration: cfg.Worker.LockDuration,
	}, dataStore, handler, clock)
	logger.InfoCtx(ctx, "Initialized order updates worker",
		zap.String("worker_id", worker.ID()),
		zap.Int("concurrency", cfg.Worker.Concurrency),
		zap.Duration("lock_duration", cfg.Worker.LockDuration),
	)

	// Initialize the embedded queue cleanup sweeper
	var cleanupSweeper sweeper.Sweeper
	if cfg.Cleanup.Enabled {
		redisClient := adapter.NewRedisClient(adapter.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error(err, zap.String("component", "redis"))
			}
		}()
		if err := redisClient.Ping(ctx); err != nil {
			logger.FatalCtx(ctx, "Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}

		cleanupSweeper = sweeper.NewQueueCleanupSweeper(sweeper.QueueCleanupSweeperConfig{
			Interval:  cfg.Cleanup.Interval,
			LockTTL:   cfg.Cleanup.LockTTL,
			Retention: cfg.Cleanup.Retention,
			Keep:      cfg.Cleanup.Keep,
		}, dataStore, lock.NewRedisLocker(redisClient), clock)
		logger.InfoCtx(ctx, "Initialized queue cleanup sweeper",
			zap.Duration("interval", cfg.Cleanup.Interval),
			zap.Duration("retention", cfg.Cleanup.Retention),
			zap.Int("keep", cfg.Cleanup.Keep),
		)
	}

	// Start the worker and the sweeper in goroutines
	errChan := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := worker.Start(ctx); err != nil {
			errChan <- err
		}
	}()
	if cleanupSweeper != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := cleanupSweeper.Start(ctx); err != nil {
				errChan <- err
			}
		}()
	}

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop claiming new jobs
	cancel()

	// Let in-flight jobs finish within the grace period
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Worker.ShutdownGrace)
	defer shutdownCancel()

	if err := worker.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "worker"))
	}
	if cleanupSweeper != nil {
		if err := cleanupSweeper.Stop(shutdownCtx); err != nil {
			logger.ErrorCtx(shutdownCtx, err, zap.String("component", cleanupSweeper.Name()))
		}
	}
	wg.Wait()

	logger.InfoCtx(shutdownCtx, "Worker Orders stopped")
}
