package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-orderbook-cache/internal/adapter"
	"github.com/feral-file/ff-orderbook-cache/internal/config"
	"github.com/feral-file/ff-orderbook-cache/internal/domain"
	"github.com/feral-file/ff-orderbook-cache/internal/logger"
	natsjs "github.com/feral-file/ff-orderbook-cache/internal/providers/jetstream"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	inputFile  = flag.String("input", "-", "Path to a JSON array of order update requests, - reads stdin")
	timeout    = flag.Duration("timeout", 30*time.Second, "Publish timeout")
)

// publish-order-updates pushes order update requests onto the order updates stream.
// Used to backfill the best order cache or to replay requests by hand.
func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadPublisherConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	err = logger.Initialize(logger.Config{
		Debug: cfg.Debug,
		Tags: map[string]string{
			"service": "publish-order-updates",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	jsonAdapter := adapter.NewJSON()
	orderInfos, err := readOrderInfos(*inputFile, jsonAdapter)
	if err != nil {
		logger.Fatal("Failed to read order update requests", zap.Error(err), zap.String("input", *inputFile))
	}
	if len(orderInfos) == 0 {
		logger.Info("No order update requests to publish")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	publisher, err := natsjs.NewPublisher(ctx, natsjs.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.Fatal("Failed to create publisher", zap.Error(err))
	}
	defer publisher.Close()

	if err := publisher.PublishOrderUpdates(ctx, orderInfos); err != nil {
		logger.Error(err, zap.Int("count", len(orderInfos)))
		return
	}

	logger.Info("Published order update requests", zap.Int("count", len(orderInfos)))
}

func readOrderInfos(path string, jsonAdapter adapter.JSON) ([]domain.OrderInfo, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path) //nolint:gosec,G304 // path is given by the operator
		if err != nil {
			return nil, err
		}
		defer f.Close() //nolint:errcheck
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var orderInfos []domain.OrderInfo
	if err := jsonAdapter.Unmarshal(data, &orderInfos); err != nil {
		return nil, fmt.Errorf("failed to decode order update requests: %w", err)
	}
	return orderInfos, nil
}
