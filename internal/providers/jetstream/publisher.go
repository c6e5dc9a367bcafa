package jetstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-orderbook-cache/internal/adapter"
	"github.com/feral-file/ff-orderbook-cache/internal/domain"
	"github.com/feral-file/ff-orderbook-cache/internal/logger"
	"github.com/feral-file/ff-orderbook-cache/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc   adapter.NatsConn
	js   adapter.JetStream
	json adapter.JSON
}

// NewPublisher connects to NATS, makes sure the order updates stream exists and returns a publisher
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	nc, js, err := natsJS.Connect(cfg.URL, ConnectOptions(cfg.ConnectionName, cfg.MaxReconnects, cfg.ReconnectWait)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if err := js.CreateOrUpdateStream(ctx, messaging.OrderUpdatesStreamConfig(cfg.StreamName)); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create/update stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:   nc,
		js:   js,
		json: jsonAdapter,
	}, nil
}

// ConnectOptions returns the NATS connection options shared by publishers and consumers
func ConnectOptions(name string, maxReconnects int, reconnectWait time.Duration) []nats.Option {
	return []nats.Option{
		nats.Name(name),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}
}

// PublishOrderUpdates publishes every valid request with its job id as the JetStream message id,
// so the broker drops repeats inside its duplicate window
func (p *publisher) PublishOrderUpdates(ctx context.Context, orderInfos []domain.OrderInfo) error {
	var errs []error
	for _, info := range orderInfos {
		info.ID = domain.NormalizeOrderID(info.ID)
		if err := info.Validate(); err != nil {
			logger.DebugCtx(ctx, "Skipping order update", append(logger.OrderInfoFields(info), zap.Error(err))...)
			continue
		}

		data, err := p.json.Marshal(info)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to marshal order info %s: %w", info.JobID(), err))
			continue
		}

		subject := messaging.OrderUpdateSubject(info)
		if _, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(info.JobID())); err != nil {
			errs = append(errs, fmt.Errorf("failed to publish order info %s: %w", info.JobID(), err))
			continue
		}

		logger.DebugCtx(ctx, "Published order update", append(logger.OrderInfoFields(info), zap.String("subject", subject))...)
	}

	return errors.Join(errs...)
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
