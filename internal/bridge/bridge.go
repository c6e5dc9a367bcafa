package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-orderbook-cache/internal/adapter"
	"github.com/feral-file/ff-orderbook-cache/internal/domain"
	"github.com/feral-file/ff-orderbook-cache/internal/logger"
	"github.com/feral-file/ff-orderbook-cache/internal/messaging"
	natsjs "github.com/feral-file/ff-orderbook-cache/internal/providers/jetstream"
	"github.com/feral-file/ff-orderbook-cache/internal/queue"
)

// Config holds the configuration for the event bridge
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
}

// Bridge moves order update requests from NATS JetStream into the order updates queue
type Bridge interface {
	// Run consumes messages until the context is canceled
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	queue  queue.Queue
	json   adapter.JSON
	config Config
}

// NewBridge connects to NATS and creates a new event bridge
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	q queue.Queue,
	jsonAdapter adapter.JSON,
) (Bridge, error) {
	nc, js, err := natsJS.Connect(cfg.URL, natsjs.ConnectOptions(cfg.ConnectionName, cfg.MaxReconnects, cfg.ReconnectWait)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &bridge{
		nc:     nc,
		js:     js,
		queue:  q,
		json:   jsonAdapter,
		config: cfg,
	}, nil
}

// Run starts the event bridge
func (b *bridge) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting event bridge",
		zap.String("stream", b.config.StreamName),
		zap.String("consumer", b.config.ConsumerName),
	)

	if err := b.js.CreateOrUpdateStream(ctx, messaging.OrderUpdatesStreamConfig(b.config.StreamName)); err != nil {
		return fmt.Errorf("failed to create/update stream: %w", err)
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: messaging.ORDER_UPDATES_SUBJECTS,
	})
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.InfoCtx(ctx, "Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.InfoCtx(ctx, "Started consuming order updates")

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Shutting down event bridge")
			return ctx.Err()
		case msg := <-msgChan:
			b.handleMessage(ctx, msg)
		}
	}
}

// handleMessage enqueues a single order update request.
// Undecodable messages are terminated, enqueue failures are redelivered.
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	var numDelivered uint64
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		numDelivered = metadata.NumDelivered
	}

	var orderInfo domain.OrderInfo
	if err := b.json.Unmarshal(msg.Data(), &orderInfo); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to unmarshal order info: %w", err), zap.String("subject", msg.Subject()))
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to terminate message: %w", err))
		}
		return
	}

	fields := append(logger.OrderInfoFields(orderInfo), zap.Uint64("delivery_count", numDelivered))
	logger.DebugCtx(ctx, "Received order update", fields...)

	if err := b.queue.Enqueue(ctx, []domain.OrderInfo{orderInfo}); err != nil {
		logger.ErrorCtx(ctx, err, fields...)
		if err := msg.Nak(); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to NAK message: %w", err))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to ACK message: %w", err))
	}
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	b.nc.Close()
}
