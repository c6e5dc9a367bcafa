package adapter

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NatsConn defines the NATS connection operations used by publishers and consumers
//
//go:generate mockgen -source=nats.go -destination=../mocks/nats.go -package=mocks -mock_names=NatsConn=MockNatsConn,JetStream=MockJetStream,Consumer=MockConsumer,ConsumeContext=MockConsumeContext,Message=MockMessage,NatsJetStream=MockNatsJetStream
type NatsConn interface {
	Close()
	Drain() error
	ConnectedUrl() string
}

// JetStream defines the JetStream operations used by publishers and consumers
type JetStream interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
	CreateOrUpdateStream(ctx context.Context, cfg jetstream.StreamConfig) error
	CreateOrUpdateConsumer(ctx context.Context, stream string, cfg jetstream.ConsumerConfig) (Consumer, error)
}

// MessageHandler is called for every message delivered to a consumer
type MessageHandler func(msg Message)

// Consumer defines a JetStream pull consumer
type Consumer interface {
	Consume(handler MessageHandler, opts ...jetstream.PullConsumeOpt) (ConsumeContext, error)
	Info(ctx context.Context) (*jetstream.ConsumerInfo, error)
}

// ConsumeContext controls a running consume loop
type ConsumeContext interface {
	Stop()
	Drain()
	Closed() <-chan struct{}
}

// Message defines the JetStream message operations used by consumers
type Message interface {
	Subject() string
	Data() []byte
	Metadata() (*jetstream.MsgMetadata, error)
	Ack() error
	Nak() error
	Term() error
}

// NatsJetStream creates NATS connections with a JetStream context
type NatsJetStream interface {
	Connect(url string, options ...nats.Option) (NatsConn, JetStream, error)
}

type natsJetStream struct{}

// NewNatsJetStream returns a NatsJetStream backed by the nats client
func NewNatsJetStream() NatsJetStream {
	return natsJetStream{}
}

func (natsJetStream) Connect(url string, options ...nats.Option) (NatsConn, JetStream, error) {
	nc, err := nats.Connect(url, options...)
	if err != nil {
		return nil, nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}

	return nc, &jetStream{js: js}, nil
}

// jetStream narrows jetstream.JetStream to the JetStream interface, wrapping consumers
// so they hand out Message instead of jetstream.Msg
type jetStream struct {
	js jetstream.JetStream
}

func (a *jetStream) Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	return a.js.Publish(ctx, subject, data, opts...)
}

func (a *jetStream) CreateOrUpdateStream(ctx context.Context, cfg jetstream.StreamConfig) error {
	_, err := a.js.CreateOrUpdateStream(ctx, cfg)
	return err
}

func (a *jetStream) CreateOrUpdateConsumer(ctx context.Context, stream string, cfg jetstream.ConsumerConfig) (Consumer, error) {
	c, err := a.js.CreateOrUpdateConsumer(ctx, stream, cfg)
	if err != nil {
		return nil, err
	}
	return &consumer{consumer: c}, nil
}

type consumer struct {
	consumer jetstream.Consumer
}

func (c *consumer) Consume(handler MessageHandler, opts ...jetstream.PullConsumeOpt) (ConsumeContext, error) {
	return c.consumer.Consume(func(msg jetstream.Msg) {
		handler(msg)
	}, opts...)
}

func (c *consumer) Info(ctx context.Context) (*jetstream.ConsumerInfo, error) {
	return c.consumer.Info(ctx)
}
