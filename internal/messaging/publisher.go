package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/feral-file/ff-orderbook-cache/internal/domain"
)

const (
	// ORDER_UPDATES_SUBJECT_PREFIX prefixes every order update subject, e.g. orders.updates.sale
	ORDER_UPDATES_SUBJECT_PREFIX = "orders.updates"
	// ORDER_UPDATES_SUBJECTS matches every order update subject
	ORDER_UPDATES_SUBJECTS = ORDER_UPDATES_SUBJECT_PREFIX + ".>"

	// DEFAULT_DUPLICATE_WINDOW is how long JetStream remembers message ids for deduplication
	DEFAULT_DUPLICATE_WINDOW = 2 * time.Minute

	unknownTriggerKind = "unknown"
)

// Publisher defines the interface for publishing order update requests to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishOrderUpdates publishes order update requests.
	// Requests that would be dropped by the queue are skipped.
	PublishOrderUpdates(ctx context.Context, orderInfos []domain.OrderInfo) error
	// Close closes the connection
	Close()
}

// OrderUpdateSubject returns the subject an order update request is published on
func OrderUpdateSubject(orderInfo domain.OrderInfo) string {
	kind := unknownTriggerKind
	if orderInfo.Trigger != nil && orderInfo.Trigger.Kind != "" {
		kind = string(orderInfo.Trigger.Kind)
	}
	return fmt.Sprintf("%s.%s", ORDER_UPDATES_SUBJECT_PREFIX, kind)
}

// OrderUpdatesStreamConfig returns the JetStream stream carrying order update requests
func OrderUpdatesStreamConfig(streamName string) jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:       streamName,
		Subjects:   []string{ORDER_UPDATES_SUBJECTS},
		Retention:  jetstream.WorkQueuePolicy,
		Storage:    jetstream.FileStorage,
		Duplicates: DEFAULT_DUPLICATE_WINDOW,
	}
}
