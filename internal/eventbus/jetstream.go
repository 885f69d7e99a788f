package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"

	"github.com/rankforge/rankforge/internal/attr"
)

// JetStreamEventBus implements EventBus on NATS JetStream.
type JetStreamEventBus struct {
	logger     watermill.LoggerAdapter
	natsURL    string
	conn       *nc.Conn
	publisher  *wnats.Publisher
	subscriber *wnats.Subscriber
}

var _ EventBus = (*JetStreamEventBus)(nil)

// NewJetStreamEventBus connects to NATS and builds the watermill publisher
// and subscriber on top of JetStream.
func NewJetStreamEventBus(natsURL string, logger watermill.LoggerAdapter) (*JetStreamEventBus, error) {
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("Error in subscription", err, watermill.LogFields{
					"subject": s.Subject,
					"queue":   s.Queue,
				})
			} else {
				logger.Error("Error in connection", err, nil)
			}
		}),
	}

	conn, err := nc.Connect(natsURL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	if _, err := conn.JetStream(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	publisher, err := wnats.NewPublisher(
		wnats.PublisherConfig{
			URL:         natsURL,
			NatsOptions: options,
			Marshaler:   &wnats.NATSMarshaler{},
			JetStream: wnats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: true,
			},
		},
		logger,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create watermill NATS publisher: %w", err)
	}

	subscriber, err := wnats.NewSubscriber(
		wnats.SubscriberConfig{
			URL:         natsURL,
			NatsOptions: options,
			Unmarshaler: &wnats.NATSMarshaler{},
			JetStream: wnats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: true,
			},
		},
		logger,
	)
	if err != nil {
		_ = publisher.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to create watermill NATS subscriber: %w", err)
	}

	return &JetStreamEventBus{
		logger:     logger,
		natsURL:    natsURL,
		conn:       conn,
		publisher:  publisher,
		subscriber: subscriber,
	}, nil
}

// Publish sends msg to topic, carrying the context's correlation id into the
// message metadata when the message does not already have one.
func (b *JetStreamEventBus) Publish(ctx context.Context, topic string, msg *message.Message) error {
	if msg.Metadata.Get(attr.CorrelationIDKey) == "" {
		if cid := attr.CorrelationIDFromContext(ctx); cid != "" {
			msg.Metadata.Set(attr.CorrelationIDKey, cid)
		}
	}
	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe returns a message channel for topic.
func (b *JetStreamEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return ch, nil
}

// Publisher implements EventBus.
func (b *JetStreamEventBus) Publisher() message.Publisher { return b.publisher }

// Subscriber implements EventBus.
func (b *JetStreamEventBus) Subscriber() message.Subscriber { return b.subscriber }

// Close tears down the publisher, subscriber, and connection.
func (b *JetStreamEventBus) Close() error {
	var firstErr error
	if err := b.publisher.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := b.subscriber.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	b.conn.Close()
	return firstErr
}
