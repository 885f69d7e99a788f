// Package eventbus provides the NATS JetStream event bus the module routers
// publish and subscribe through, built on the watermill NATS bindings.
package eventbus

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventBus is the pub/sub contract used by module routers and handlers.
type EventBus interface {
	// Publish sends msg to topic, stamping metadata from ctx where present.
	Publish(ctx context.Context, topic string, msg *message.Message) error
	// Subscribe returns a channel of messages for topic.
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	// Publisher exposes the underlying watermill publisher for router wiring.
	Publisher() message.Publisher
	// Subscriber exposes the underlying watermill subscriber for router wiring.
	Subscriber() message.Subscriber
	// Close releases connections.
	Close() error
}
