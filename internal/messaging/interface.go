package messaging

import "context"

// EventPublisher publishes events to the organization's event bus. The
// devserver uses it to announce created patients the way the production
// patient service does; a nil publisher is a no-op.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, eventData interface{}) error
	Close() error
}
