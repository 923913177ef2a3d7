package queue

import "context"

// Publisher delivers order events.  Implementations must be safe for
// concurrent use; Close releases broker connections.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, ev OrderCreatedEvent) error
	Close() error
}

// NopPublisher drops every event.  Used when EVENTS_DRIVER=none.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(context.Context, OrderCreatedEvent) error { return nil }
func (NopPublisher) Close() error                                                 { return nil }
