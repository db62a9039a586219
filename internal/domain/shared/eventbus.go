package shared

import "context"

// ChangePublisher publishes content change notifications
type ChangePublisher interface {
	// Publish delivers the change to every current subscriber.
	// A failed publish never undoes the write that produced it.
	Publish(ctx context.Context, change ContentChanged) error
}

// ChangeSubscriber hands out subscriptions to content change notifications
type ChangeSubscriber interface {
	// Subscribe returns a channel of changes and a cancel func that closes it
	Subscribe(ctx context.Context) (<-chan ContentChanged, func(), error)
}

// ChangeNotifier combines publisher and subscriber capabilities
type ChangeNotifier interface {
	ChangePublisher
	ChangeSubscriber
	Close() error
}

// NopPublisher drops every change; used where live updates are not wired
type NopPublisher struct{}

// Publish implements ChangePublisher
func (NopPublisher) Publish(context.Context, ContentChanged) error { return nil }
