package realtime

import (
	"context"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryNotifier delivers changes to subscribers of the same process.
// Suitable for a single instance and for tests.
type InMemoryNotifier struct {
	hub *Hub
}

// NewInMemoryNotifier creates an in-process notifier
func NewInMemoryNotifier(logger *zap.Logger) *InMemoryNotifier {
	return &InMemoryNotifier{hub: NewHub(logger)}
}

// Publish implements shared.ChangePublisher
func (n *InMemoryNotifier) Publish(ctx context.Context, change shared.ContentChanged) error {
	n.hub.Broadcast(change)
	return nil
}

// Subscribe implements shared.ChangeSubscriber
func (n *InMemoryNotifier) Subscribe(ctx context.Context) (<-chan shared.ContentChanged, func(), error) {
	return n.hub.Subscribe(ctx)
}

// SubscriberCount returns the number of active subscribers
func (n *InMemoryNotifier) SubscriberCount() int {
	return n.hub.SubscriberCount()
}

// Close closes every subscription
func (n *InMemoryNotifier) Close() error {
	n.hub.Close()
	return nil
}

var _ shared.ChangeNotifier = (*InMemoryNotifier)(nil)
