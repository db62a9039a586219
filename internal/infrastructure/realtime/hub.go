package realtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultSubscriberBuffer is the channel capacity handed to each subscriber
const DefaultSubscriberBuffer = 32

// ErrClosed is returned by Subscribe after Close
var ErrClosed = errors.New("notifier is closed")

// Hub fans changes out to in-process subscribers. A subscriber that does not
// keep up loses changes instead of blocking the publisher.
type Hub struct {
	mu      sync.RWMutex
	subs    map[uint64]chan shared.ContentChanged
	nextID  uint64
	buffer  int
	closed  bool
	logger  *zap.Logger
	dropped atomic.Uint64
}

// NewHub creates an empty hub
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subs:   make(map[uint64]chan shared.ContentChanged),
		buffer: DefaultSubscriberBuffer,
		logger: logger,
	}
}

// Subscribe registers a subscriber. The returned cancel func removes it and
// closes its channel; cancelling the context does the same.
func (h *Hub) Subscribe(ctx context.Context) (<-chan shared.ContentChanged, func(), error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, nil, ErrClosed
	}
	id := h.nextID
	h.nextID++
	ch := make(chan shared.ContentChanged, h.buffer)
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	done := make(chan struct{})
	cancel := func() {
		once.Do(func() {
			close(done)
			h.remove(id)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()

	return ch, cancel, nil
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Broadcast delivers the change to every subscriber without blocking
func (h *Hub) Broadcast(change shared.ContentChanged) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- change:
		default:
			h.dropped.Add(1)
			h.logger.Warn("Dropping change for slow subscriber",
				zap.Uint64("subscriber", id),
				zap.String("collection", change.Collection))
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped returns how many deliveries were skipped for slow subscribers
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Close closes every subscriber channel; later subscriptions fail
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
