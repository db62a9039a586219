package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// DefaultChannel is the Pub/Sub channel used when none is configured
	DefaultChannel = "site:content-changes"

	defaultCloseTimeout = 5 * time.Second
)

// RedisNotifier publishes changes on a Redis Pub/Sub channel and relays what
// it receives to local subscribers, so every server instance sees writes made
// through any other instance.
type RedisNotifier struct {
	client     *redis.Client
	ownsClient bool
	channel    string
	logger     *zap.Logger
	hub        *Hub

	mu        sync.Mutex
	cancelFn  context.CancelFunc
	doneCh    chan struct{}
	doneOnce  sync.Once
	isRunning bool
}

// RedisNotifierOption configures a RedisNotifier
type RedisNotifierOption func(*RedisNotifier)

// WithChannel sets the Pub/Sub channel name
func WithChannel(channel string) RedisNotifierOption {
	return func(n *RedisNotifier) {
		if channel != "" {
			n.channel = channel
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) RedisNotifierOption {
	return func(n *RedisNotifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// NewRedisNotifier connects to Redis and returns a notifier that owns the client
func NewRedisNotifier(ctx context.Context, addr, password string, db int, opts ...RedisNotifierOption) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	n := NewRedisNotifierWithClient(client, opts...)
	n.ownsClient = true
	return n, nil
}

// NewRedisNotifierWithClient wraps an existing client; the caller keeps
// ownership of the client and closes it
func NewRedisNotifierWithClient(client *redis.Client, opts ...RedisNotifierOption) *RedisNotifier {
	n := &RedisNotifier{
		client:  client,
		channel: DefaultChannel,
		logger:  zap.NewNop(),
		doneCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.hub = NewHub(n.logger)
	return n
}

// Channel returns the Pub/Sub channel name
func (n *RedisNotifier) Channel() string {
	return n.channel
}

// Publish implements shared.ChangePublisher. Local subscribers receive the
// change through the relay once Redis echoes it back.
func (n *RedisNotifier) Publish(ctx context.Context, change shared.ContentChanged) error {
	if change.OccurredAt.IsZero() {
		change.OccurredAt = time.Now()
	}

	data, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal change: %w", err)
	}

	if err := n.client.Publish(ctx, n.channel, data).Err(); err != nil {
		n.logger.Error("Failed to publish content change",
			zap.String("channel", n.channel),
			zap.String("collection", change.Collection),
			zap.Error(err))
		return fmt.Errorf("failed to publish change: %w", err)
	}

	n.logger.Debug("Published content change",
		zap.String("collection", change.Collection),
		zap.String("action", change.Action),
		zap.String("entity_id", change.EntityID.String()))
	return nil
}

// Subscribe implements shared.ChangeSubscriber
func (n *RedisNotifier) Subscribe(ctx context.Context) (<-chan shared.ContentChanged, func(), error) {
	return n.hub.Subscribe(ctx)
}

// Run relays channel messages to local subscribers until ctx is cancelled or
// Close is called. It blocks; start it in a goroutine.
func (n *RedisNotifier) Run(ctx context.Context) error {
	n.mu.Lock()
	if n.isRunning {
		n.mu.Unlock()
		return fmt.Errorf("relay already running")
	}
	n.isRunning = true
	subCtx, cancel := context.WithCancel(ctx)
	n.cancelFn = cancel
	n.mu.Unlock()

	defer func() {
		n.mu.Lock()
		n.isRunning = false
		n.mu.Unlock()
		n.markDone()
	}()

	pubsub := n.client.Subscribe(subCtx, n.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(subCtx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	n.logger.Info("Subscribed to content change channel", zap.String("channel", n.channel))

	ch := pubsub.Channel()
	for {
		select {
		case <-subCtx.Done():
			n.logger.Info("Content change relay stopped")
			return subCtx.Err()
		case msg, ok := <-ch:
			if !ok {
				n.logger.Warn("Content change channel closed")
				return nil
			}
			change, err := decodeChange(msg.Payload)
			if err != nil {
				n.logger.Error("Failed to unmarshal content change",
					zap.String("payload", msg.Payload),
					zap.Error(err))
				continue
			}
			n.hub.Broadcast(change)
		}
	}
}

func decodeChange(payload string) (shared.ContentChanged, error) {
	var change shared.ContentChanged
	err := json.Unmarshal([]byte(payload), &change)
	return change, err
}

func (n *RedisNotifier) markDone() {
	n.doneOnce.Do(func() {
		close(n.doneCh)
	})
}

// Close stops the relay, closes local subscriptions and, if owned, the client
func (n *RedisNotifier) Close() error {
	n.mu.Lock()
	cancelFn := n.cancelFn
	n.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
		select {
		case <-n.doneCh:
		case <-time.After(defaultCloseTimeout):
			n.logger.Warn("Timeout waiting for content change relay to stop")
		}
	}

	n.hub.Close()

	if n.ownsClient {
		return n.client.Close()
	}
	return nil
}

var _ shared.ChangeNotifier = (*RedisNotifier)(nil)
