package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/telemetry"
	"github.com/atedres/boldnet-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SSE event names
const (
	EventConnected      = "connected"
	EventContentChanged = "content_changed"
	EventHeartbeat      = "heartbeat"
)

const sseMessageBufferSize = 64

// SSEClient represents a connected SSE client
type SSEClient struct {
	ID       string
	EditorID string
	// Collections limits delivery; empty means every collection
	Collections map[string]bool
	Chan        chan SSEMessage
}

// SSEMessage represents a message to be sent to SSE clients
type SSEMessage struct {
	Event      string `json:"event"`
	Data       string `json:"data"`
	ID         string `json:"id,omitempty"`
	Collection string `json:"-"`
}

func (c *SSEClient) wants(msg SSEMessage) bool {
	if msg.Collection == "" || len(c.Collections) == 0 {
		return true
	}
	return c.Collections[msg.Collection]
}

// LiveHandler streams content change notifications to open editors and
// previews so they can refetch what changed.
type LiveHandler struct {
	BaseHandler
	subscriber shared.ChangeSubscriber
	metrics    *telemetry.ContentMetrics
	logger     *zap.Logger
	clients    sync.Map // map[string]*SSEClient
	ctx        context.Context
	cancel     context.CancelFunc
	heartbeat  time.Duration
	maxClients int
	started    bool
	startMu    sync.Mutex
	wg         sync.WaitGroup
}

// LiveOption is a functional option for configuring the handler
type LiveOption func(*LiveHandler)

// WithSSELogger sets the logger for the handler
func WithSSELogger(logger *zap.Logger) LiveOption {
	return func(h *LiveHandler) {
		h.logger = logger
	}
}

// WithSSEHeartbeat sets the heartbeat interval
func WithSSEHeartbeat(interval time.Duration) LiveOption {
	return func(h *LiveHandler) {
		h.heartbeat = interval
	}
}

// WithSSEMaxClients sets the maximum number of concurrent SSE clients
func WithSSEMaxClients(max int) LiveOption {
	return func(h *LiveHandler) {
		h.maxClients = max
	}
}

// WithSSEMetrics records open streams
func WithSSEMetrics(metrics *telemetry.ContentMetrics) LiveOption {
	return func(h *LiveHandler) {
		h.metrics = metrics
	}
}

// NewLiveHandler creates a new live update handler
func NewLiveHandler(subscriber shared.ChangeSubscriber, opts ...LiveOption) *LiveHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &LiveHandler{
		subscriber: subscriber,
		logger:     zap.NewNop(),
		ctx:        ctx,
		cancel:     cancel,
		heartbeat:  30 * time.Second,
		maxClients: 1000,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Start subscribes to change notifications and begins the heartbeat
func (h *LiveHandler) Start() error {
	h.startMu.Lock()
	defer h.startMu.Unlock()

	if h.started {
		return errors.New("live handler already started")
	}
	if h.ctx.Err() != nil {
		return errors.New("live handler stopped")
	}

	changes, unsubscribe, err := h.subscriber.Subscribe(h.ctx)
	if err != nil {
		return fmt.Errorf("subscribe to content changes: %w", err)
	}

	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		defer unsubscribe()
		h.forward(changes)
	}()
	go func() {
		defer h.wg.Done()
		h.sendHeartbeats()
	}()

	h.started = true
	h.logger.Info("Live update handler started")
	return nil
}

// Stop disconnects every client and waits for background work to end
func (h *LiveHandler) Stop() {
	h.cancel()
	h.wg.Wait()
	h.logger.Info("Live update handler stopped")
}

func (h *LiveHandler) forward(changes <-chan shared.ContentChanged) {
	for {
		select {
		case <-h.ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			data, err := json.Marshal(change)
			if err != nil {
				h.logger.Error("Failed to marshal SSE event", zap.Error(err))
				continue
			}
			h.broadcast(SSEMessage{
				Event:      EventContentChanged,
				Data:       string(data),
				ID:         change.ID.String(),
				Collection: change.Collection,
			})
		}
	}
}

// broadcast sends a message to every interested client without blocking
func (h *LiveHandler) broadcast(msg SSEMessage) {
	h.clients.Range(func(_, value any) bool {
		client, ok := value.(*SSEClient)
		if !ok || !client.wants(msg) {
			return true
		}

		select {
		case client.Chan <- msg:
		default:
			h.logger.Warn("Client channel full, dropping message",
				zap.String("client_id", client.ID),
				zap.String("event", msg.Event))
		}
		return true
	})
}

func (h *LiveHandler) sendHeartbeats() {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.broadcast(SSEMessage{
				Event: EventHeartbeat,
				Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
			})
		}
	}
}

// Stream holds an SSE connection open and relays content changes.
// ?collection=a,b restricts delivery to those collections.
func (h *LiveHandler) Stream(c *gin.Context) {
	if h.maxClients > 0 && h.GetClientCount() >= h.maxClients {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable,
			"Maximum number of live connections reached")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	editorID, _ := getEditorID(c)
	client := &SSEClient{
		ID:          uuid.New().String(),
		Collections: parseCollections(c.Query("collection")),
		Chan:        make(chan SSEMessage, sseMessageBufferSize),
	}
	if editorID != uuid.Nil {
		client.EditorID = editorID.String()
	}

	reqCtx := c.Request.Context()
	h.clients.Store(client.ID, client)
	h.metrics.StreamOpened(reqCtx)
	defer func() {
		h.clients.Delete(client.ID)
		h.metrics.StreamClosed(context.WithoutCancel(reqCtx))
	}()

	h.logger.Info("SSE client connected",
		zap.String("client_id", client.ID),
		zap.String("editor_id", client.EditorID))

	c.Status(http.StatusOK)
	h.sendEvent(c.Writer, SSEMessage{
		Event: EventConnected,
		Data:  fmt.Sprintf(`{"client_id":"%s","timestamp":%d}`, client.ID, time.Now().Unix()),
	})
	c.Writer.Flush()

	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("SSE client disconnected", zap.String("client_id", client.ID))
			return
		case <-h.ctx.Done():
			h.logger.Info("Live handler stopped, disconnecting client", zap.String("client_id", client.ID))
			return
		case msg := <-client.Chan:
			h.sendEvent(c.Writer, msg)
			c.Writer.Flush()
		}
	}
}

// sendEvent writes an SSE event to the response writer
func (h *LiveHandler) sendEvent(w io.Writer, msg SSEMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}

// GetClientCount returns the number of connected SSE clients
func (h *LiveHandler) GetClientCount() int {
	count := 0
	h.clients.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

func parseCollections(raw string) map[string]bool {
	if raw == "" {
		return nil
	}
	out := make(map[string]bool)
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out[name] = true
		}
	}
	return out
}
