package event

import (
	"context"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Announcer publishes content changes after successful writes and counts them.
// Publishing is best effort: the write already happened, so a failed publish
// is logged and never returned to the caller.
type Announcer struct {
	publisher shared.ChangePublisher
	metrics   *telemetry.ContentMetrics
	logger    *zap.Logger
}

// NewAnnouncer creates an announcer; nil arguments fall back to no-ops
func NewAnnouncer(publisher shared.ChangePublisher, metrics *telemetry.ContentMetrics, logger *zap.Logger) *Announcer {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Announcer{
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Announce publishes a change for an entity of a collection
func (a *Announcer) Announce(ctx context.Context, collection string, entityID uuid.UUID, action string) {
	a.publish(ctx, shared.NewContentChanged(collection, entityID, action))
}

// AnnounceChild publishes a change of an embedded entity, such as a section of a page
func (a *Announcer) AnnounceChild(ctx context.Context, collection string, parentID, entityID uuid.UUID, action string) {
	change := shared.NewContentChanged(collection, entityID, action)
	change.ParentID = parentID
	a.publish(ctx, change)
}

func (a *Announcer) publish(ctx context.Context, change shared.ContentChanged) {
	a.metrics.RecordWrite(ctx, change.Collection, change.Action)
	if err := a.publisher.Publish(ctx, change); err != nil {
		a.logger.Warn("Failed to publish content change",
			zap.String("collection", change.Collection),
			zap.String("entity_id", change.EntityID.String()),
			zap.String("action", change.Action),
			zap.Error(err))
	}
}
