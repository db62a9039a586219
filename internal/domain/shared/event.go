package shared

import (
	"time"

	"github.com/google/uuid"
)

// Change actions carried by ContentChanged
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionReordered = "reordered"
	ActionToggled   = "visibility_toggled"
)

// ContentChanged is published after every successful content write.
// Open editors subscribe to it to refresh their view.
type ContentChanged struct {
	ID         uuid.UUID `json:"id"`
	Collection string    `json:"collection"`
	EntityID   uuid.UUID `json:"entityId"`
	ParentID   uuid.UUID `json:"parentId,omitempty"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewContentChanged creates a change notification stamped with the current time
func NewContentChanged(collection string, entityID uuid.UUID, action string) ContentChanged {
	return ContentChanged{
		ID:         uuid.New(),
		Collection: collection,
		EntityID:   entityID,
		Action:     action,
		OccurredAt: time.Now(),
	}
}
