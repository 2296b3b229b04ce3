package dto

import (
	"github.com/google/uuid"
)

// PublishEmbedEventMessage asks the indexing consumer to (re)embed one event
type PublishEmbedEventMessage struct {
	EventId uuid.UUID `json:"event_id"`
}
