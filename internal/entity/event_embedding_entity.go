package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	EventId        uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
