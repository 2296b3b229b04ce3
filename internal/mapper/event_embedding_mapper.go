package mapper

import (
	"time"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type EventEmbeddingMapper struct{}

func NewEventEmbeddingMapper() *EventEmbeddingMapper {
	return &EventEmbeddingMapper{}
}

func (m *EventEmbeddingMapper) ToEntity(e *model.EventEmbedding) *entity.EventEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.EventEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		EventId:        e.EventId,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *EventEmbeddingMapper) ToModel(e *entity.EventEmbedding) *model.EventEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.EventEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		EventId:        e.EventId,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}
