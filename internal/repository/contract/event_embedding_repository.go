package contract

import (
	"context"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredEventEmbedding wraps EventEmbedding with its similarity score
type ScoredEventEmbedding struct {
	Embedding  *entity.EventEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type EventEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.EventEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.EventEmbedding) error
	DeleteByEventId(ctx context.Context, eventId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EventEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns embeddings with their similarity scores,
	// filtered by threshold, ranked by descending similarity
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredEventEmbedding, error)
}
