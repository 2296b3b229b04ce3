package implementation

import (
	"context"
	"errors"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/mapper"
	"volunteer-matching-be/internal/model"
	"volunteer-matching-be/internal/repository/contract"
	"volunteer-matching-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type EventEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EventEmbeddingMapper
}

func NewEventEmbeddingRepository(db *gorm.DB) contract.EventEmbeddingRepository {
	return &EventEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewEventEmbeddingMapper(),
	}
}

func (r *EventEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EventEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.EventEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *EventEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.EventEmbedding) error {
	models := make([]*model.EventEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *EventEmbeddingRepositoryImpl) DeleteByEventId(ctx context.Context, eventId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("event_id = ?", eventId).Delete(&model.EventEmbedding{}).Error
}

func (r *EventEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EventEmbedding, error) {
	var m model.EventEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EventEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.EventEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns embeddings with similarity scores, filtered by threshold.
// Cosine distance in pgvector is 1 - cosine_similarity, so the score is
// 1 - (embedding_value <=> query_vector). Soft-deleted events are excluded.
func (r *EventEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredEventEmbedding, error) {
	if limit <= 0 {
		limit = 3
	}

	type result struct {
		model.EventEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("event_embeddings").
		Select("event_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN events ON events.id = event_embeddings.event_id").
		Where("events.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scoredEmbeddings := make([]*contract.ScoredEventEmbedding, len(results))
	for i, res := range results {
		scoredEmbeddings[i] = &contract.ScoredEventEmbedding{
			Embedding:  r.mapper.ToEntity(&res.EventEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scoredEmbeddings, nil
}
