package service

import (
	"context"
	"errors"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/repository/contract"
	"volunteer-matching-be/internal/repository/specification"
	"volunteer-matching-be/internal/repository/unitofwork"
	"volunteer-matching-be/pkg/embedding"

	"github.com/google/uuid"
)

type fakeEventRepo struct {
	events       []*entity.Event
	findOneCalls int
	findAllCalls int
	countCalls   int
	deleted      []uuid.UUID
}

func (r *fakeEventRepo) Create(ctx context.Context, event *entity.Event) error { return nil }
func (r *fakeEventRepo) Update(ctx context.Context, event *entity.Event) error { return nil }
func (r *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeEventRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Event, error) {
	r.findOneCalls++
	if len(r.events) == 0 {
		return nil, nil
	}
	return r.events[0], nil
}

func (r *fakeEventRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Event, error) {
	r.findAllCalls++
	return r.events, nil
}

func (r *fakeEventRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.countCalls++
	return int64(len(r.events)), nil
}

func (r *fakeEventRepo) ReplaceTags(ctx context.Context, eventId uuid.UUID, tagIds []uuid.UUID) error {
	return nil
}

type fakeEmbeddingRepo struct {
	deletedEventIds []uuid.UUID
	singleInserts   []*entity.EventEmbedding
	bulkInserts     [][]*entity.EventEmbedding
}

func (r *fakeEmbeddingRepo) Create(ctx context.Context, e *entity.EventEmbedding) error {
	r.singleInserts = append(r.singleInserts, e)
	return nil
}

func (r *fakeEmbeddingRepo) CreateBulk(ctx context.Context, es []*entity.EventEmbedding) error {
	r.bulkInserts = append(r.bulkInserts, es)
	return nil
}

func (r *fakeEmbeddingRepo) DeleteByEventId(ctx context.Context, eventId uuid.UUID) error {
	r.deletedEventIds = append(r.deletedEventIds, eventId)
	return nil
}

func (r *fakeEmbeddingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EventEmbedding, error) {
	return nil, nil
}

func (r *fakeEmbeddingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r *fakeEmbeddingRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredEventEmbedding, error) {
	return nil, nil
}

type fakeUow struct {
	events     *fakeEventRepo
	embeddings *fakeEmbeddingRepo
	commits    int
	rollbacks  int
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error {
	u.commits++
	return nil
}
func (u *fakeUow) Rollback() error {
	u.rollbacks++
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository { return nil }
func (u *fakeUow) EventRepository() contract.EventRepository { return u.events }
func (u *fakeUow) EventEmbeddingRepository() contract.EventEmbeddingRepository { return u.embeddings }
func (u *fakeUow) TagRepository() contract.TagRepository { return nil }
func (u *fakeUow) ApplicationRepository() contract.ApplicationRepository { return nil }
func (u *fakeUow) FavoriteRepository() contract.FavoriteRepository { return nil }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakePublisher struct {
	published [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.published = append(p.published, payload)
	return nil
}

type fakeDocEmbedder struct {
	texts     []string
	taskTypes []string
	err       error
}

func (p *fakeDocEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	p.texts = append(p.texts, text)
	p.taskTypes = append(p.taskTypes, taskType)
	if p.err != nil {
		return nil, p.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{
			Values: []float32{0.1, 0.2, 0.3},
		},
	}, nil
}

var errEmbedderDown = errors.New("embedding provider unavailable")
