package retrieval

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/pkg/embedding"

	"github.com/google/uuid"
)

type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{
			Values: []float32{0.1, 0.2, 0.3},
		},
	}, nil
}

type fakeSearcher struct {
	hits []ScoredHit
	err  error
}

func (f *fakeSearcher) Search(ctx context.Context, queryVector []float32, limit int, threshold float64) ([]ScoredHit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

type fakeStore struct {
	events []*entity.Event
	err    error
	calls  int
}

func (f *fakeStore) GetByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.Event, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestRetriever(searcher VectorSearcher, store RecordStore) *Retriever {
	return NewRetriever(&fakeEmbedder{}, searcher, store, DefaultConfig(), discardLogger())
}

func TestRetrievePreservesRankOrder(t *testing.T) {
	idA, idB, idC := uuid.New(), uuid.New(), uuid.New()
	searcher := &fakeSearcher{hits: []ScoredHit{
		{EventId: idB, Score: 0.92},
		{EventId: idA, Score: 0.85},
		{EventId: idC, Score: 0.74},
	}}
	// store returns records in a different order than the search ranking
	store := &fakeStore{events: []*entity.Event{
		{Id: idA, Name: "A"},
		{Id: idC, Name: "C"},
		{Id: idB, Name: "B"},
	}}

	candidates, err := newTestRetriever(searcher, store).Retrieve(context.Background(), "海岸清掃", 0)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	wantOrder := []uuid.UUID{idB, idA, idC}
	if len(candidates) != len(wantOrder) {
		t.Fatalf("got %d candidates, want %d", len(candidates), len(wantOrder))
	}
	for i, want := range wantOrder {
		if candidates[i].EventId != want {
			t.Errorf("candidate %d = %s, want %s", i, candidates[i].EventId, want)
		}
		if candidates[i].Event == nil {
			t.Errorf("candidate %d must be hydrated", i)
		}
	}
}

func TestRetrieveDeduplicatesKeepingBestRank(t *testing.T) {
	id := uuid.New()
	other := uuid.New()
	searcher := &fakeSearcher{hits: []ScoredHit{
		{EventId: id, Score: 0.95},
		{EventId: other, Score: 0.88},
		{EventId: id, Score: 0.80},
	}}
	store := &fakeStore{events: []*entity.Event{{Id: id}, {Id: other}}}

	candidates, err := newTestRetriever(searcher, store).Retrieve(context.Background(), "清掃", 0)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	if candidates[0].EventId != id || candidates[0].Score != 0.95 {
		t.Errorf("duplicate must keep its best ranked hit, got id=%s score=%.2f", candidates[0].EventId, candidates[0].Score)
	}
}

func TestRetrieveHydrationFallback(t *testing.T) {
	hydrated := uuid.New()
	missing := uuid.New()
	searcher := &fakeSearcher{hits: []ScoredHit{
		{EventId: hydrated, Score: 0.9, Document: "イベント名: A"},
		{EventId: missing, Score: 0.8, Document: "イベント名: B"},
	}}
	store := &fakeStore{events: []*entity.Event{{Id: hydrated, Name: "A"}}}

	candidates, err := newTestRetriever(searcher, store).Retrieve(context.Background(), "清掃", 0)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("missing record must not drop the candidate, got %d", len(candidates))
	}
	if candidates[0].Event == nil {
		t.Error("first candidate should be hydrated")
	}
	if candidates[1].Event != nil {
		t.Error("second candidate should keep its projection only")
	}
	if candidates[1].Document != "イベント名: B" {
		t.Errorf("projection lost: %q", candidates[1].Document)
	}
}

func TestRetrieveStoreDownKeepsAllCandidates(t *testing.T) {
	searcher := &fakeSearcher{hits: []ScoredHit{
		{EventId: uuid.New(), Score: 0.9, Document: "doc1"},
		{EventId: uuid.New(), Score: 0.8, Document: "doc2"},
	}}
	store := &fakeStore{err: errors.New("connection refused")}

	candidates, err := newTestRetriever(searcher, store).Retrieve(context.Background(), "清掃", 0)
	if err != nil {
		t.Fatalf("store failure must not fail retrieval, got %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	for i, c := range candidates {
		if c.Event != nil {
			t.Errorf("candidate %d must be unhydrated when the store is down", i)
		}
	}
}

func TestRetrieveEmptyQuery(t *testing.T) {
	embedder := &fakeEmbedder{}
	r := NewRetriever(embedder, &fakeSearcher{}, &fakeStore{}, DefaultConfig(), discardLogger())

	_, err := r.Retrieve(context.Background(), "   ", 0)
	if !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("error = %v, want ErrEmptyQuery", err)
	}
	if embedder.calls != 0 {
		t.Error("blank query must not reach the embedding provider")
	}
}

func TestRetrieveEmbeddingFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("quota exceeded")}
	store := &fakeStore{}
	r := NewRetriever(embedder, &fakeSearcher{}, store, DefaultConfig(), discardLogger())

	candidates, err := r.Retrieve(context.Background(), "清掃", 0)
	if err == nil {
		t.Fatal("embedding failure must surface an error")
	}
	if len(candidates) != 0 {
		t.Errorf("got %d candidates, want none", len(candidates))
	}
	if store.calls != 0 {
		t.Error("hydration must not run after an embedding failure")
	}
}

func TestRetrieveSearchFailure(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("db down")}
	store := &fakeStore{}
	r := NewRetriever(&fakeEmbedder{}, searcher, store, DefaultConfig(), discardLogger())

	_, err := r.Retrieve(context.Background(), "清掃", 0)
	if err == nil {
		t.Fatal("search failure must surface an error")
	}
	if store.calls != 0 {
		t.Error("hydration must not run after a search failure")
	}
}
