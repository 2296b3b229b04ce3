package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/pkg/embedding"

	"github.com/google/uuid"
)

// ErrEmptyQuery is returned when Retrieve is called with a blank query.
var ErrEmptyQuery = errors.New("retrieval: empty query")

// ScoredHit is one ranked vector search result. Document holds the text that
// was embedded at indexing time and doubles as a fallback rendering when the
// event record itself cannot be loaded.
type ScoredHit struct {
	EventId  uuid.UUID
	Score    float64
	Document string
}

// VectorSearcher runs a similarity search over indexed event embeddings
type VectorSearcher interface {
	Search(ctx context.Context, queryVector []float32, limit int, threshold float64) ([]ScoredHit, error)
}

// RecordStore loads full event records for a set of ids
type RecordStore interface {
	GetByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.Event, error)
}

// Candidate is a retrieval result. Event is nil when hydration could not load
// the record, in which case Document carries the indexed projection.
type Candidate struct {
	EventId  uuid.UUID
	Score    float64
	Document string
	Event    *entity.Event
}

// Config encapsulates search parameters
type Config struct {
	Threshold float64
	Limit     int
}

// DefaultConfig returns default retrieval configuration
func DefaultConfig() Config {
	return Config{
		Threshold: 0.7,
		Limit:     3,
	}
}

// Retriever embeds a query, runs vector search and hydrates the results
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	searcher          VectorSearcher
	store             RecordStore
	config            Config
	logger            *log.Logger
}

func NewRetriever(
	embeddingProvider embedding.EmbeddingProvider,
	searcher VectorSearcher,
	store RecordStore,
	config Config,
	logger *log.Logger,
) *Retriever {
	if config.Limit <= 0 {
		config.Limit = DefaultConfig().Limit
	}
	if config.Threshold <= 0 {
		config.Threshold = DefaultConfig().Threshold
	}
	return &Retriever{
		embeddingProvider: embeddingProvider,
		searcher:          searcher,
		store:             store,
		config:            config,
		logger:            logger,
	}
}

// Retrieve runs the full retrieval pass for a query. limit <= 0 falls back to
// the configured limit. Results keep the similarity rank order of the search.
func (r *Retriever) Retrieve(ctx context.Context, query string, limit int) ([]Candidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = r.config.Limit
	}

	embeddingRes, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	hits, err := r.searcher.Search(ctx, embeddingRes.Embedding.Values, limit, r.config.Threshold)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	r.logger.Printf("[DEBUG] Raw search results: %d hits", len(hits))

	candidates := deduplicate(hits)

	r.hydrate(ctx, candidates)

	return candidates, nil
}

// deduplicate keeps the first (best ranked) hit per event id
func deduplicate(hits []ScoredHit) []Candidate {
	candidates := make([]Candidate, 0, len(hits))
	seen := make(map[uuid.UUID]bool)

	for _, hit := range hits {
		if seen[hit.EventId] {
			continue
		}
		seen[hit.EventId] = true
		candidates = append(candidates, Candidate{
			EventId:  hit.EventId,
			Score:    hit.Score,
			Document: hit.Document,
		})
	}

	return candidates
}

// hydrate attaches full event records in one bulk load. A candidate whose
// record cannot be found keeps its indexed projection, and a store failure
// leaves every candidate unhydrated rather than failing the retrieval.
func (r *Retriever) hydrate(ctx context.Context, candidates []Candidate) {
	if len(candidates) == 0 {
		return
	}

	ids := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.EventId
	}

	events, err := r.store.GetByIds(ctx, ids)
	if err != nil {
		r.logger.Printf("[WARN] Failed to hydrate candidates: %v", err)
		return
	}

	eventMap := make(map[uuid.UUID]*entity.Event, len(events))
	for _, e := range events {
		eventMap[e.Id] = e
	}

	for i := range candidates {
		if event, ok := eventMap[candidates[i].EventId]; ok {
			candidates[i].Event = event
		} else {
			r.logger.Printf("[WARN] Candidate %s missing from record store, keeping projection", candidates[i].EventId)
		}
	}
}
