package advisor

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/pkg/advisor/generation"
	"volunteer-matching-be/pkg/advisor/retrieval"
	"volunteer-matching-be/pkg/embedding"
	"volunteer-matching-be/pkg/llm"

	"github.com/google/uuid"
)

type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.calls++
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.5, 0.5}},
	}, nil
}

type fakeSearcher struct {
	hits  []retrieval.ScoredHit
	calls int
}

func (f *fakeSearcher) Search(ctx context.Context, queryVector []float32, limit int, threshold float64) ([]retrieval.ScoredHit, error) {
	f.calls++
	return f.hits, nil
}

type fakeStore struct {
	events []*entity.Event
}

func (f *fakeStore) GetByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.Event, error) {
	return f.events, nil
}

type fakeLLM struct {
	lastHistory []llm.Message
	response    string
	err         error
	calls       int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	f.lastHistory = history
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestAdvisor(embedder *fakeEmbedder, searcher *fakeSearcher, store *fakeStore, provider *fakeLLM, policy string) *Advisor {
	retriever := retrieval.NewRetriever(embedder, searcher, store, retrieval.DefaultConfig(), discardLogger())
	generator := generation.NewGenerator(provider, policy, discardLogger())
	return New(retriever, generator, discardLogger())
}

func TestHandleTurnFullPipeline(t *testing.T) {
	eventId := uuid.New()
	place := "〇〇海岸"
	event := &entity.Event{
		Id:               eventId,
		Name:             "ビーチクリーン活動",
		Place:            &place,
		Fee:              0,
		ShortDescription: "海岸のゴミ拾いイベントです。",
	}

	embedder := &fakeEmbedder{}
	searcher := &fakeSearcher{hits: []retrieval.ScoredHit{{EventId: eventId, Score: 0.81}}}
	store := &fakeStore{events: []*entity.Event{event}}
	provider := &fakeLLM{response: "ビーチクリーン活動がおすすめです！\n{\"options\": [\"日時は？\", \"持ち物は？\", \"参加費は？\", \"他のイベントは？\"]}"}

	adv := newTestAdvisor(embedder, searcher, store, provider, "ポリシー")

	result, err := adv.HandleTurn(context.Background(), []Message{
		{Role: RoleUser, Content: "海岸清掃のボランティアはありますか？"},
	})
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}

	if result.Prose != "ビーチクリーン活動がおすすめです！" {
		t.Errorf("Prose = %q", result.Prose)
	}
	if len(result.Options) != 4 {
		t.Fatalf("got %d options, want 4", len(result.Options))
	}
	if len(result.SupportingRecords) != 1 || result.SupportingRecords[0].Id != eventId {
		t.Fatalf("supporting records must carry the hydrated event")
	}

	// the retrieved event must have grounded the system message
	systemMsg := provider.lastHistory[0]
	if systemMsg.Role != "system" {
		t.Fatalf("first provider message role = %q, want system", systemMsg.Role)
	}
	if !strings.Contains(systemMsg.Content, "ビーチクリーン活動") {
		t.Error("system message must contain the assembled event context")
	}
	if !strings.Contains(systemMsg.Content, "無料") {
		t.Error("zero fee must be rendered as 無料")
	}
}

func TestHandleTurnEmptyQuery(t *testing.T) {
	embedder := &fakeEmbedder{}
	searcher := &fakeSearcher{}
	provider := &fakeLLM{}
	adv := newTestAdvisor(embedder, searcher, &fakeStore{}, provider, "ポリシー")

	tests := []struct {
		name    string
		history []Message
	}{
		{name: "no messages", history: nil},
		{name: "no user messages", history: []Message{{Role: RoleAssistant, Content: "こんにちは"}}},
		{name: "blank user message", history: []Message{{Role: RoleUser, Content: "   "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := adv.HandleTurn(context.Background(), tt.history)
			if !errors.Is(err, ErrEmptyQuery) {
				t.Fatalf("error = %v, want ErrEmptyQuery", err)
			}
		})
	}

	if embedder.calls != 0 || searcher.calls != 0 || provider.calls != 0 {
		t.Error("an empty query must not trigger any external calls")
	}
}

func TestHandleTurnNoMatches(t *testing.T) {
	provider := &fakeLLM{response: "条件に合うイベントは見つかりませんでした。どんな活動に興味がありますか？"}
	adv := newTestAdvisor(&fakeEmbedder{}, &fakeSearcher{}, &fakeStore{}, provider, "ポリシー")

	result, err := adv.HandleTurn(context.Background(), []Message{
		{Role: RoleUser, Content: "宇宙飛行士ボランティア"},
	})
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}

	if len(result.SupportingRecords) != 0 {
		t.Error("no supporting records expected without matches")
	}
	if !strings.Contains(provider.lastHistory[0].Content, "関連するボランティアイベントは見つかりませんでした") {
		t.Error("no-match sentence must ground the system message")
	}
	if result.Prose == "" {
		t.Error("the turn must still produce an answer")
	}
}

func TestHandleTurnGenerationFailure(t *testing.T) {
	provider := &fakeLLM{err: errors.New("backend exploded")}
	adv := newTestAdvisor(&fakeEmbedder{}, &fakeSearcher{}, &fakeStore{}, provider, "ポリシー")

	result, err := adv.HandleTurn(context.Background(), []Message{
		{Role: RoleUser, Content: "清掃ボランティア"},
	})
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("error = %v, want ErrGeneration", err)
	}
	if result != nil {
		t.Error("a failed turn must not return a partial result")
	}
}

func TestHandleTurnExtrasNeverReachProvider(t *testing.T) {
	provider := &fakeLLM{response: "ok"}
	adv := newTestAdvisor(&fakeEmbedder{}, &fakeSearcher{}, &fakeStore{}, provider, "ポリシー")

	_, err := adv.HandleTurn(context.Background(), []Message{
		{Role: RoleAssistant, Content: "前回の回答", Extras: map[string]any{"events": []string{"secret-id"}}},
		{Role: RoleUser, Content: "続きを教えて"},
	})
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}

	for _, msg := range provider.lastHistory {
		if strings.Contains(msg.Content, "secret-id") {
			t.Error("extras must not leak into provider messages")
		}
	}
}
