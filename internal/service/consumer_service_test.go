package service

import (
	"context"
	"encoding/json"
	"testing"

	"volunteer-matching-be/internal/dto"
	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/pkg/advisor/contextbuild"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

func embedEventMessage(t *testing.T, eventId uuid.UUID) *message.Message {
	t.Helper()
	payload, err := json.Marshal(dto.PublishEmbedEventMessage{EventId: eventId})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return message.NewMessage(watermill.NewUUID(), payload)
}

func isAcked(msg *message.Message) bool {
	select {
	case <-msg.Acked():
		return true
	default:
		return false
	}
}

func isNacked(msg *message.Message) bool {
	select {
	case <-msg.Nacked():
		return true
	default:
		return false
	}
}

func TestProcessMessageBulkInsertsEmbeddings(t *testing.T) {
	place := "市民センター"
	event := &entity.Event{
		Id:               uuid.New(),
		Name:             "子ども食堂の手伝い",
		Place:            &place,
		ShortDescription: "調理と配膳のお手伝いです。",
	}
	uow := &fakeUow{
		events:     &fakeEventRepo{events: []*entity.Event{event}},
		embeddings: &fakeEmbeddingRepo{},
	}
	embedder := &fakeDocEmbedder{}
	cs := &consumerService{
		topicName:         "EMBED_EVENT_CONTENT",
		uowFactory:        &fakeUowFactory{uow: uow},
		embeddingProvider: embedder,
	}

	msg := embedEventMessage(t, event.Id)
	cs.processMessage(context.Background(), msg)

	if !isAcked(msg) {
		t.Fatal("expected message to be acked")
	}
	if len(uow.embeddings.deletedEventIds) != 1 || uow.embeddings.deletedEventIds[0] != event.Id {
		t.Errorf("old embeddings not removed for event %s", event.Id)
	}
	if len(uow.embeddings.bulkInserts) != 1 {
		t.Fatalf("bulk insert calls = %d, want 1", len(uow.embeddings.bulkInserts))
	}
	if len(uow.embeddings.singleInserts) != 0 {
		t.Errorf("expected no single-row inserts, got %d", len(uow.embeddings.singleInserts))
	}

	inserted := uow.embeddings.bulkInserts[0]
	if len(inserted) != 1 {
		t.Fatalf("inserted rows = %d, want 1", len(inserted))
	}
	wantDocument := contextbuild.RenderEvent(event)
	if inserted[0].Document != wantDocument {
		t.Errorf("Document = %q, want the rendered event %q", inserted[0].Document, wantDocument)
	}
	if inserted[0].EventId != event.Id {
		t.Errorf("EventId = %s, want %s", inserted[0].EventId, event.Id)
	}
	if len(embedder.taskTypes) != 1 || embedder.taskTypes[0] != "RETRIEVAL_DOCUMENT" {
		t.Errorf("task types = %v, want one RETRIEVAL_DOCUMENT call", embedder.taskTypes)
	}
	if uow.commits != 1 {
		t.Errorf("commits = %d, want 1", uow.commits)
	}
}

func TestProcessMessageNacksOnEmbeddingFailure(t *testing.T) {
	event := &entity.Event{
		Id:               uuid.New(),
		Name:             "ビーチクリーン活動",
		ShortDescription: "海岸のゴミ拾いです。",
	}
	uow := &fakeUow{
		events:     &fakeEventRepo{events: []*entity.Event{event}},
		embeddings: &fakeEmbeddingRepo{},
	}
	cs := &consumerService{
		topicName:         "EMBED_EVENT_CONTENT",
		uowFactory:        &fakeUowFactory{uow: uow},
		embeddingProvider: &fakeDocEmbedder{err: errEmbedderDown},
	}

	msg := embedEventMessage(t, event.Id)
	cs.processMessage(context.Background(), msg)

	if !isNacked(msg) {
		t.Fatal("expected message to be nacked")
	}
	if len(uow.embeddings.bulkInserts) != 0 {
		t.Errorf("expected no inserts after embedding failure, got %d", len(uow.embeddings.bulkInserts))
	}
}

func TestProcessMessageDropsVectorsForRemovedEvent(t *testing.T) {
	eventId := uuid.New()
	uow := &fakeUow{
		events:     &fakeEventRepo{},
		embeddings: &fakeEmbeddingRepo{},
	}
	cs := &consumerService{
		topicName:         "EMBED_EVENT_CONTENT",
		uowFactory:        &fakeUowFactory{uow: uow},
		embeddingProvider: &fakeDocEmbedder{},
	}

	msg := embedEventMessage(t, eventId)
	cs.processMessage(context.Background(), msg)

	if !isAcked(msg) {
		t.Fatal("expected message to be acked")
	}
	if len(uow.embeddings.deletedEventIds) != 1 || uow.embeddings.deletedEventIds[0] != eventId {
		t.Errorf("stale embeddings not removed for event %s", eventId)
	}
	if len(uow.embeddings.bulkInserts) != 0 {
		t.Errorf("expected no inserts for a removed event, got %d", len(uow.embeddings.bulkInserts))
	}
}
