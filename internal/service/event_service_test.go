package service

import (
	"context"
	"testing"

	"volunteer-matching-be/internal/dto"
	"volunteer-matching-be/internal/entity"

	"github.com/google/uuid"
)

func newCachedEventService(uow *fakeUow) *eventService {
	return NewEventService(&fakeUowFactory{uow: uow}, &fakePublisher{}, &fakeDocEmbedder{}).(*eventService)
}

func TestGetAllServesRepeatedQueriesFromCache(t *testing.T) {
	repo := &fakeEventRepo{events: []*entity.Event{
		{Id: uuid.New(), Name: "ビーチクリーン活動", ShortDescription: "海岸のゴミ拾いです。"},
		{Id: uuid.New(), Name: "子ども食堂の手伝い", ShortDescription: "調理と配膳のお手伝いです。"},
	}}
	svc := newCachedEventService(&fakeUow{events: repo, embeddings: &fakeEmbeddingRepo{}})

	req := &dto.GetAllEventsRequest{Page: 1, PageSize: 20}

	first, err := svc.GetAll(context.Background(), req)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	second, err := svc.GetAll(context.Background(), req)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}

	if repo.findAllCalls != 1 || repo.countCalls != 1 {
		t.Errorf("repository hit %d/%d times for two identical queries, want 1/1",
			repo.findAllCalls, repo.countCalls)
	}
	if len(second.Events) != len(first.Events) || second.Total != first.Total {
		t.Errorf("cached response differs: %d/%d events, totals %d/%d",
			len(second.Events), len(first.Events), second.Total, first.Total)
	}
}

func TestGetAllCacheKeyCoversPaging(t *testing.T) {
	repo := &fakeEventRepo{events: []*entity.Event{
		{Id: uuid.New(), Name: "防災倉庫の点検", ShortDescription: "在庫点検です。"},
	}}
	svc := newCachedEventService(&fakeUow{events: repo, embeddings: &fakeEmbeddingRepo{}})

	if _, err := svc.GetAll(context.Background(), &dto.GetAllEventsRequest{Page: 1, PageSize: 20}); err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if _, err := svc.GetAll(context.Background(), &dto.GetAllEventsRequest{Page: 2, PageSize: 20}); err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}

	if repo.findAllCalls != 2 {
		t.Errorf("findAll calls = %d, want 2 for distinct pages", repo.findAllCalls)
	}
}

func TestDeleteInvalidatesListCache(t *testing.T) {
	ownerId := uuid.New()
	event := &entity.Event{
		Id:               uuid.New(),
		Name:             "多言語おしゃべりカフェ",
		ShortDescription: "交流イベントの運営サポートです。",
		OwnerId:          ownerId,
	}
	repo := &fakeEventRepo{events: []*entity.Event{event}}
	svc := newCachedEventService(&fakeUow{events: repo, embeddings: &fakeEmbeddingRepo{}})

	req := &dto.GetAllEventsRequest{Page: 1, PageSize: 20}
	if _, err := svc.GetAll(context.Background(), req); err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}

	if err := svc.Delete(context.Background(), ownerId, event.Id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := svc.GetAll(context.Background(), req); err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if repo.findAllCalls != 2 {
		t.Errorf("findAll calls = %d, want 2 after the cache was flushed", repo.findAllCalls)
	}
}
