package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"volunteer-matching-be/internal/dto"
	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/repository/specification"
	"volunteer-matching-be/internal/repository/unitofwork"
	"volunteer-matching-be/pkg/embedding"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const defaultEventPageSize = 20

type IEventService interface {
	Create(ctx context.Context, ownerId uuid.UUID, req *dto.CreateEventRequest) (*dto.CreateEventResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowEventResponse, error)
	Update(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateEventRequest) (*dto.UpdateEventResponse, error)
	Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error
	GetAll(ctx context.Context, req *dto.GetAllEventsRequest) (*dto.GetAllEventsResponse, error)
	SemanticSearch(ctx context.Context, search string) ([]*dto.SemanticSearchEventResponse, error)
}

type eventService struct {
	uowFactory        unitofwork.RepositoryFactory
	publisherService  IPublisherService
	embeddingProvider embedding.EmbeddingProvider
	listCache         *gocache.Cache
}

func NewEventService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	embeddingProvider embedding.EmbeddingProvider,
) IEventService {
	return &eventService{
		uowFactory:        uowFactory,
		publisherService:  publisherService,
		embeddingProvider: embeddingProvider,
		listCache:         gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// eventListCacheKey covers every filter and paging knob; keys vary per query,
// so mutations flush the whole cache rather than chase individual entries.
func eventListCacheKey(req *dto.GetAllEventsRequest) string {
	tagId := ""
	if req.TagId != nil {
		tagId = req.TagId.String()
	}
	return fmt.Sprintf("events:all:%s:%s:%t:%d:%d",
		req.Keyword, tagId, req.Upcoming, req.Page, req.PageSize)
}

func (s *eventService) Create(ctx context.Context, ownerId uuid.UUID, req *dto.CreateEventRequest) (*dto.CreateEventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	event := entity.Event{
		Id:               uuid.New(),
		Name:             req.Name,
		Place:            req.Place,
		StartsAt:         req.StartsAt,
		EndsAt:           req.EndsAt,
		Fee:              req.Fee,
		Capacity:         req.Capacity,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		ImageURL:         req.ImageURL,
		OwnerId:          ownerId,
		CreatedAt:        time.Now(),
	}

	err := uow.EventRepository().Create(ctx, &event)
	if err != nil {
		return nil, err
	}

	if len(req.TagIds) > 0 {
		if err := uow.EventRepository().ReplaceTags(ctx, event.Id, req.TagIds); err != nil {
			return nil, err
		}
	}

	if err := s.publishEmbedMessage(ctx, event.Id); err != nil {
		return nil, err
	}

	s.listCache.Flush()

	return &dto.CreateEventResponse{
		Id: event.Id,
	}, nil
}

func (s *eventService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowEventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	event, err := uow.EventRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.WithTags{},
	)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil // Not found
	}

	applicationCount, err := uow.ApplicationRepository().Count(ctx,
		specification.ByEventID{EventID: event.Id},
		specification.Filter("status", entity.ApplicationStatusApplied),
	)
	if err != nil {
		return nil, err
	}

	return &dto.ShowEventResponse{
		Id:               event.Id,
		Name:             event.Name,
		Place:            event.Place,
		StartsAt:         event.StartsAt,
		EndsAt:           event.EndsAt,
		Fee:              event.Fee,
		Capacity:         event.Capacity,
		ShortDescription: event.ShortDescription,
		LongDescription:  event.LongDescription,
		ImageURL:         event.ImageURL,
		OwnerId:          event.OwnerId,
		Tags:             toTagDTOs(event.Tags),
		ApplicationCount: applicationCount,
		CreatedAt:        event.CreatedAt,
		UpdatedAt:        event.UpdatedAt,
	}, nil
}

func (s *eventService) Update(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateEventRequest) (*dto.UpdateEventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	event, err := uow.EventRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.EventOwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "event not found")
	}

	now := time.Now()
	event.Name = req.Name
	event.Place = req.Place
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	event.Fee = req.Fee
	event.Capacity = req.Capacity
	event.ShortDescription = req.ShortDescription
	event.LongDescription = req.LongDescription
	event.ImageURL = req.ImageURL
	event.UpdatedAt = &now

	if err := uow.EventRepository().Update(ctx, event); err != nil {
		return nil, err
	}

	if req.TagIds != nil {
		if err := uow.EventRepository().ReplaceTags(ctx, event.Id, req.TagIds); err != nil {
			return nil, err
		}
	}

	if err := s.publishEmbedMessage(ctx, event.Id); err != nil {
		return nil, err
	}

	s.listCache.Flush()

	return &dto.UpdateEventResponse{
		Id: event.Id,
	}, nil
}

func (s *eventService) Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	event, err := uow.EventRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.EventOwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return err
	}
	if event == nil {
		return fiber.NewError(fiber.StatusNotFound, "event not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.EventRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.EventEmbeddingRepository().DeleteByEventId(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.listCache.Flush()
	return nil
}

func (s *eventService) GetAll(ctx context.Context, req *dto.GetAllEventsRequest) (*dto.GetAllEventsResponse, error) {
	cacheKey := eventListCacheKey(req)
	if cached, found := s.listCache.Get(cacheKey); found {
		return cached.(*dto.GetAllEventsResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	filterSpecs := []specification.Specification{}
	if req.Keyword != "" {
		filterSpecs = append(filterSpecs, specification.EventKeyword{Keyword: req.Keyword})
	}
	if req.TagId != nil {
		filterSpecs = append(filterSpecs, specification.EventHasTag{TagID: *req.TagId})
	}
	if req.Upcoming {
		filterSpecs = append(filterSpecs, specification.EventUpcoming{Now: time.Now()})
	}

	total, err := uow.EventRepository().Count(ctx, filterSpecs...)
	if err != nil {
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultEventPageSize
	}

	listSpecs := append(filterSpecs,
		specification.WithTags{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)

	events, err := uow.EventRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.EventListItemResponse, 0, len(events))
	for _, event := range events {
		items = append(items, *toEventListItem(event))
	}

	response := &dto.GetAllEventsResponse{
		Events: items,
		Total:  total,
	}
	s.listCache.Set(cacheKey, response, gocache.DefaultExpiration)
	return response, nil
}

func (s *eventService) SemanticSearch(ctx context.Context, search string) ([]*dto.SemanticSearchEventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	embeddingRes, err := s.embeddingProvider.Generate(search, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}

	// A looser threshold than the advisor: browsing tolerates weaker matches
	scored, err := uow.EventEmbeddingRepository().SearchSimilarWithScore(
		ctx, embeddingRes.Embedding.Values, 10, 0.4,
	)
	if err != nil {
		return nil, err
	}

	if len(scored) == 0 {
		return []*dto.SemanticSearchEventResponse{}, nil
	}

	eventIds := make([]uuid.UUID, 0, len(scored))
	scoreMap := make(map[uuid.UUID]float64, len(scored))
	for _, sc := range scored {
		if _, ok := scoreMap[sc.Embedding.EventId]; ok {
			continue
		}
		eventIds = append(eventIds, sc.Embedding.EventId)
		scoreMap[sc.Embedding.EventId] = sc.Similarity
	}

	events, err := uow.EventRepository().FindAll(ctx, specification.ByIDs{IDs: eventIds})
	if err != nil {
		return nil, err
	}
	eventMap := make(map[uuid.UUID]*entity.Event, len(events))
	for _, e := range events {
		eventMap[e.Id] = e
	}

	// keep the similarity ranking of the vector search
	results := make([]*dto.SemanticSearchEventResponse, 0, len(eventIds))
	for _, id := range eventIds {
		event, ok := eventMap[id]
		if !ok {
			continue
		}
		results = append(results, &dto.SemanticSearchEventResponse{
			Id:               event.Id,
			Name:             event.Name,
			Place:            event.Place,
			StartsAt:         event.StartsAt,
			Fee:              event.Fee,
			ShortDescription: event.ShortDescription,
			ImageURL:         event.ImageURL,
			RelevanceScore:   scoreMap[id],
		})
	}

	return results, nil
}

func (s *eventService) publishEmbedMessage(ctx context.Context, eventId uuid.UUID) error {
	payload := dto.PublishEmbedEventMessage{
		EventId: eventId,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payloadJson)
}

func toTagDTOs(tags []*entity.Tag) []dto.TagDTO {
	result := make([]dto.TagDTO, 0, len(tags))
	for _, tag := range tags {
		result = append(result, dto.TagDTO{
			Id:   tag.Id,
			Name: tag.Name,
		})
	}
	return result
}

func toEventListItem(event *entity.Event) *dto.EventListItemResponse {
	return &dto.EventListItemResponse{
		Id:               event.Id,
		Name:             event.Name,
		Place:            event.Place,
		StartsAt:         event.StartsAt,
		Fee:              event.Fee,
		Capacity:         event.Capacity,
		ShortDescription: event.ShortDescription,
		ImageURL:         event.ImageURL,
		Tags:             toTagDTOs(event.Tags),
	}
}
