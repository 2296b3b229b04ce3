package service

import (
	"context"
	"errors"

	"volunteer-matching-be/internal/constant"
	"volunteer-matching-be/internal/dto"
	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/pkg/logger"
	"volunteer-matching-be/internal/repository/specification"
	"volunteer-matching-be/internal/repository/unitofwork"
	"volunteer-matching-be/pkg/advisor"
	"volunteer-matching-be/pkg/advisor/retrieval"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdvisorService interface {
	Chat(ctx context.Context, req *dto.AdvisorChatRequest) (*dto.AdvisorChatResponse, error)
}

type advisorService struct {
	advisor *advisor.Advisor
	logger  logger.ILogger
}

func NewAdvisorService(adv *advisor.Advisor, log logger.ILogger) IAdvisorService {
	return &advisorService{
		advisor: adv,
		logger:  log,
	}
}

func (s *advisorService) Chat(ctx context.Context, req *dto.AdvisorChatRequest) (*dto.AdvisorChatResponse, error) {
	history := make([]advisor.Message, 0, len(req.Messages))
	for _, msg := range req.Messages {
		history = append(history, advisor.Message{
			Role:    msg.Role,
			Content: msg.Content,
			Extras:  msg.Extras,
		})
	}

	result, err := s.advisor.HandleTurn(ctx, history)
	if err != nil {
		if errors.Is(err, advisor.ErrEmptyQuery) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "history must contain a user message")
		}
		if errors.Is(err, advisor.ErrGeneration) {
			// Stable apology instead of a partial answer
			s.logger.Error("advisor", "Turn failed at generation", map[string]interface{}{
				"error": err.Error(),
			})
			return &dto.AdvisorChatResponse{
				Reply: constant.AdvisorGenerationFailureMessage,
			}, nil
		}
		return nil, err
	}

	s.logger.Info("advisor", "Turn completed", map[string]interface{}{
		"history_len":  len(history),
		"record_count": len(result.SupportingRecords),
		"has_options":  result.Options != nil,
	})

	return &dto.AdvisorChatResponse{
		Reply:   result.Prose,
		Options: result.Options,
		Events:  toAdvisorEventDTOs(result.SupportingRecords),
	}, nil
}

func toAdvisorEventDTOs(events []*entity.Event) []dto.AdvisorEventDTO {
	result := make([]dto.AdvisorEventDTO, 0, len(events))
	for _, event := range events {
		result = append(result, dto.AdvisorEventDTO{
			Id:               event.Id,
			Name:             event.Name,
			Place:            event.Place,
			StartsAt:         event.StartsAt,
			EndsAt:           event.EndsAt,
			Fee:              event.Fee,
			Capacity:         event.Capacity,
			ShortDescription: event.ShortDescription,
			ImageURL:         event.ImageURL,
		})
	}
	return result
}

// EventVectorSearcher adapts the embedding repository to the retrieval stage
type EventVectorSearcher struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewEventVectorSearcher(uowFactory unitofwork.RepositoryFactory) *EventVectorSearcher {
	return &EventVectorSearcher{uowFactory: uowFactory}
}

func (s *EventVectorSearcher) Search(ctx context.Context, queryVector []float32, limit int, threshold float64) ([]retrieval.ScoredHit, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.EventEmbeddingRepository().SearchSimilarWithScore(ctx, queryVector, limit, threshold)
	if err != nil {
		return nil, err
	}

	hits := make([]retrieval.ScoredHit, 0, len(scored))
	for _, sc := range scored {
		hits = append(hits, retrieval.ScoredHit{
			EventId:  sc.Embedding.EventId,
			Score:    sc.Similarity,
			Document: sc.Embedding.Document,
		})
	}
	return hits, nil
}

// EventRecordStore adapts the event repository to retrieval hydration
type EventRecordStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewEventRecordStore(uowFactory unitofwork.RepositoryFactory) *EventRecordStore {
	return &EventRecordStore{uowFactory: uowFactory}
}

func (s *EventRecordStore) GetByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.Event, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.EventRepository().FindAll(ctx,
		specification.ByIDs{IDs: ids},
		specification.WithTags{},
	)
}
