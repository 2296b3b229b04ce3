package service

import (
	"context"
	"time"

	"volunteer-matching-be/internal/dto"
	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/repository/specification"
	"volunteer-matching-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IApplicationService interface {
	Apply(ctx context.Context, userId uuid.UUID, req *dto.CreateApplicationRequest) (*dto.CreateApplicationResponse, error)
	Cancel(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	GetMine(ctx context.Context, userId uuid.UUID) ([]*dto.GetMyApplicationsResponse, error)
}

type applicationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewApplicationService(uowFactory unitofwork.RepositoryFactory) IApplicationService {
	return &applicationService{
		uowFactory: uowFactory,
	}
}

func (s *applicationService) Apply(ctx context.Context, userId uuid.UUID, req *dto.CreateApplicationRequest) (*dto.CreateApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event, err := uow.EventRepository().FindOne(ctx, specification.ByID{ID: req.EventId})
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "event not found")
	}

	existing, err := uow.ApplicationRepository().FindOne(ctx,
		specification.ByEventID{EventID: req.EventId},
		specification.OwnedBy{UserID: userId},
		specification.Filter("status", entity.ApplicationStatusApplied),
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "already applied to this event")
	}

	if event.Capacity != nil {
		applied, err := uow.ApplicationRepository().Count(ctx,
			specification.ByEventID{EventID: req.EventId},
			specification.Filter("status", entity.ApplicationStatusApplied),
		)
		if err != nil {
			return nil, err
		}
		if applied >= int64(*event.Capacity) {
			return nil, fiber.NewError(fiber.StatusConflict, "event is already full")
		}
	}

	application := entity.Application{
		Id:        uuid.New(),
		EventId:   req.EventId,
		UserId:    userId,
		Status:    entity.ApplicationStatusApplied,
		CreatedAt: time.Now(),
	}
	if err := uow.ApplicationRepository().Create(ctx, &application); err != nil {
		return nil, err
	}

	return &dto.CreateApplicationResponse{
		Id: application.Id,
	}, nil
}

func (s *applicationService) Cancel(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	application, err := uow.ApplicationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if application == nil {
		return fiber.NewError(fiber.StatusNotFound, "application not found")
	}
	if application.Status == entity.ApplicationStatusCanceled {
		return nil // already canceled, nothing to do
	}

	now := time.Now()
	application.Status = entity.ApplicationStatusCanceled
	application.UpdatedAt = &now
	return uow.ApplicationRepository().Update(ctx, application)
}

func (s *applicationService) GetMine(ctx context.Context, userId uuid.UUID) ([]*dto.GetMyApplicationsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	applications, err := uow.ApplicationRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.WithEvent{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetMyApplicationsResponse, 0, len(applications))
	for _, application := range applications {
		item := &dto.GetMyApplicationsResponse{
			Id:        application.Id,
			Status:    application.Status,
			CreatedAt: application.CreatedAt,
		}
		if application.Event != nil {
			item.Event = toEventListItem(application.Event)
		}
		result = append(result, item)
	}
	return result, nil
}
