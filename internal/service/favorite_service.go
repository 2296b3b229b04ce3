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

type IFavoriteService interface {
	Add(ctx context.Context, userId uuid.UUID, req *dto.CreateFavoriteRequest) (*dto.CreateFavoriteResponse, error)
	Remove(ctx context.Context, userId uuid.UUID, eventId uuid.UUID) error
	GetMine(ctx context.Context, userId uuid.UUID) ([]*dto.GetMyFavoritesResponse, error)
}

type favoriteService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFavoriteService(uowFactory unitofwork.RepositoryFactory) IFavoriteService {
	return &favoriteService{
		uowFactory: uowFactory,
	}
}

func (s *favoriteService) Add(ctx context.Context, userId uuid.UUID, req *dto.CreateFavoriteRequest) (*dto.CreateFavoriteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event, err := uow.EventRepository().FindOne(ctx, specification.ByID{ID: req.EventId})
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "event not found")
	}

	existing, err := uow.FavoriteRepository().FindOne(ctx,
		specification.ByEventID{EventID: req.EventId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// idempotent: favoriting twice returns the original favorite
		return &dto.CreateFavoriteResponse{Id: existing.Id}, nil
	}

	favorite := entity.Favorite{
		Id:        uuid.New(),
		EventId:   req.EventId,
		UserId:    userId,
		CreatedAt: time.Now(),
	}
	if err := uow.FavoriteRepository().Create(ctx, &favorite); err != nil {
		return nil, err
	}

	return &dto.CreateFavoriteResponse{
		Id: favorite.Id,
	}, nil
}

func (s *favoriteService) Remove(ctx context.Context, userId uuid.UUID, eventId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	favorite, err := uow.FavoriteRepository().FindOne(ctx,
		specification.ByEventID{EventID: eventId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if favorite == nil {
		return fiber.NewError(fiber.StatusNotFound, "favorite not found")
	}

	return uow.FavoriteRepository().Delete(ctx, favorite.Id)
}

func (s *favoriteService) GetMine(ctx context.Context, userId uuid.UUID) ([]*dto.GetMyFavoritesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	favorites, err := uow.FavoriteRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.WithEvent{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetMyFavoritesResponse, 0, len(favorites))
	for _, favorite := range favorites {
		item := &dto.GetMyFavoritesResponse{
			Id:        favorite.Id,
			CreatedAt: favorite.CreatedAt,
		}
		if favorite.Event != nil {
			item.Event = toEventListItem(favorite.Event)
		}
		result = append(result, item)
	}
	return result, nil
}
