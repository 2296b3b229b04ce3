package service

import (
	"context"
	"strings"
	"time"

	"volunteer-matching-be/internal/dto"
	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/repository/specification"
	"volunteer-matching-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const tagListCacheKey = "tags:all"

type ITagService interface {
	Create(ctx context.Context, req *dto.CreateTagRequest) (*dto.CreateTagResponse, error)
	GetAll(ctx context.Context) ([]*dto.TagDTO, error)
}

type tagService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewTagService(uowFactory unitofwork.RepositoryFactory) ITagService {
	return &tagService{
		uowFactory: uowFactory,
		cache:      gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *tagService) Create(ctx context.Context, req *dto.CreateTagRequest) (*dto.CreateTagResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "tag name must not be blank")
	}

	existing, err := uow.TagRepository().FindOne(ctx, specification.Filter("name", name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.CreateTagResponse{Id: existing.Id}, nil
	}

	tag := entity.Tag{
		Id:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uow.TagRepository().Create(ctx, &tag); err != nil {
		return nil, err
	}

	s.cache.Delete(tagListCacheKey)

	return &dto.CreateTagResponse{
		Id: tag.Id,
	}, nil
}

func (s *tagService) GetAll(ctx context.Context) ([]*dto.TagDTO, error) {
	if cached, found := s.cache.Get(tagListCacheKey); found {
		return cached.([]*dto.TagDTO), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	tags, err := uow.TagRepository().FindAll(ctx, specification.OrderBy{Field: "name", Desc: false})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TagDTO, 0, len(tags))
	for _, tag := range tags {
		result = append(result, &dto.TagDTO{
			Id:   tag.Id,
			Name: tag.Name,
		})
	}

	s.cache.Set(tagListCacheKey, result, gocache.DefaultExpiration)
	return result, nil
}
