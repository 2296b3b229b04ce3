package implementation

import (
	"context"
	"errors"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/mapper"
	"volunteer-matching-be/internal/model"
	"volunteer-matching-be/internal/repository/contract"
	"volunteer-matching-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoriteRepositoryImpl struct {
	db          *gorm.DB
	eventMapper *mapper.EventMapper
}

func NewFavoriteRepository(db *gorm.DB) contract.FavoriteRepository {
	return &FavoriteRepositoryImpl{
		db:          db,
		eventMapper: mapper.NewEventMapper(),
	}
}

func (r *FavoriteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FavoriteRepositoryImpl) toEntity(m *model.Favorite) *entity.Favorite {
	if m == nil {
		return nil
	}
	return &entity.Favorite{
		Id:        m.Id,
		EventId:   m.EventId,
		UserId:    m.UserId,
		Event:     r.eventMapper.ToEntity(m.Event),
		CreatedAt: m.CreatedAt,
	}
}

func (r *FavoriteRepositoryImpl) Create(ctx context.Context, favorite *entity.Favorite) error {
	m := &model.Favorite{
		Id:        favorite.Id,
		EventId:   favorite.EventId,
		UserId:    favorite.UserId,
		CreatedAt: favorite.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*favorite = *r.toEntity(m)
	return nil
}

func (r *FavoriteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Favorite{}, id).Error
}

func (r *FavoriteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Favorite, error) {
	var m model.Favorite
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *FavoriteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Favorite, error) {
	var models []*model.Favorite
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Favorite, len(models))
	for i, m := range models {
		entities[i] = r.toEntity(m)
	}
	return entities, nil
}
