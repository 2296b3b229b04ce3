package implementation

import (
	"context"
	"errors"
	"time"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/mapper"
	"volunteer-matching-be/internal/model"
	"volunteer-matching-be/internal/repository/contract"
	"volunteer-matching-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepositoryImpl struct {
	db          *gorm.DB
	eventMapper *mapper.EventMapper
}

func NewApplicationRepository(db *gorm.DB) contract.ApplicationRepository {
	return &ApplicationRepositoryImpl{
		db:          db,
		eventMapper: mapper.NewEventMapper(),
	}
}

func (r *ApplicationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ApplicationRepositoryImpl) toEntity(m *model.Application) *entity.Application {
	if m == nil {
		return nil
	}

	var updatedAt *time.Time
	if !m.UpdatedAt.IsZero() {
		t := m.UpdatedAt
		updatedAt = &t
	}

	return &entity.Application{
		Id:        m.Id,
		EventId:   m.EventId,
		UserId:    m.UserId,
		Status:    m.Status,
		Event:     r.eventMapper.ToEntity(m.Event),
		CreatedAt: m.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (r *ApplicationRepositoryImpl) toModel(e *entity.Application) *model.Application {
	m := &model.Application{
		Id:        e.Id,
		EventId:   e.EventId,
		UserId:    e.UserId,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		m.UpdatedAt = *e.UpdatedAt
	}
	return m
}

func (r *ApplicationRepositoryImpl) Create(ctx context.Context, application *entity.Application) error {
	m := r.toModel(application)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*application = *r.toEntity(m)
	return nil
}

func (r *ApplicationRepositoryImpl) Update(ctx context.Context, application *entity.Application) error {
	m := r.toModel(application)
	if err := r.db.WithContext(ctx).Omit("Event").Save(m).Error; err != nil {
		return err
	}
	*application = *r.toEntity(m)
	return nil
}

func (r *ApplicationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Application{}, id).Error
}

func (r *ApplicationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Application, error) {
	var m model.Application
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *ApplicationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Application, error) {
	var models []*model.Application
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Application, len(models))
	for i, m := range models {
		entities[i] = r.toEntity(m)
	}
	return entities, nil
}

func (r *ApplicationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Application{}).Count(&count).Error
	return count, err
}
