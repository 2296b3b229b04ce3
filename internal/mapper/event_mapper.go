package mapper

import (
	"time"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/model"

	"gorm.io/gorm"
)

type EventMapper struct {
	tagMapper *TagMapper
}

func NewEventMapper() *EventMapper {
	return &EventMapper{
		tagMapper: NewTagMapper(),
	}
}

func (m *EventMapper) ToEntity(e *model.Event) *entity.Event {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Event{
		Id:               e.Id,
		Name:             e.Name,
		Place:            e.Place,
		StartsAt:         e.StartsAt,
		EndsAt:           e.EndsAt,
		Fee:              e.Fee,
		Capacity:         e.Capacity,
		ShortDescription: e.ShortDescription,
		LongDescription:  e.LongDescription,
		ImageURL:         e.ImageURL,
		OwnerId:          e.OwnerId,
		Tags:             m.tagMapper.ToEntities(e.Tags),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
		IsDeleted:        e.DeletedAt.Valid,
	}
}

func (m *EventMapper) ToModel(e *entity.Event) *model.Event {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Event{
		Id:               e.Id,
		Name:             e.Name,
		Place:            e.Place,
		StartsAt:         e.StartsAt,
		EndsAt:           e.EndsAt,
		Fee:              e.Fee,
		Capacity:         e.Capacity,
		ShortDescription: e.ShortDescription,
		LongDescription:  e.LongDescription,
		ImageURL:         e.ImageURL,
		OwnerId:          e.OwnerId,
		Tags:             m.tagMapper.ToModels(e.Tags),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
	}
}

func (m *EventMapper) ToEntities(events []*model.Event) []*entity.Event {
	entities := make([]*entity.Event, len(events))
	for i, e := range events {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *EventMapper) ToModels(events []*entity.Event) []*model.Event {
	models := make([]*model.Event, len(events))
	for i, e := range events {
		models[i] = m.ToModel(e)
	}
	return models
}
