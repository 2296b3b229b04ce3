package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Name             string      `json:"name" validate:"required"`
	Place            *string     `json:"place"`
	StartsAt         *time.Time  `json:"starts_at"`
	EndsAt           *time.Time  `json:"ends_at"`
	Fee              int         `json:"fee" validate:"gte=0"`
	Capacity         *int        `json:"capacity"`
	ShortDescription string      `json:"short_description" validate:"required"`
	LongDescription  *string     `json:"long_description"`
	ImageURL         *string     `json:"image_url"`
	TagIds           []uuid.UUID `json:"tag_ids"`
}

type CreateEventResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowEventResponse struct {
	Id               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Place            *string    `json:"place"`
	StartsAt         *time.Time `json:"starts_at"`
	EndsAt           *time.Time `json:"ends_at"`
	Fee              int        `json:"fee"`
	Capacity         *int       `json:"capacity"`
	ShortDescription string     `json:"short_description"`
	LongDescription  *string    `json:"long_description"`
	ImageURL         *string    `json:"image_url"`
	OwnerId          uuid.UUID  `json:"owner_id"`
	Tags             []TagDTO   `json:"tags"`
	ApplicationCount int64      `json:"application_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

type UpdateEventRequest struct {
	Id               uuid.UUID
	Name             string      `json:"name" validate:"required"`
	Place            *string     `json:"place"`
	StartsAt         *time.Time  `json:"starts_at"`
	EndsAt           *time.Time  `json:"ends_at"`
	Fee              int         `json:"fee" validate:"gte=0"`
	Capacity         *int        `json:"capacity"`
	ShortDescription string      `json:"short_description" validate:"required"`
	LongDescription  *string     `json:"long_description"`
	ImageURL         *string     `json:"image_url"`
	TagIds           []uuid.UUID `json:"tag_ids"`
}

type UpdateEventResponse struct {
	Id uuid.UUID `json:"id"`
}

// GetAllEventsRequest carries list filters parsed from the query string
type GetAllEventsRequest struct {
	Keyword  string     `query:"keyword"`
	TagId    *uuid.UUID `query:"tag_id"`
	Upcoming bool       `query:"upcoming"`
	Page     int        `query:"page"`
	PageSize int        `query:"page_size"`
}

type EventListItemResponse struct {
	Id               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Place            *string    `json:"place"`
	StartsAt         *time.Time `json:"starts_at"`
	Fee              int        `json:"fee"`
	Capacity         *int       `json:"capacity"`
	ShortDescription string     `json:"short_description"`
	ImageURL         *string    `json:"image_url"`
	Tags             []TagDTO   `json:"tags"`
}

type GetAllEventsResponse struct {
	Events []EventListItemResponse `json:"events"`
	Total  int64                   `json:"total"`
}

type SemanticSearchEventResponse struct {
	Id               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Place            *string    `json:"place"`
	StartsAt         *time.Time `json:"starts_at"`
	Fee              int        `json:"fee"`
	ShortDescription string     `json:"short_description"`
	ImageURL         *string    `json:"image_url"`
	RelevanceScore   float64    `json:"relevance_score"` // 0.0-1.0 cosine similarity
}
