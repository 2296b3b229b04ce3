package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFavoriteRequest struct {
	EventId uuid.UUID `json:"event_id" validate:"required"`
}

type CreateFavoriteResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetMyFavoritesResponse struct {
	Id        uuid.UUID              `json:"id"`
	Event     *EventListItemResponse `json:"event"`
	CreatedAt time.Time              `json:"created_at"`
}
