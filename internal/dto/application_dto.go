package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateApplicationRequest struct {
	EventId uuid.UUID `json:"event_id" validate:"required"`
}

type CreateApplicationResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetMyApplicationsResponse struct {
	Id        uuid.UUID              `json:"id"`
	Status    string                 `json:"status"`
	Event     *EventListItemResponse `json:"event"`
	CreatedAt time.Time              `json:"created_at"`
}
