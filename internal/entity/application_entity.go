package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationStatusApplied  = "applied"
	ApplicationStatusCanceled = "canceled"
)

type Application struct {
	Id        uuid.UUID
	EventId   uuid.UUID
	UserId    uuid.UUID
	Status    string
	Event     *Event
	CreatedAt time.Time
	UpdatedAt *time.Time
}
