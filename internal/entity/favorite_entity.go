package entity

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	Id        uuid.UUID
	EventId   uuid.UUID
	UserId    uuid.UUID
	Event     *Event
	CreatedAt time.Time
}
