package model

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventId   uuid.UUID `gorm:"type:uuid;not null;index:idx_favorite_event_user,unique"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_favorite_event_user,unique"`
	Event     *Event    `gorm:"foreignKey:EventId"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Favorite) TableName() string {
	return "favorites"
}
