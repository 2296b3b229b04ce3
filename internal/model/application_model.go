package model

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventId   uuid.UUID `gorm:"type:uuid;not null;index:idx_application_event_user,unique"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_application_event_user,unique"`
	Status    string    `gorm:"type:varchar(20);not null;default:applied"`
	Event     *Event    `gorm:"foreignKey:EventId"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Application) TableName() string {
	return "applications"
}
