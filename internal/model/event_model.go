package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Place            *string   `gorm:"type:varchar(255)"`
	StartsAt         *time.Time
	EndsAt           *time.Time
	Fee              int  `gorm:"default:0"`
	Capacity         *int
	ShortDescription string  `gorm:"type:text;not null"`
	LongDescription  *string `gorm:"type:text"`
	ImageURL         *string `gorm:"type:text"`
	OwnerId          uuid.UUID `gorm:"type:uuid;not null;index"`
	Tags             []*Tag    `gorm:"many2many:event_tags;"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Event) TableName() string {
	return "events"
}
