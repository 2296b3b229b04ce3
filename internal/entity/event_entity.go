package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a volunteer event as the domain sees it. Place, time window and
// capacity may all be undecided at publish time.
type Event struct {
	Id               uuid.UUID
	Name             string
	Place            *string
	StartsAt         *time.Time
	EndsAt           *time.Time
	Fee              int
	Capacity         *int
	ShortDescription string
	LongDescription  *string
	ImageURL         *string
	OwnerId          uuid.UUID
	Tags             []*Tag
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}
