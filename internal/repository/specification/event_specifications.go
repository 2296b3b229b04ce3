package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventOwnedBy filters events created by a user (events use owner_id, not user_id)
type EventOwnedBy struct {
	OwnerID uuid.UUID
}

func (s EventOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.OwnerID)
}

// EventKeyword matches name or short description, case-insensitive
type EventKeyword struct {
	Keyword string
}

func (s EventKeyword) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Keyword + "%"
	return db.Where("name ILIKE ? OR short_description ILIKE ?", pattern, pattern)
}

// EventHasTag filters events linked to a tag through event_tags
type EventHasTag struct {
	TagID uuid.UUID
}

func (s EventHasTag) Apply(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN event_tags ON event_tags.event_id = events.id").
		Where("event_tags.tag_id = ?", s.TagID)
}

// EventUpcoming keeps events that have not started yet (undecided dates included)
type EventUpcoming struct {
	Now time.Time
}

func (s EventUpcoming) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("starts_at IS NULL OR starts_at >= ?", s.Now)
}

// WithTags preloads the tag association
type WithTags struct{}

func (s WithTags) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Tags")
}

// WithEvent preloads the event association (applications, favorites)
type WithEvent struct{}

func (s WithEvent) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Event").Preload("Event.Tags")
}

// ByEventID filters child rows by their event
type ByEventID struct {
	EventID uuid.UUID
}

func (s ByEventID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_id = ?", s.EventID)
}
