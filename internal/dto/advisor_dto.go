package dto

import (
	"time"

	"github.com/google/uuid"
)

// AdvisorMessageDTO is one turn of client-held conversation history. Extras
// carries attachments from earlier assistant turns (shown events, suggested
// options); the backend echoes them back but never forwards them to the model.
type AdvisorMessageDTO struct {
	Role    string         `json:"role" validate:"required,oneof=user assistant system"`
	Content string         `json:"content" validate:"required"`
	Extras  map[string]any `json:"extras,omitempty"`
}

type AdvisorChatRequest struct {
	Messages []AdvisorMessageDTO `json:"messages" validate:"required,min=1,dive"`
}

// AdvisorEventDTO is the event card attached to an advisor reply
type AdvisorEventDTO struct {
	Id               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Place            *string    `json:"place"`
	StartsAt         *time.Time `json:"starts_at"`
	EndsAt           *time.Time `json:"ends_at"`
	Fee              int        `json:"fee"`
	Capacity         *int       `json:"capacity"`
	ShortDescription string     `json:"short_description"`
	ImageURL         *string    `json:"image_url"`
}

type AdvisorChatResponse struct {
	Reply   string            `json:"reply"`
	Options []string          `json:"options,omitempty"`
	Events  []AdvisorEventDTO `json:"events,omitempty"`
}
