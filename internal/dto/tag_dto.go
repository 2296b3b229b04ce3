package dto

import (
	"github.com/google/uuid"
)

type TagDTO struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type CreateTagResponse struct {
	Id uuid.UUID `json:"id"`
}
