package contract

import (
	"context"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *entity.Favorite) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Favorite, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Favorite, error)
}
