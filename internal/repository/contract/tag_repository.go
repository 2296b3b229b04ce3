package contract

import (
	"context"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/repository/specification"
)

type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tag, error)
}
