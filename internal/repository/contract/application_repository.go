package contract

import (
	"context"

	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *entity.Application) error
	Update(ctx context.Context, application *entity.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Application, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Application, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
