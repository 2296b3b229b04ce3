package unitofwork

import (
	"context"

	"volunteer-matching-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	EventRepository() contract.EventRepository
	EventEmbeddingRepository() contract.EventEmbeddingRepository
	TagRepository() contract.TagRepository
	ApplicationRepository() contract.ApplicationRepository
	FavoriteRepository() contract.FavoriteRepository
}
