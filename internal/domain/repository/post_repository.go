package repository

import (
	"context"

	"github.com/oksasatya/devconnect-api/internal/domain/entity"
)

// PostRepository persists feed aggregates. Likes and comments ride on the
// post row and are written with it; GetByID returns (nil, nil) when the
// post does not exist.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context) ([]*entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
