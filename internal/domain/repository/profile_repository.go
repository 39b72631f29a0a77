package repository

import (
	"context"

	"github.com/oksasatya/devconnect-api/internal/domain/entity"
)

// ProfileRepository persists profile aggregates. The whole aggregate,
// including experience and education, is written as a unit; GetByUserID
// returns (nil, nil) when the user has no profile.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	List(ctx context.Context) ([]*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
	DeleteByUserID(ctx context.Context, userID string) error
}
