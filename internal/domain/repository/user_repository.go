package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/devconnect-api/internal/domain/entity"
)

// ErrDuplicateEmail is returned by Create when the email is already taken.
// The store's unique constraint raises it even when two registrations race
// past any application-level pre-check.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines the interface for user-related database operations.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}
