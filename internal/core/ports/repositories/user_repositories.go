package repositories

import (
	"context"

	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
)

// UserReader defines read operations for users.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	// FindUserByEmail returns apperrors.ErrNotFound when no account exists.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// email is already registered.
	SaveUser(ctx context.Context, user *domain.User) error
}

// UserRepositoryFacade combines user read and write operations.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
