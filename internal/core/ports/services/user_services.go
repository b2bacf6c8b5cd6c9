package services

import (
	"context"

	"github.com/istafrica-dennw/trucks-app/internal/core/domain"
	"github.com/istafrica-dennw/trucks-app/internal/dto"
)

// UserSvcFacade handles account registration and credential checks. Token
// signing lives in the auth handler; the service only vouches for identities.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	// AuthenticateUser verifies the credentials and returns the user, or
	// apperrors.ErrForbidden on a mismatch.
	AuthenticateUser(ctx context.Context, req dto.LoginRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
