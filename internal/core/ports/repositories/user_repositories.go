package repositories

import (
	"context"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
)

// UserReader defines read operations for the identity directory
type UserReader interface {
	// FindUserByID retrieves a specific user by id.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a specific user by email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves all users in the directory.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for the identity directory
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate if the
	// email is already registered.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
