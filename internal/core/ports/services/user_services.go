package services

import (
	"context"

	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
)

// UserReaderSvc defines read operations against the identity directory
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves all users in the directory.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// AuthSvc authenticates against the directory. The failure outcome is
// deliberately generic: unknown email and wrong password are
// indistinguishable to the caller.
type AuthSvc interface {
	// Authenticate matches email and password against the directory and
	// returns the matched identity.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	AuthSvc
}
