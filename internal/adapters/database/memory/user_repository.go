package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portsrepo "github.com/AyurTrace/herb_trace_app/internal/core/ports/repositories"
)

type UserRepository struct {
	mu      sync.RWMutex
	users   map[string]domain.User // keyed by user id
	byEmail map[string]string      // lowercased email -> user id
}

// NewUserRepository creates an empty in-memory identity directory.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

// SaveUser persists a new user, rejecting duplicate emails.
func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, exists := r.byEmail[email]; exists {
		return apperrors.ErrDuplicate
	}
	r.users[user.UserID] = user
	r.byEmail[email] = user.UserID
	return nil
}

// FindUserByID retrieves a user by id.
func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, exists := r.users[userID]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

// FindUserByEmail retrieves a user by email, case-insensitively.
func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	userID, exists := r.byEmail[strings.ToLower(email)]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	user := r.users[userID]
	return &user, nil
}

// ListUsers retrieves all users, ordered by name.
func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
