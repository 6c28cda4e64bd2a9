package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/AyurTrace/herb_trace_app/internal/apperrors"
	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
	portssvc "github.com/AyurTrace/herb_trace_app/internal/core/ports/services"
	"github.com/AyurTrace/herb_trace_app/internal/core/services"
	"github.com/AyurTrace/herb_trace_app/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- Authenticate Tests ---

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("demo123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "USR-001", Email: "farmer@ayur.com", PasswordHash: hash, Role: domain.RoleFarmer}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "farmer@ayur.com").Return(user, nil).Once()

	authed, err := suite.service.Authenticate(ctx, "farmer@ayur.com", "demo123")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authed.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("demo123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "USR-001", Email: "farmer@ayur.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "farmer@ayur.com").Return(user, nil).Once()

	authed, err := suite.service.Authenticate(ctx, "farmer@ayur.com", "nottheone")

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@ayur.com").Return(nil, apperrors.ErrNotFound).Once()

	authed, err := suite.service.Authenticate(ctx, "nobody@ayur.com", "demo123")

	suite.Require().Error(err)
	suite.Nil(authed)
	// Unknown email must be indistinguishable from a wrong password
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

// --- GetUserByID Tests ---

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, "USR-999").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, "USR-999")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ListUsers Tests ---

func (suite *UserServiceTestSuite) TestListUsers_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockUserRepo.On("ListUsers", ctx).Return(nil, nil).Once()

	users, err := suite.service.ListUsers(ctx)

	suite.Require().NoError(err)
	suite.NotNil(users)
	suite.Empty(users)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
