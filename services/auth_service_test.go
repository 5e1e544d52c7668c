package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Tholoanasello/HamiltonBlog1/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockAdminRepository is a mock type for the AdminRepository interface
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func adminRowWithPassword(t *testing.T, password string) *models.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &models.AdminUser{ID: 1, Username: "admin", PasswordHash: string(hash)}
}

func TestLogin_CorrectPassword(t *testing.T) {
	repo := new(MockAdminRepository)
	repo.On("GetByUsername", mock.Anything, "admin").Return(adminRowWithPassword(t, "admin123"), nil)

	auth := NewAuthService(repo, NewSessionManager(), "admin")

	token, err := auth.Login(context.Background(), "admin123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, auth.IsAuthenticated(token))
	repo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockAdminRepository)
	repo.On("GetByUsername", mock.Anything, "admin").Return(adminRowWithPassword(t, "admin123"), nil)

	auth := NewAuthService(repo, NewSessionManager(), "admin")

	token, err := auth.Login(context.Background(), "letmein")
	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.Empty(t, token)
	repo.AssertExpectations(t)
}

func TestLogin_MissingCredentialRow(t *testing.T) {
	repo := new(MockAdminRepository)
	repo.On("GetByUsername", mock.Anything, "admin").Return(nil, nil)

	auth := NewAuthService(repo, NewSessionManager(), "admin")

	_, err := auth.Login(context.Background(), "admin123")
	assert.ErrorIs(t, err, ErrCredentialLookup)
}

func TestLogin_CredentialFetchError(t *testing.T) {
	repo := new(MockAdminRepository)
	repo.On("GetByUsername", mock.Anything, "admin").Return(nil, errors.New("store unreachable"))

	auth := NewAuthService(repo, NewSessionManager(), "admin")

	_, err := auth.Login(context.Background(), "admin123")
	assert.ErrorIs(t, err, ErrCredentialLookup)
}

func TestIsAuthenticated_UnknownToken(t *testing.T) {
	auth := NewAuthService(new(MockAdminRepository), NewSessionManager(), "admin")

	assert.False(t, auth.IsAuthenticated(""))
	assert.False(t, auth.IsAuthenticated("not-a-live-token"))
}
