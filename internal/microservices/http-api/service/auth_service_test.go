package service

import (
	"testing"
	"time"

	"agriconnect/internal/config"
	"agriconnect/internal/microservices/http-api/models"
	"agriconnect/internal/middleware/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockRefreshTokenRepository mocks the refresh token store
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 168 * time.Hour,
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, authTestConfig())

	userRepo.On("FindByUsername", "taken").Return(&models.User{ID: "u1", Username: "taken"}, nil)

	_, err := svc.Register("taken", "taken@example.com", "password123")

	assert.ErrorIs(t, err, ErrNameInUse)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, authTestConfig())

	userRepo.On("FindByUsername", "fresh").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", "taken@example.com").Return(&models.User{ID: "u1"}, nil)

	_, err := svc.Register("fresh", "taken@example.com", "password123")

	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestRegister_HashesPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, authTestConfig())

	userRepo.On("FindByUsername", "fresh").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", "fresh@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.Password != "password123" && auth.VerifyPassword(u.Password, "password123") == nil
	})).Return(nil)

	user, err := svc.Register("fresh", "fresh@example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "fresh", user.Username)
	userRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, authTestConfig())

	hashed, _ := auth.HashPassword("correct-password")
	userRepo.On("FindByUsername", "ana").Return(&models.User{ID: "u1", Username: "ana", Password: hashed}, nil)

	_, _, _, err := svc.Login("ana", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokenRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLogin_IssuesValidatableToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, authTestConfig())

	hashed, _ := auth.HashPassword("correct-password")
	userRepo.On("FindByUsername", "ana").Return(&models.User{ID: "u1", Username: "ana", Password: hashed}, nil)
	tokenRepo.On("Create", mock.Anything).Return(nil)

	accessToken, refreshToken, user, err := svc.Login("ana", "correct-password")

	assert.NoError(t, err)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, "u1", user.ID)

	claims, err := svc.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ana", claims.Username)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), authTestConfig())

	_, err := svc.ValidateToken("not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshAccessToken_Expired(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, authTestConfig())

	tokenRepo.On("FindByToken", "old-token").Return(&models.RefreshToken{
		ID:        "rt1",
		UserID:    "u1",
		Token:     "old-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	tokenRepo.On("Delete", "rt1").Return(nil)

	_, err := svc.RefreshAccessToken("old-token")

	assert.Error(t, err)
	tokenRepo.AssertCalled(t, "Delete", "rt1")
}

func TestRefreshAccessToken_Valid(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, authTestConfig())

	tokenRepo.On("FindByToken", "good-token").Return(&models.RefreshToken{
		ID:        "rt1",
		UserID:    "u1",
		Token:     "good-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	userRepo.On("FindByID", "u1").Return(&models.User{ID: "u1", Username: "ana"}, nil)

	accessToken, err := svc.RefreshAccessToken("good-token")

	assert.NoError(t, err)
	claims, err := svc.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}
