package services

import (
	"context"
	"testing"

	"github.com/jvintimilla/logia-api/internal/config"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

type mockUserRepo struct {
	repository.UserRepository
	mockFindByEmail func(ctx context.Context, email string) (*models.User, error)
	mockFindByID    func(ctx context.Context, id uint) (*models.User, error)
	mockUpdate      func(ctx context.Context, user *models.User) error
	mockFindAdmins  func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.mockFindByEmail(ctx, email)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindAdmins(ctx context.Context) ([]models.User, error) {
	if m.mockFindAdmins != nil {
		return m.mockFindAdmins(ctx)
	}
	return nil, nil
}

type mockRefreshTokenRepo struct {
	repository.RefreshTokenRepository
	mockCreate       func(ctx context.Context, token *models.RefreshToken) error
	mockFindByToken  func(ctx context.Context, token string) (*models.RefreshToken, error)
	mockDelete       func(ctx context.Context, token string) error
	mockDeleteByUser func(ctx context.Context, userID uint) error
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	return m.mockFindByToken(ctx, token)
}

func (m *mockRefreshTokenRepo) Delete(ctx context.Context, token string) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenRepo) DeleteByUser(ctx context.Context, userID uint) error {
	if m.mockDeleteByUser != nil {
		return m.mockDeleteByUser(ctx, userID)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{Email: email, Status: models.StatusInactive}, nil
		},
	}
	service := NewAuthService(mockRepo, nil, testConfig())

	result, err := service.Login(context.Background(), "inactivo@logia.org", "password")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "cuenta inactiva o suspendida", err.Error())
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correcta")
	assert.NoError(t, err)

	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{Email: email, Status: models.StatusActive, EncryptedPassword: hash}, nil
		},
	}
	service := NewAuthService(mockRepo, nil, testConfig())

	result, err := service.Login(context.Background(), "tesorero@logia.org", "incorrecta")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "credenciales inválidas", err.Error())
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := HashPassword("secreta123")
	assert.NoError(t, err)

	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{
				ID: 1, Email: email, Role: models.RoleTreasurer,
				Status: models.StatusActive, EncryptedPassword: hash,
			}, nil
		},
	}
	created := false
	mockRTRepo := &mockRefreshTokenRepo{
		mockCreate: func(ctx context.Context, token *models.RefreshToken) error {
			created = true
			assert.Equal(t, uint(1), token.UserID)
			assert.NotEmpty(t, token.Token)
			return nil
		},
	}
	service := NewAuthService(mockRepo, mockRTRepo, testConfig())

	result, err := service.Login(context.Background(), "tesorero@logia.org", "secreta123")
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, models.RoleTreasurer, result.User.Role)
	assert.True(t, created)
}

func TestAuthService_RefreshToken_RotatesToken(t *testing.T) {
	hash, _ := HashPassword("secreta123")
	mockRepo := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Status: models.StatusActive, EncryptedPassword: hash}, nil
		},
	}

	deleted := ""
	mockRTRepo := &mockRefreshTokenRepo{
		mockFindByToken: func(ctx context.Context, token string) (*models.RefreshToken, error) {
			return &models.RefreshToken{UserID: 1, Token: token}, nil
		},
		mockDelete: func(ctx context.Context, token string) error {
			deleted = token
			return nil
		},
	}
	service := NewAuthService(mockRepo, mockRTRepo, testConfig())

	result, err := service.RefreshToken(context.Background(), "viejo-token")
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "viejo-token", deleted, "the used refresh token must be invalidated")
	assert.NotEqual(t, "viejo-token", result.RefreshToken)
}

func TestAuthService_ChangePassword(t *testing.T) {
	hash, _ := HashPassword("actual123")

	var updated *models.User
	mockRepo := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Status: models.StatusActive, EncryptedPassword: hash}, nil
		},
		mockUpdate: func(ctx context.Context, user *models.User) error {
			updated = user
			return nil
		},
	}
	revoked := false
	mockRTRepo := &mockRefreshTokenRepo{
		mockDeleteByUser: func(ctx context.Context, userID uint) error {
			revoked = true
			return nil
		},
	}
	service := NewAuthService(mockRepo, mockRTRepo, testConfig())

	err := service.ChangePassword(context.Background(), 1, "actual123", "nueva456")
	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.True(t, VerifyPassword("nueva456", updated.EncryptedPassword))
	assert.True(t, revoked, "existing sessions must be revoked")
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	hash, _ := HashPassword("actual123")
	mockRepo := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, EncryptedPassword: hash}, nil
		},
	}
	service := NewAuthService(mockRepo, &mockRefreshTokenRepo{}, testConfig())

	err := service.ChangePassword(context.Background(), 1, "equivocada", "nueva456")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("mi-clave")
	assert.NoError(t, err)
	assert.NotEqual(t, "mi-clave", hash)

	assert.True(t, VerifyPassword("mi-clave", hash))
	assert.False(t, VerifyPassword("otra-clave", hash))
}
