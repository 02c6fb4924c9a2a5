// internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-exchanger/exchanger-backend/internal/config"
	"github.com/the-exchanger/exchanger-backend/internal/utils"
)

func newAuthService() (*AuthService, *fakeUserStore) {
	utils.SetJWTSecret("test-secret")
	users := newFakeUserStore()
	cfg := &config.Config{}
	cfg.JWT.AccessTokenTTL = 1
	cfg.JWT.RefreshTokenTTL = 24
	return NewAuthService(users, cfg), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.NotEqual(t, "hunter22", resp.User.PasswordHash, "password is never stored in clear")

	login, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	claims, err := utils.ValidateJWT(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &RegisterRequest{
		Name:     "Other Ana",
		Email:    "ana@example.com",
		Password: "hunter23",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeleteAccount(t *testing.T) {
	authSvc, users := newAuthService()
	userSvc := NewUserService(users)

	resp, err := authSvc.Register(context.Background(), &RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	require.NoError(t, userSvc.DeleteAccount(context.Background(), resp.User.ID))

	err = userSvc.DeleteAccount(context.Background(), resp.User.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
