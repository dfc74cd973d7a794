package service

import (
	"context"
	"testing"
	"time"

	"spendbook/internal/dto"
	"spendbook/internal/testutil"
	"spendbook/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService() (*AuthService, *testutil.InMemoryUserStore) {
	userStore := &testutil.InMemoryUserStore{}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(userStore, jwtManager, zap.NewNop()), userStore
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "User@Example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", resp.User.Email, "email is lowercased")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "user@example.com", Password: "secret-password",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "user@example.com", Password: "another-password",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "user@example.com", Password: "secret-password",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email: "user@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _ := newAuthService()

	registered, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "user@example.com", Password: "secret-password",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
