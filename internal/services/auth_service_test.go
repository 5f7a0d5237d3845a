package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"proposal-backend/internal/models"
)

func newAuth(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService("test-secret", "admin@example.com", string(hash))
}

func TestLoginIssuesValidToken(t *testing.T) {
	auth := newAuth(t)

	res, err := auth.Login(models.LoginRequest{Email: "admin@example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)

	claims, err := auth.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims["sub"])
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newAuth(t)
	_, err := auth.Login(models.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	auth := newAuth(t)
	_, err := auth.Login(models.LoginRequest{Email: "other@example.com", Password: "hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledWithoutAdminConfigured(t *testing.T) {
	auth := NewAuthService("test-secret", "", "")
	_, err := auth.Login(models.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	auth := newAuth(t)
	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	auth := newAuth(t)
	other := NewAuthService("other-secret", "admin@example.com", "")

	token, err := auth.GenerateJWT("admin@example.com")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
