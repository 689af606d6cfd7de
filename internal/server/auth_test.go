package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)

	token, err := auth.GenerateToken("partner@x.com", true)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "partner@x.com", claims.Email)
	assert.True(t, claims.Admin)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewAuthService("secret-a", time.Hour)
	validator := NewAuthService("secret-b", time.Hour)

	token, err := issuer.GenerateToken("partner@x.com", false)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)
	_, err := auth.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	auth := NewAuthService("test-secret", -time.Hour)

	token, err := auth.GenerateToken("partner@x.com", false)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}
