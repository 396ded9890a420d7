package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/reservation-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	user := &domain.User{ID: 42, Role: domain.RoleAdmin}

	token, expiresAt, err := tm.GenerateToken(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID, "jti keys the revocation list")
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("other-secret", 60)

	token, _, err := tm.GenerateToken(&domain.User{ID: 1, Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	_, err := tm.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestTokenIDsAreUnique(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	user := &domain.User{ID: 1, Role: domain.RoleUser}

	first, _, err := tm.GenerateToken(user)
	require.NoError(t, err)
	second, _, err := tm.GenerateToken(user)
	require.NoError(t, err)

	a, err := tm.ParseToken(first)
	require.NoError(t, err)
	b, err := tm.ParseToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}
