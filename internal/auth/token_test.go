package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examace/examace/internal/auth"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	mgr := auth.NewTokenManager("test-secret", time.Hour)

	token, err := mgr.Issue("u1", "9876543210")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "9876543210", claims.Phone)
	assert.Equal(t, "u1", claims.Subject)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	mgr := auth.NewTokenManager("test-secret", -time.Minute)

	token, err := mgr.Issue("u1", "9876543210")
	require.NoError(t, err)

	_, err = mgr.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	mgr := auth.NewTokenManager("test-secret", time.Hour)
	other := auth.NewTokenManager("other-secret", time.Hour)

	token, err := mgr.Issue("u1", "9876543210")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsUnsignedToken(t *testing.T) {
	mgr := auth.NewTokenManager("test-secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u1"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = mgr.Parse(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	mgr := auth.NewTokenManager("test-secret", time.Hour)

	_, err := mgr.Parse("not-a-token")
	assert.Error(t, err)
}
