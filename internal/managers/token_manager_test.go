package managers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenManagerInspect(t *testing.T) {
	tm := NewTokenManager()
	expiry := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	info, err := tm.Inspect(signToken(t, jwt.MapClaims{"user_id": 7, "exp": expiry.Unix()}))
	require.NoError(t, err)
	assert.Equal(t, "7", info.UserID)
	assert.True(t, info.HasExpiry)
	assert.True(t, expiry.Equal(info.ExpiresAt))

	info, err = tm.Inspect(signToken(t, jwt.MapClaims{"sub": "abc"}))
	require.NoError(t, err)
	assert.Equal(t, "abc", info.UserID)
	assert.False(t, info.HasExpiry)

	_, err = tm.Inspect("opaque-credential")
	assert.ErrorIs(t, err, ErrOpaqueToken)
}

func TestTokenManagerIsExpired(t *testing.T) {
	tm := NewTokenManager()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	expired := signToken(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()})
	valid := signToken(t, jwt.MapClaims{"exp": now.Add(time.Minute).Unix()})
	noExpiry := signToken(t, jwt.MapClaims{"user_id": 1})

	assert.True(t, tm.IsExpired(expired, now))
	assert.False(t, tm.IsExpired(valid, now))
	assert.False(t, tm.IsExpired(noExpiry, now))
	assert.False(t, tm.IsExpired("opaque-credential", now))
}
