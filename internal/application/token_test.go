package application

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func tokenExpiringAt(t *testing.T, expiry time.Time) string {
	t.Helper()
	return signedToken(t, jwt.MapClaims{"exp": expiry.Unix(), "sub": "user-1"})
}

func TestDecodeExpiry(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	decoded, err := DecodeExpiry(tokenExpiringAt(t, expiry))
	require.NoError(t, err)
	require.True(t, decoded.Equal(expiry))
}

func TestDecodeExpiryMissingClaim(t *testing.T) {
	_, err := DecodeExpiry(signedToken(t, jwt.MapClaims{"sub": "user-1"}))
	require.ErrorIs(t, err, ErrNoExpiryClaim)
}

func TestDecodeExpiryGarbage(t *testing.T) {
	_, err := DecodeExpiry("not-a-jwt")
	require.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	require.False(t, TokenExpired(tokenExpiringAt(t, now.Add(time.Hour)), now))
	require.True(t, TokenExpired(tokenExpiringAt(t, now.Add(-time.Minute)), now))
	require.True(t, TokenExpired("garbage", now), "undecodable tokens count as expired")
}

func TestTokenExpiresWithin(t *testing.T) {
	now := time.Now()

	require.True(t, TokenExpiresWithin(tokenExpiringAt(t, now.Add(2*time.Minute)), now, 5*time.Minute))
	require.False(t, TokenExpiresWithin(tokenExpiringAt(t, now.Add(time.Hour)), now, 5*time.Minute))
	require.True(t, TokenExpiresWithin("garbage", now, 5*time.Minute))
}
