package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoExpiryClaim = errors.New("token has no exp claim")

// DecodeExpiry reads the exp claim out of a JWT without verifying the
// signature. Signature validation is the server's job; the client only
// needs to know when to refresh.
func DecodeExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("decode token: %w", err)
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read exp claim: %w", err)
	}
	if expiry == nil {
		return time.Time{}, ErrNoExpiryClaim
	}
	return expiry.Time, nil
}

// TokenExpired treats undecodable tokens as expired.
func TokenExpired(token string, now time.Time) bool {
	expiry, err := DecodeExpiry(token)
	if err != nil {
		return true
	}
	return !expiry.After(now)
}

// TokenExpiresWithin reports whether the token expires inside the threshold
// window starting at now. Undecodable tokens count as expiring.
func TokenExpiresWithin(token string, now time.Time, threshold time.Duration) bool {
	expiry, err := DecodeExpiry(token)
	if err != nil {
		return true
	}
	return expiry.Sub(now) < threshold
}
