// Package identity bridges federated sign-in providers onto the storefront
// API's password-based auth endpoints.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Defaults filled into a registration created from a federated profile.
// Google does not supply these fields, and the API requires them.
const (
	DefaultAge          = 25
	DefaultAddress      = "Not provided"
	DefaultMobileNumber = "8999431754"
)

var (
	ErrMissingSubject  = errors.New("id token has no sub claim")
	ErrMissingEmail    = errors.New("id token has no email claim")
	ErrWrongAudience   = errors.New("id token audience does not match the configured client id")
	ErrEmailUnverified = errors.New("google account email is not verified")
)

// GoogleProfile is the subset of Google ID token claims the sign-in flow
// needs.
type GoogleProfile struct {
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}

// GoogleVerifier decodes Google ID tokens. The token signature is not
// checked here: the token goes straight to the API, which performs the real
// verification; the client only inspects the claims it forwards.
type GoogleVerifier struct {
	clientID string
}

// NewGoogleVerifier returns a verifier bound to an OAuth client id. An empty
// client id skips the audience check.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// DecodeIDToken extracts the sign-in profile from a Google ID token.
func (v *GoogleVerifier) DecodeIDToken(idToken string) (GoogleProfile, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return GoogleProfile{}, fmt.Errorf("decode id token: %w", err)
	}

	if v.clientID != "" {
		audience, err := claims.GetAudience()
		if err != nil || !containsAudience(audience, v.clientID) {
			return GoogleProfile{}, ErrWrongAudience
		}
	}

	profile := GoogleProfile{
		Subject: stringClaim(claims, "sub"),
		Email:   stringClaim(claims, "email"),
		Name:    stringClaim(claims, "name"),
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		profile.EmailVerified = verified
	}

	if profile.Subject == "" {
		return GoogleProfile{}, ErrMissingSubject
	}
	if profile.Email == "" {
		return GoogleProfile{}, ErrMissingEmail
	}
	if profile.Name == "" {
		profile.Name = emailLocalPart(profile.Email)
	}
	return profile, nil
}

// DerivedPassword builds the deterministic account password for a Google
// subject, so repeat federated sign-ins resolve to the same account.
func DerivedPassword(subject string) string {
	return "G" + subject + "g1"
}

func containsAudience(audience jwt.ClaimStrings, clientID string) bool {
	for _, aud := range audience {
		if aud == clientID {
			return true
		}
	}
	return false
}

func stringClaim(claims jwt.MapClaims, key string) string {
	value, _ := claims[key].(string)
	return value
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
