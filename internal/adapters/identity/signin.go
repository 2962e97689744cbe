package identity

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lioncurt/shopfront-cli/internal/adapters/api"
	"github.com/lioncurt/shopfront-cli/internal/domain"
	"github.com/lioncurt/shopfront-cli/internal/ports"
)

// GoogleSignIn turns a Google ID token into a storefront session. Accounts
// are keyed by the deterministic derived password: the flow first tries a
// normal login, and registers the account on the first federated sign-in.
type GoogleSignIn struct {
	auth     ports.AuthGateway
	verifier *GoogleVerifier
	log      zerolog.Logger
}

func NewGoogleSignIn(auth ports.AuthGateway, verifier *GoogleVerifier, logger zerolog.Logger) *GoogleSignIn {
	return &GoogleSignIn{
		auth:     auth,
		verifier: verifier,
		log:      logger.With().Str("component", "google-signin").Logger(),
	}
}

// SignIn decodes the ID token and authenticates against the API, creating
// the account when it does not exist yet.
func (g *GoogleSignIn) SignIn(ctx context.Context, idToken string) (domain.AuthResult, error) {
	profile, err := g.verifier.DecodeIDToken(idToken)
	if err != nil {
		return domain.AuthResult{}, err
	}

	password := DerivedPassword(profile.Subject)
	result, err := g.auth.Login(ctx, domain.Credentials{Email: profile.Email, Password: password})
	if err == nil {
		return result, nil
	}

	// Only "no such account" failures fall through to registration;
	// network and server trouble surfaces as-is.
	if !api.IsAuth(err) && !api.IsKind(err, api.KindValidation) {
		return domain.AuthResult{}, err
	}

	g.log.Debug().Str("email", profile.Email).Msg("first federated sign-in, registering account")
	result, err = g.auth.Register(ctx, domain.Registration{
		Email:        profile.Email,
		Password:     password,
		Name:         profile.Name,
		Age:          DefaultAge,
		Address:      DefaultAddress,
		MobileNumber: DefaultMobileNumber,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("register federated account: %w", err)
	}
	return result, nil
}
