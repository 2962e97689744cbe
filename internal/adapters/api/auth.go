package api

import (
	"context"
	"net/http"

	"github.com/lioncurt/shopfront-cli/internal/domain"
	"github.com/lioncurt/shopfront-cli/internal/ports"
)

// AuthAPI implements ports.AuthGateway against the /auth endpoints.
type AuthAPI struct {
	Client *Client
}

var _ ports.AuthGateway = (*AuthAPI)(nil)

type userSchema struct {
	ID           string `json:"id"`
	MongoID      string `json:"_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Address      string `json:"address"`
	MobileNumber string `json:"mobileNumber"`
	Provider     string `json:"provider"`
	Role         string `json:"role"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func (u userSchema) toDomain() domain.User {
	id := u.ID
	if id == "" {
		id = u.MongoID
	}
	return domain.User{
		ID:           domain.UserID(id),
		Email:        u.Email,
		Name:         u.Name,
		Age:          u.Age,
		Address:      u.Address,
		MobileNumber: u.MobileNumber,
		Provider:     u.Provider,
		Role:         domain.Role(u.Role),
		CreatedAt:    parseTime(u.CreatedAt),
		UpdatedAt:    parseTime(u.UpdatedAt),
	}
}

type authResultSchema struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	User         userSchema `json:"user"`
}

func (a authResultSchema) toDomain() domain.AuthResult {
	return domain.AuthResult{
		User: a.User.toDomain(),
		Tokens: domain.TokenPair{
			AccessToken:  a.AccessToken,
			RefreshToken: a.RefreshToken,
		},
	}
}

func (a *AuthAPI) Login(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	body := map[string]any{
		"email":    creds.Email,
		"password": creds.Password,
	}

	var result authResultSchema
	if err := a.Client.send(ctx, http.MethodPost, "/auth/login", nil, body, &result); err != nil {
		return domain.AuthResult{}, err
	}
	return result.toDomain(), nil
}

func (a *AuthAPI) Register(ctx context.Context, reg domain.Registration) (domain.AuthResult, error) {
	role := reg.Role
	if role == "" {
		role = domain.RoleUser
	}
	body := map[string]any{
		"email":        reg.Email,
		"password":     reg.Password,
		"name":         reg.Name,
		"age":          reg.Age,
		"address":      reg.Address,
		"mobileNumber": reg.MobileNumber,
		"role":         string(role),
	}

	var result authResultSchema
	if err := a.Client.send(ctx, http.MethodPost, "/auth/register", nil, body, &result); err != nil {
		return domain.AuthResult{}, err
	}
	return result.toDomain(), nil
}

func (a *AuthAPI) Profile(ctx context.Context) (domain.User, error) {
	var user userSchema
	if err := a.Client.get(ctx, "/auth/profile", nil, &user); err != nil {
		return domain.User{}, err
	}
	return user.toDomain(), nil
}

func (a *AuthAPI) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	body := map[string]any{"refreshToken": refreshToken}

	var result struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := a.Client.send(ctx, http.MethodPost, "/auth/refresh", nil, body, &result); err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: result.AccessToken, RefreshToken: result.RefreshToken}, nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.Client.send(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}
