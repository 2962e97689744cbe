package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lioncurt/shopfront-cli/internal/domain"
	"github.com/lioncurt/shopfront-cli/internal/ports"
)

// UserAPI implements ports.UserGateway against the /admin/users endpoints.
type UserAPI struct {
	Client *Client
}

var _ ports.UserGateway = (*UserAPI)(nil)

type userPageSchema struct {
	Users      []userSchema     `json:"users"`
	Count      int              `json:"count"`
	Pagination paginationSchema `json:"pagination"`
}

func (u *UserAPI) List(ctx context.Context, req domain.PageRequest) (domain.UserPage, error) {
	var page userPageSchema
	if err := u.Client.get(ctx, "/admin/users", pageQuery(req), &page); err != nil {
		return domain.UserPage{}, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(page.Users))
	for _, entry := range page.Users {
		users = append(users, entry.toDomain())
	}
	return domain.UserPage{
		Users:  users,
		Count:  page.Count,
		Cursor: page.Pagination.toDomain(),
	}, nil
}

func (u *UserAPI) Get(ctx context.Context, id domain.UserID) (domain.User, error) {
	var user userSchema
	if err := u.Client.get(ctx, "/admin/users/"+url.PathEscape(string(id)), nil, &user); err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user.toDomain(), nil
}

func (u *UserAPI) Update(ctx context.Context, id domain.UserID, update domain.UserUpdate) (domain.User, error) {
	body := map[string]any{
		"name":         update.Name,
		"age":          update.Age,
		"address":      update.Address,
		"mobileNumber": update.MobileNumber,
	}
	if update.Role != "" {
		body["role"] = string(update.Role)
	}

	var user userSchema
	err := u.Client.send(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(string(id)), nil, body, &user)
	if err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	return user.toDomain(), nil
}

func (u *UserAPI) Delete(ctx context.Context, id domain.UserID) error {
	err := u.Client.send(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(string(id)), nil, nil, nil)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
