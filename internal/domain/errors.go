package domain

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrRefreshTokenLost = errors.New("access token has no refresh token")
	ErrQuantityTooLow   = errors.New("quantity must be at least 1")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrLineNotFound     = errors.New("cart line not found")
)
