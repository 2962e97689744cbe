package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type UserID string

type User struct {
	ID           UserID
	Name         string
	Email        string
	Age          int
	Address      string
	MobileNumber string
	Provider     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate carries the admin-editable fields of a user record.
type UserUpdate struct {
	Name         string
	Age          int
	Address      string
	MobileNumber string
	Role         Role
}

// UserPage is one page of a cursor-paginated user listing.
type UserPage struct {
	Users  []User
	Count  int
	Cursor PageCursor
}

type Credentials struct {
	Email    string
	Password string
}

type Registration struct {
	Email        string
	Password     string
	Name         string
	Age          int
	Address      string
	MobileNumber string
	Role         Role
}

// TokenPair is the bearer credential pair issued by the API.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult is the outcome of a successful login or registration.
type AuthResult struct {
	User   User
	Tokens TokenPair
}
