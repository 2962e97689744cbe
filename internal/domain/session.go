package domain

import "time"

// Session is the single client-side credential state. At most one session
// exists per process; it is created on login, replaced on refresh, and
// destroyed on logout or an unrecoverable refresh failure.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	UserID       UserID
	Role         Role
}

func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}

// Persistable reports whether the session may be written to disk: an access
// token is never persisted without its refresh token.
func (s Session) Persistable() bool {
	return s.AccessToken == "" || s.RefreshToken != ""
}
