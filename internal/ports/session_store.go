package ports

import (
	"context"

	"github.com/lioncurt/shopfront-cli/internal/domain"
)

// SessionStore persists the token pair and last-known role across process
// restarts. It is the only client-side state that survives a restart.
type SessionStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
