package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/lioncurt/shopfront-cli/internal/domain"
	"github.com/lioncurt/shopfront-cli/internal/ports"
)

const (
	// refreshThreshold is how close to expiry a token may get before a
	// proactive refresh is attempted.
	refreshThreshold = 5 * time.Minute

	// autoRefreshInterval is the cadence of the background expiry check.
	autoRefreshInterval = time.Minute
)

// SessionManager owns the authenticated session: it loads persisted tokens
// at startup, refreshes them before they expire, and tears the session down
// when the refresh token is rejected. Concurrent refresh attempts are
// collapsed into a single upstream call.
type SessionManager struct {
	auth  ports.AuthGateway
	store ports.SessionStore
	clock ports.Clock
	log   zerolog.Logger

	mu      sync.Mutex
	session domain.Session
	stop    chan struct{}

	refreshes singleflight.Group

	// OnSessionLost is invoked after a failed refresh forces a logout.
	// Optional; set before StartAutoRefresh.
	OnSessionLost func()
}

func NewSessionManager(auth ports.AuthGateway, store ports.SessionStore, clock ports.Clock, logger zerolog.Logger) *SessionManager {
	return &SessionManager{
		auth:  auth,
		store: store,
		clock: clock,
		log:   logger.With().Str("component", "session").Logger(),
	}
}

// Initialize restores a persisted session, if any. A missing session file is
// not an error; the user is simply not signed in yet.
func (m *SessionManager) Initialize(ctx context.Context) error {
	session, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("load session: %w", err)
	}

	if session.ExpiresAt.IsZero() {
		if expiry, decodeErr := DecodeExpiry(session.AccessToken); decodeErr == nil {
			session.ExpiresAt = expiry
		}
	}

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	m.log.Debug().Str("user_id", string(session.UserID)).Msg("session restored")
	return nil
}

// AccessToken implements api.TokenSource. It returns the raw bearer token,
// or the empty string when no one is signed in.
func (m *SessionManager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.AccessToken
}

// Authenticated reports whether a session is active in memory.
func (m *SessionManager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Authenticated()
}

// Current returns a snapshot of the active session.
func (m *SessionManager) Current() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Login exchanges credentials for a token pair and persists the session.
func (m *SessionManager) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	result, err := m.auth.Login(ctx, creds)
	if err != nil {
		return domain.User{}, err
	}
	if err := m.adopt(ctx, result); err != nil {
		return domain.User{}, err
	}
	return result.User, nil
}

// Register creates an account and signs the new user in.
func (m *SessionManager) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	result, err := m.auth.Register(ctx, reg)
	if err != nil {
		return domain.User{}, err
	}
	if err := m.adopt(ctx, result); err != nil {
		return domain.User{}, err
	}
	return result.User, nil
}

// Adopt installs an externally obtained auth result (federated sign-in).
func (m *SessionManager) Adopt(ctx context.Context, result domain.AuthResult) error {
	return m.adopt(ctx, result)
}

func (m *SessionManager) adopt(ctx context.Context, result domain.AuthResult) error {
	session := domain.Session{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		UserID:       result.User.ID,
		Role:         result.User.Role,
	}
	if expiry, err := DecodeExpiry(session.AccessToken); err == nil {
		session.ExpiresAt = expiry
	}

	if err := m.store.Save(ctx, session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()
	return nil
}

// Profile fetches the signed-in user's profile.
func (m *SessionManager) Profile(ctx context.Context) (domain.User, error) {
	if !m.Authenticated() {
		return domain.User{}, domain.ErrNotAuthenticated
	}
	return m.auth.Profile(ctx)
}

// Logout revokes the session upstream, then clears local state. Upstream
// failures are logged and otherwise ignored; the local session is cleared
// regardless.
func (m *SessionManager) Logout(ctx context.Context) error {
	if m.Authenticated() {
		if err := m.auth.Logout(ctx); err != nil {
			m.log.Warn().Err(err).Msg("server-side logout failed")
		}
	}
	return m.clearSession(ctx)
}

// CheckAndRefresh refreshes the access token if it is expired or within the
// refresh threshold. Overlapping callers share one refresh call. A refresh
// rejected by the server forces a logout and returns the error.
func (m *SessionManager) CheckAndRefresh(ctx context.Context) error {
	m.mu.Lock()
	token := m.session.AccessToken
	m.mu.Unlock()

	if token == "" {
		return nil
	}
	now := m.clock.Now()
	if !TokenExpired(token, now) && !TokenExpiresWithin(token, now, refreshThreshold) {
		return nil
	}

	_, err, _ := m.refreshes.Do("refresh", func() (any, error) {
		return nil, m.refresh(ctx)
	})
	return err
}

func (m *SessionManager) refresh(ctx context.Context) error {
	m.mu.Lock()
	refreshToken := m.session.RefreshToken
	m.mu.Unlock()

	if refreshToken == "" {
		m.log.Warn().Msg("no refresh token, clearing session")
		if err := m.clearSession(ctx); err != nil {
			m.log.Warn().Err(err).Msg("clear session failed")
		}
		return domain.ErrNotAuthenticated
	}

	pair, err := m.auth.Refresh(ctx, refreshToken)
	if err != nil {
		m.log.Warn().Err(err).Msg("token refresh rejected, signing out")
		if clearErr := m.clearSession(ctx); clearErr != nil {
			m.log.Warn().Err(clearErr).Msg("clear session failed")
		}
		if m.OnSessionLost != nil {
			m.OnSessionLost()
		}
		return fmt.Errorf("refresh session: %w", err)
	}

	m.mu.Lock()
	m.session.AccessToken = pair.AccessToken
	if pair.RefreshToken != "" {
		m.session.RefreshToken = pair.RefreshToken
	}
	if expiry, decodeErr := DecodeExpiry(pair.AccessToken); decodeErr == nil {
		m.session.ExpiresAt = expiry
	}
	session := m.session
	m.mu.Unlock()

	if err := m.store.Save(ctx, session); err != nil {
		m.log.Warn().Err(err).Msg("persist refreshed session failed")
	}

	m.log.Debug().Time("expires_at", session.ExpiresAt).Msg("access token refreshed")
	return nil
}

func (m *SessionManager) clearSession(ctx context.Context) error {
	m.StopAutoRefresh()

	m.mu.Lock()
	m.session = domain.Session{}
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// StartAutoRefresh spawns a background loop that checks token expiry once a
// minute. The loop exits on context cancellation, StopAutoRefresh, or a
// fatal refresh failure.
func (m *SessionManager) StartAutoRefresh(ctx context.Context) {
	m.mu.Lock()
	if m.stop != nil {
		m.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	m.stop = stop
	m.mu.Unlock()

	go m.autoRefreshLoop(ctx, stop)
}

// StopAutoRefresh halts the background expiry check. Safe to call when the
// loop is not running.
func (m *SessionManager) StopAutoRefresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
}

func (m *SessionManager) autoRefreshLoop(ctx context.Context, stop chan struct{}) {
	ticker := time.NewTicker(autoRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			if err := m.CheckAndRefresh(ctx); err != nil {
				return
			}
		}
	}
}
