package application

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lioncurt/shopfront-cli/internal/domain"
	"github.com/lioncurt/shopfront-cli/internal/ports"
)

// UserDirectoryService is the admin view over registered users, paginated
// the same way as the catalog.
type UserDirectoryService struct {
	users ports.UserGateway
	log   zerolog.Logger

	list *Pager[domain.User]

	mu       sync.Mutex
	selected *domain.User
}

func NewUserDirectoryService(users ports.UserGateway, logger zerolog.Logger) *UserDirectoryService {
	s := &UserDirectoryService{
		users: users,
		log:   logger.With().Str("component", "users").Logger(),
	}
	s.list = NewPager(func(ctx context.Context, req domain.PageRequest) ([]domain.User, int, domain.PageCursor, error) {
		page, err := users.List(ctx, req)
		return page.Users, page.Count, page.Cursor, err
	})
	return s
}

func (s *UserDirectoryService) Users() *Pager[domain.User] { return s.list }

func (s *UserDirectoryService) Load(ctx context.Context, req domain.PageRequest) error {
	return s.list.FetchInitial(ctx, withDefaults(req))
}

func (s *UserDirectoryService) RefreshUsers(ctx context.Context, req domain.PageRequest) error {
	return s.list.Refresh(ctx, withDefaults(req))
}

func (s *UserDirectoryService) LoadMore(ctx context.Context) (bool, error) {
	return s.list.LoadMore(ctx, domain.PageRequest{})
}

// Get fetches a single user and caches it as the current selection.
func (s *UserDirectoryService) Get(ctx context.Context, id domain.UserID) (domain.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	s.mu.Lock()
	s.selected = &user
	s.mu.Unlock()
	return user, nil
}

// Update applies a partial update and patches the cached copies.
func (s *UserDirectoryService) Update(ctx context.Context, id domain.UserID, update domain.UserUpdate) (domain.User, error) {
	updated, err := s.users.Update(ctx, id, update)
	if err != nil {
		return domain.User{}, err
	}
	s.list.Mutate(func(u *domain.User) bool {
		if u.ID != id {
			return false
		}
		*u = updated
		return true
	})
	s.mu.Lock()
	if s.selected != nil && s.selected.ID == id {
		copied := updated
		s.selected = &copied
	}
	s.mu.Unlock()
	return updated, nil
}

// Delete removes a user and evicts it from the cached list.
func (s *UserDirectoryService) Delete(ctx context.Context, id domain.UserID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.list.Remove(func(u domain.User) bool { return u.ID == id })
	s.mu.Lock()
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.mu.Unlock()
	return nil
}
