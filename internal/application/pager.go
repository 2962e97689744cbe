package application

import (
	"context"
	"sync"

	"github.com/lioncurt/shopfront-cli/internal/domain"
)

// PageFunc fetches one page of items for the given request.
type PageFunc[T any] func(ctx context.Context, req domain.PageRequest) ([]T, int, domain.PageCursor, error)

// Pager accumulates cursor-paginated results. Pages are appended in order;
// overlapping loads and loads past the last page are no-ops rather than
// errors, so callers can trigger them freely from scroll handlers.
type Pager[T any] struct {
	fetch PageFunc[T]

	mu          sync.Mutex
	items       []T
	cursor      *domain.PageCursor
	total       int
	loading     bool
	loadingMore bool
	initialized bool
	lastErr     error
}

func NewPager[T any](fetch PageFunc[T]) *Pager[T] {
	return &Pager[T]{fetch: fetch}
}

// FetchInitial loads the first page once. Subsequent calls are no-ops until
// Reset; use Refresh to re-query.
func (p *Pager[T]) FetchInitial(ctx context.Context, req domain.PageRequest) error {
	p.mu.Lock()
	if p.initialized || p.loading || p.loadingMore {
		p.mu.Unlock()
		return nil
	}
	p.loading = true
	p.lastErr = nil
	p.mu.Unlock()

	return p.replaceWith(ctx, req)
}

// Refresh re-fetches the first page and replaces the accumulated list
// wholesale. No-op while another load is in flight.
func (p *Pager[T]) Refresh(ctx context.Context, req domain.PageRequest) error {
	p.mu.Lock()
	if p.loading || p.loadingMore {
		p.mu.Unlock()
		return nil
	}
	p.loading = true
	p.lastErr = nil
	p.mu.Unlock()

	req.Cursor = ""
	return p.replaceWith(ctx, req)
}

func (p *Pager[T]) replaceWith(ctx context.Context, req domain.PageRequest) error {
	items, total, cursor, err := p.fetch(ctx, req)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.lastErr = err
		return err
	}
	p.items = items
	p.total = total
	normalized := cursor.Normalize()
	p.cursor = &normalized
	p.initialized = true
	return nil
}

// LoadMore appends the next page. It reports whether a page was actually
// fetched: false with a nil error means there was nothing to do (no cursor,
// exhausted, or a load already in flight).
func (p *Pager[T]) LoadMore(ctx context.Context, req domain.PageRequest) (bool, error) {
	p.mu.Lock()
	if p.loading || p.loadingMore || p.cursor == nil || !p.cursor.HasMore {
		p.mu.Unlock()
		return false, nil
	}
	req.Cursor = p.cursor.NextCursor
	if req.Limit == 0 {
		req.Limit = p.cursor.Limit
	}
	if req.SortOrder == "" {
		req.SortOrder = p.cursor.SortOrder
	}
	p.loadingMore = true
	p.lastErr = nil
	p.mu.Unlock()

	items, total, cursor, err := p.fetch(ctx, req)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadingMore = false
	if err != nil {
		p.lastErr = err
		return false, err
	}
	p.items = append(p.items, items...)
	p.total = total
	normalized := cursor.Normalize()
	p.cursor = &normalized
	return true, nil
}

// Reset drops all accumulated state.
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = nil
	p.cursor = nil
	p.total = 0
	p.loading = false
	p.loadingMore = false
	p.initialized = false
	p.lastErr = nil
}

// Items returns a copy of the accumulated list.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Pager[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// Total is the server-reported match count, which can exceed Len.
func (p *Pager[T]) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

func (p *Pager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor != nil && p.cursor.HasMore
}

func (p *Pager[T]) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Busy reports whether any load is in flight.
func (p *Pager[T]) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading || p.loadingMore
}

func (p *Pager[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Prepend inserts an item at the head of the list without refetching.
func (p *Pager[T]) Prepend(item T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append([]T{item}, p.items...)
	if p.initialized {
		p.total++
	}
}

// Mutate applies fn to every item in place and returns how many calls
// reported a change. Used to patch cached items after a mutation elsewhere.
func (p *Pager[T]) Mutate(fn func(item *T) bool) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	changed := 0
	for i := range p.items {
		if fn(&p.items[i]) {
			changed++
		}
	}
	return changed
}

// Remove deletes every item matching fn and returns the removed count.
func (p *Pager[T]) Remove(fn func(item T) bool) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.items[:0]
	removed := 0
	for _, item := range p.items {
		if fn(item) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	p.items = kept
	if p.total >= removed {
		p.total -= removed
	}
	return removed
}
