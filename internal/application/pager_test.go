package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lioncurt/shopfront-cli/internal/domain"
)

// pagedSource serves fixed-size pages of sequential strings through a
// cursor, mimicking the API's pagination contract.
type pagedSource struct {
	mu       sync.Mutex
	items    []string
	pageSize int
	calls    int
	err      error
	gate     chan struct{}
}

func (s *pagedSource) fetch(_ context.Context, req domain.PageRequest) ([]string, int, domain.PageCursor, error) {
	s.mu.Lock()
	s.calls++
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if s.err != nil {
		return nil, 0, domain.PageCursor{}, s.err
	}

	start := 0
	if req.Cursor != "" {
		fmt.Sscanf(req.Cursor, "%d", &start)
	}
	end := start + s.pageSize
	if end > len(s.items) {
		end = len(s.items)
	}

	cursor := domain.PageCursor{
		HasMore:   end < len(s.items),
		Limit:     s.pageSize,
		SortOrder: domain.SortDesc,
	}
	if cursor.HasMore {
		cursor.NextCursor = fmt.Sprintf("%d", end)
	}
	return s.items[start:end], len(s.items), cursor, nil
}

func (s *pagedSource) fetchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func sourceOf(n, pageSize int) *pagedSource {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("item-%02d", i)
	}
	return &pagedSource{items: items, pageSize: pageSize}
}

func TestPagerFetchInitialOnce(t *testing.T) {
	src := sourceOf(5, 2)
	pager := NewPager(src.fetch)
	ctx := context.Background()

	require.NoError(t, pager.FetchInitial(ctx, domain.PageRequest{Limit: 2}))
	require.Equal(t, []string{"item-00", "item-01"}, pager.Items())
	require.Equal(t, 5, pager.Total())
	require.True(t, pager.HasMore())

	// Second initial fetch is a no-op.
	require.NoError(t, pager.FetchInitial(ctx, domain.PageRequest{Limit: 2}))
	require.Equal(t, 1, src.fetchCalls())
}

func TestPagerLoadMoreAppendsInOrder(t *testing.T) {
	src := sourceOf(5, 2)
	pager := NewPager(src.fetch)
	ctx := context.Background()

	require.NoError(t, pager.FetchInitial(ctx, domain.PageRequest{Limit: 2}))

	fetched, err := pager.LoadMore(ctx, domain.PageRequest{})
	require.NoError(t, err)
	require.True(t, fetched)

	fetched, err = pager.LoadMore(ctx, domain.PageRequest{})
	require.NoError(t, err)
	require.True(t, fetched)

	require.Equal(t, []string{"item-00", "item-01", "item-02", "item-03", "item-04"}, pager.Items())
	require.False(t, pager.HasMore())

	// Exhausted: further loads do nothing.
	fetched, err = pager.LoadMore(ctx, domain.PageRequest{})
	require.NoError(t, err)
	require.False(t, fetched)
	require.Equal(t, 3, src.fetchCalls())
}

func TestPagerLoadMoreBeforeInitialIsNoop(t *testing.T) {
	src := sourceOf(5, 2)
	pager := NewPager(src.fetch)

	fetched, err := pager.LoadMore(context.Background(), domain.PageRequest{})
	require.NoError(t, err)
	require.False(t, fetched)
	require.Zero(t, src.fetchCalls())
}

func TestPagerOverlappingLoadsCollapse(t *testing.T) {
	src := sourceOf(6, 2)
	pager := NewPager(src.fetch)
	ctx := context.Background()
	require.NoError(t, pager.FetchInitial(ctx, domain.PageRequest{Limit: 2}))

	gate := make(chan struct{})
	src.mu.Lock()
	src.gate = gate
	src.mu.Unlock()

	type outcome struct {
		fetched bool
		err     error
	}
	results := make(chan outcome, 4)
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetched, err := pager.LoadMore(ctx, domain.PageRequest{})
			results <- outcome{fetched: fetched, err: err}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()
	close(results)

	fetchedCount := 0
	for res := range results {
		require.NoError(t, res.err)
		if res.fetched {
			fetchedCount++
		}
	}
	require.Equal(t, 1, fetchedCount, "one load wins, the rest no-op")
	require.Equal(t, []string{"item-00", "item-01", "item-02", "item-03"}, pager.Items())
}

func TestPagerRefreshReplacesWholesale(t *testing.T) {
	src := sourceOf(6, 2)
	pager := NewPager(src.fetch)
	ctx := context.Background()

	require.NoError(t, pager.FetchInitial(ctx, domain.PageRequest{Limit: 2}))
	_, err := pager.LoadMore(ctx, domain.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 4, pager.Len())

	require.NoError(t, pager.Refresh(ctx, domain.PageRequest{Limit: 2}))
	require.Equal(t, []string{"item-00", "item-01"}, pager.Items(), "refresh restarts from the first page")
	require.True(t, pager.HasMore())
}

func TestPagerFetchErrorSurfaces(t *testing.T) {
	src := sourceOf(4, 2)
	fetchErr := errors.New("listing unavailable")
	src.err = fetchErr
	pager := NewPager(src.fetch)

	err := pager.FetchInitial(context.Background(), domain.PageRequest{Limit: 2})
	require.Error(t, err)
	require.ErrorIs(t, pager.Err(), fetchErr)
	require.False(t, pager.Initialized())

	// A later attempt can still succeed.
	src.err = nil
	require.NoError(t, pager.FetchInitial(context.Background(), domain.PageRequest{Limit: 2}))
	require.Equal(t, 2, pager.Len())
	require.NoError(t, pager.Err())
}

func TestPagerLocalMutations(t *testing.T) {
	src := sourceOf(3, 3)
	pager := NewPager(src.fetch)
	require.NoError(t, pager.FetchInitial(context.Background(), domain.PageRequest{Limit: 3}))

	pager.Prepend("item-new")
	require.Equal(t, "item-new", pager.Items()[0])
	require.Equal(t, 4, pager.Total())

	changed := pager.Mutate(func(item *string) bool {
		if *item != "item-01" {
			return false
		}
		*item = "item-01-renamed"
		return true
	})
	require.Equal(t, 1, changed)
	require.Contains(t, pager.Items(), "item-01-renamed")

	removed := pager.Remove(func(item string) bool { return item == "item-02" })
	require.Equal(t, 1, removed)
	require.NotContains(t, pager.Items(), "item-02")
	require.Equal(t, 3, pager.Total())
}
