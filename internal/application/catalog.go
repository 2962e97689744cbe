package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lioncurt/shopfront-cli/internal/domain"
	"github.com/lioncurt/shopfront-cli/internal/ports"
)

const (
	searchDebounce   = 300 * time.Millisecond
	defaultPageLimit = 10
)

// CatalogService keeps two independent paginated views of the product
// catalog: the full browse listing and the current search results. Search
// never disturbs the browse accumulation, so clearing a query restores the
// browsed list exactly as it was.
type CatalogService struct {
	products ports.ProductGateway
	log      zerolog.Logger

	browse *Pager[domain.Product]
	search *Pager[domain.Product]

	debounce *Debouncer

	mu        sync.Mutex
	query     string
	lastQuery string
	selected  *domain.Product
}

func NewCatalogService(products ports.ProductGateway, logger zerolog.Logger) *CatalogService {
	s := &CatalogService{
		products: products,
		log:      logger.With().Str("component", "catalog").Logger(),
		debounce: NewDebouncer(searchDebounce),
	}
	s.browse = NewPager(func(ctx context.Context, req domain.PageRequest) ([]domain.Product, int, domain.PageCursor, error) {
		page, err := products.List(ctx, req)
		return page.Products, page.Count, page.Cursor, err
	})
	s.search = NewPager(func(ctx context.Context, req domain.PageRequest) ([]domain.Product, int, domain.PageCursor, error) {
		page, err := products.Search(ctx, s.activeQuery(), req)
		return page.Products, page.Count, page.Cursor, err
	})
	return s
}

func (s *CatalogService) activeQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Searching reports whether a search query is active.
func (s *CatalogService) Searching() bool {
	return s.activeQuery() != ""
}

// Browse returns the accumulated browse listing.
func (s *CatalogService) Browse() *Pager[domain.Product] { return s.browse }

// SearchResults returns the accumulated results for the active query.
func (s *CatalogService) SearchResults() *Pager[domain.Product] { return s.search }

// Active returns whichever pager the UI should display.
func (s *CatalogService) Active() *Pager[domain.Product] {
	if s.Searching() {
		return s.search
	}
	return s.browse
}

// LoadBrowse fetches the first browse page if it has not been loaded yet.
func (s *CatalogService) LoadBrowse(ctx context.Context, req domain.PageRequest) error {
	return s.browse.FetchInitial(ctx, withDefaults(req))
}

// RefreshBrowse re-fetches the browse listing from the first page.
func (s *CatalogService) RefreshBrowse(ctx context.Context, req domain.PageRequest) error {
	return s.browse.Refresh(ctx, withDefaults(req))
}

// LoadMore appends the next page of whichever view is active. Safe to call
// from scroll handlers: exhausted or in-flight views make it a no-op.
func (s *CatalogService) LoadMore(ctx context.Context) (bool, error) {
	return s.Active().LoadMore(ctx, domain.PageRequest{})
}

// Search runs a search immediately. Empty trimmed queries clear the search
// view instead, and a repeat of the current query is suppressed.
func (s *CatalogService) Search(ctx context.Context, query string, req domain.PageRequest) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		s.ClearSearch()
		return nil
	}

	s.mu.Lock()
	if trimmed == s.lastQuery {
		s.mu.Unlock()
		return nil
	}
	s.query = trimmed
	s.lastQuery = trimmed
	s.mu.Unlock()

	s.search.Reset()
	return s.search.Refresh(ctx, withDefaults(req))
}

// DebouncedSearch schedules a search after the typing quiet interval. The
// done callback receives the search outcome; an empty query clears the
// search immediately and reports nil.
func (s *CatalogService) DebouncedSearch(ctx context.Context, query string, req domain.PageRequest, done func(error)) {
	if strings.TrimSpace(query) == "" {
		s.debounce.Cancel()
		s.ClearSearch()
		if done != nil {
			done(nil)
		}
		return
	}
	s.debounce.Trigger(func() {
		err := s.Search(ctx, query, req)
		if done != nil {
			done(err)
		}
	})
}

// SubmitSearch bypasses the debounce for an explicit submit.
func (s *CatalogService) SubmitSearch(ctx context.Context, query string, req domain.PageRequest) error {
	s.debounce.Cancel()
	return s.Search(ctx, query, req)
}

// ClearSearch drops the query and search results. The browse listing is
// untouched.
func (s *CatalogService) ClearSearch() {
	s.debounce.Cancel()
	s.mu.Lock()
	s.query = ""
	s.lastQuery = ""
	s.mu.Unlock()
	s.search.Reset()
}

// SelectProduct fetches a product's detail view and caches it.
func (s *CatalogService) SelectProduct(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	s.mu.Lock()
	s.selected = &product
	s.mu.Unlock()
	return product, nil
}

// Selected returns the cached detail product, if any.
func (s *CatalogService) Selected() (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return domain.Product{}, false
	}
	return *s.selected, true
}

// ClearSelected drops the cached detail product.
func (s *CatalogService) ClearSelected() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}

// CreateProduct creates a product and prepends it to the browse listing so
// the new item is visible without a refetch.
func (s *CatalogService) CreateProduct(ctx context.Context, input domain.ProductInput) (domain.Product, error) {
	created, err := s.products.Create(ctx, input)
	if err != nil {
		return domain.Product{}, err
	}
	s.browse.Prepend(created)
	return created, nil
}

// UpdateProduct updates a product and patches every cached copy of it.
func (s *CatalogService) UpdateProduct(ctx context.Context, id domain.ProductID, input domain.ProductInput) (domain.Product, error) {
	updated, err := s.products.Update(ctx, id, input)
	if err != nil {
		return domain.Product{}, err
	}
	replace := func(p *domain.Product) bool {
		if p.ID != id {
			return false
		}
		*p = updated
		return true
	}
	s.browse.Mutate(replace)
	s.search.Mutate(replace)

	s.mu.Lock()
	if s.selected != nil && s.selected.ID == id {
		copied := updated
		s.selected = &copied
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteProduct deletes a product and evicts it from every cached view.
func (s *CatalogService) DeleteProduct(ctx context.Context, id domain.ProductID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	match := func(p domain.Product) bool { return p.ID == id }
	s.browse.Remove(match)
	s.search.Remove(match)

	s.mu.Lock()
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.mu.Unlock()
	return nil
}

// ApplyStockUpdate implements ports.StockCache: it propagates an
// authoritative stock level into the browse listing, the search results and
// the detail view without refetching any of them.
func (s *CatalogService) ApplyStockUpdate(update domain.StockUpdate) {
	patch := func(p *domain.Product) bool {
		if p.ID != update.ProductID {
			return false
		}
		p.Stock = update.NewStock
		return true
	}
	s.browse.Mutate(patch)
	s.search.Mutate(patch)

	s.mu.Lock()
	if s.selected != nil && s.selected.ID == update.ProductID {
		s.selected.Stock = update.NewStock
	}
	s.mu.Unlock()
}

func withDefaults(req domain.PageRequest) domain.PageRequest {
	if req.Limit <= 0 {
		req.Limit = defaultPageLimit
	}
	if req.SortOrder == "" {
		req.SortOrder = domain.SortDesc
	}
	return req
}
