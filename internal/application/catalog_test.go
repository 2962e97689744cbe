package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lioncurt/shopfront-cli/internal/domain"
)

// fakeProductGateway serves a fixed catalog and a canned search result set,
// both paginated with the API's cursor contract.
type fakeProductGateway struct {
	mu       sync.Mutex
	catalog  []domain.Product
	matches  map[string][]domain.Product
	pageSize int

	listCalls   int
	searchCalls int
	searched    []string

	created domain.Product
	updated domain.Product
}

func (g *fakeProductGateway) page(items []domain.Product, req domain.PageRequest) (domain.ProductPage, error) {
	start := 0
	if req.Cursor != "" {
		fmt.Sscanf(req.Cursor, "%d", &start)
	}
	end := start + g.pageSize
	if end > len(items) {
		end = len(items)
	}
	cursor := domain.PageCursor{HasMore: end < len(items), Limit: g.pageSize, SortOrder: req.SortOrder}
	if cursor.HasMore {
		cursor.NextCursor = fmt.Sprintf("%d", end)
	}
	return domain.ProductPage{Products: items[start:end], Count: len(items), Cursor: cursor}, nil
}

func (g *fakeProductGateway) List(_ context.Context, req domain.PageRequest) (domain.ProductPage, error) {
	g.mu.Lock()
	g.listCalls++
	g.mu.Unlock()
	return g.page(g.catalog, req)
}

func (g *fakeProductGateway) Search(_ context.Context, query string, req domain.PageRequest) (domain.ProductPage, error) {
	g.mu.Lock()
	g.searchCalls++
	g.searched = append(g.searched, query)
	g.mu.Unlock()
	return g.page(g.matches[query], req)
}

func (g *fakeProductGateway) Get(_ context.Context, id domain.ProductID) (domain.Product, error) {
	for _, p := range g.catalog {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product %s not found", id)
}

func (g *fakeProductGateway) Create(_ context.Context, _ domain.ProductInput) (domain.Product, error) {
	return g.created, nil
}

func (g *fakeProductGateway) Update(_ context.Context, _ domain.ProductID, _ domain.ProductInput) (domain.Product, error) {
	return g.updated, nil
}

func (g *fakeProductGateway) Delete(_ context.Context, _ domain.ProductID) error { return nil }

func (g *fakeProductGateway) UpdateStock(_ context.Context, _ domain.ProductID, _ domain.StockOperation, _ int) (domain.StockUpdate, error) {
	return domain.StockUpdate{}, nil
}

func (g *fakeProductGateway) searchCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.searchCalls
}

func catalogOf(n int) []domain.Product {
	products := make([]domain.Product, n)
	for i := range products {
		products[i] = domain.Product{
			ID:    domain.ProductID(fmt.Sprintf("prod-%02d", i)),
			Name:  fmt.Sprintf("Product %02d", i),
			Stock: 10,
			Price: 20,
		}
	}
	return products
}

func newTestCatalog(gateway *fakeProductGateway) *CatalogService {
	return NewCatalogService(gateway, zerolog.Nop())
}

func TestCatalogSearchLeavesBrowseIntact(t *testing.T) {
	gateway := &fakeProductGateway{
		catalog:  catalogOf(6),
		matches:  map[string][]domain.Product{"runner": {{ID: "prod-42", Name: "Trail Runner"}}},
		pageSize: 2,
	}
	svc := newTestCatalog(gateway)
	ctx := context.Background()

	require.NoError(t, svc.LoadBrowse(ctx, domain.PageRequest{Limit: 2}))
	_, err := svc.LoadMore(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, svc.Browse().Len())

	require.NoError(t, svc.Search(ctx, "runner", domain.PageRequest{}))
	require.True(t, svc.Searching())
	require.Equal(t, 1, svc.SearchResults().Len())
	require.Equal(t, 4, svc.Browse().Len(), "search never disturbs the browse accumulation")

	// LoadMore while searching extends the search view only.
	_, err = svc.LoadMore(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, svc.Browse().Len())

	svc.ClearSearch()
	require.False(t, svc.Searching())
	require.Zero(t, svc.SearchResults().Len())
	require.Equal(t, 4, svc.Browse().Len(), "clearing restores the browsed list as it was")
}

func TestCatalogSearchTrimsAndSuppressesDuplicates(t *testing.T) {
	gateway := &fakeProductGateway{
		catalog:  catalogOf(2),
		matches:  map[string][]domain.Product{"runner": {{ID: "prod-42", Name: "Trail Runner"}}},
		pageSize: 5,
	}
	svc := newTestCatalog(gateway)
	ctx := context.Background()

	require.NoError(t, svc.Search(ctx, "  runner  ", domain.PageRequest{}))
	require.Equal(t, 1, gateway.searchCount())
	require.Equal(t, []string{"runner"}, gateway.searched)

	// Same trimmed query again: suppressed.
	require.NoError(t, svc.Search(ctx, "runner", domain.PageRequest{}))
	require.Equal(t, 1, gateway.searchCount())

	// After clearing, the same query runs again.
	svc.ClearSearch()
	require.NoError(t, svc.Search(ctx, "runner", domain.PageRequest{}))
	require.Equal(t, 2, gateway.searchCount())
}

func TestCatalogEmptyQueryClearsSearch(t *testing.T) {
	gateway := &fakeProductGateway{
		catalog:  catalogOf(2),
		matches:  map[string][]domain.Product{"runner": {{ID: "prod-42"}}},
		pageSize: 5,
	}
	svc := newTestCatalog(gateway)
	ctx := context.Background()

	require.NoError(t, svc.Search(ctx, "runner", domain.PageRequest{}))
	require.True(t, svc.Searching())

	require.NoError(t, svc.Search(ctx, "   ", domain.PageRequest{}))
	require.False(t, svc.Searching())
	require.Zero(t, svc.SearchResults().Len())
	require.Equal(t, 1, gateway.searchCount(), "whitespace query never hits the API")
}

func TestCatalogDebouncedSearchFiresOnce(t *testing.T) {
	gateway := &fakeProductGateway{
		catalog:  catalogOf(2),
		matches:  map[string][]domain.Product{"road racer": {{ID: "prod-7", Name: "Road Racer"}}},
		pageSize: 5,
	}
	svc := newTestCatalog(gateway)
	ctx := context.Background()

	done := make(chan error, 1)
	for _, partial := range []string{"r", "ro", "road", "road racer"} {
		svc.DebouncedSearch(ctx, partial, domain.PageRequest{}, func(err error) { done <- err })
	}

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced search never fired")
	}

	require.Equal(t, 1, gateway.searchCount(), "only the final query hits the API")
	require.Equal(t, []string{"road racer"}, gateway.searched)
}

func TestCatalogSubmitSearchBypassesDebounce(t *testing.T) {
	gateway := &fakeProductGateway{
		catalog:  catalogOf(2),
		matches:  map[string][]domain.Product{"runner": {{ID: "prod-42"}}},
		pageSize: 5,
	}
	svc := newTestCatalog(gateway)
	ctx := context.Background()

	// A pending debounced search is superseded by the submit.
	svc.DebouncedSearch(ctx, "run", domain.PageRequest{}, nil)
	require.NoError(t, svc.SubmitSearch(ctx, "runner", domain.PageRequest{}))

	require.Equal(t, 1, gateway.searchCount())
	require.Equal(t, []string{"runner"}, gateway.searched)

	// The cancelled debounce never fires.
	time.Sleep(searchDebounce + 100*time.Millisecond)
	require.Equal(t, 1, gateway.searchCount())
}

func TestCatalogSelectProduct(t *testing.T) {
	gateway := &fakeProductGateway{catalog: catalogOf(3), pageSize: 5}
	svc := newTestCatalog(gateway)

	product, err := svc.SelectProduct(context.Background(), "prod-01")
	require.NoError(t, err)
	require.Equal(t, "Product 01", product.Name)

	selected, ok := svc.Selected()
	require.True(t, ok)
	require.Equal(t, product, selected)

	svc.ClearSelected()
	_, ok = svc.Selected()
	require.False(t, ok)
}

func TestCatalogCreatePrependsToBrowse(t *testing.T) {
	gateway := &fakeProductGateway{
		catalog:  catalogOf(3),
		pageSize: 5,
		created:  domain.Product{ID: "prod-new", Name: "Fresh Kicks", Stock: 5},
	}
	svc := newTestCatalog(gateway)
	ctx := context.Background()

	require.NoError(t, svc.LoadBrowse(ctx, domain.PageRequest{}))
	created, err := svc.CreateProduct(ctx, domain.ProductInput{Name: "Fresh Kicks"})
	require.NoError(t, err)

	items := svc.Browse().Items()
	require.Equal(t, created.ID, items[0].ID, "new product appears first without a refetch")
	require.Equal(t, 4, svc.Browse().Total())
}

func TestCatalogUpdatePatchesAllViews(t *testing.T) {
	gateway := &fakeProductGateway{
		catalog:  catalogOf(3),
		matches:  map[string][]domain.Product{"product": catalogOf(3)},
		pageSize: 5,
		updated:  domain.Product{ID: "prod-01", Name: "Renamed", Stock: 10},
	}
	svc := newTestCatalog(gateway)
	ctx := context.Background()

	require.NoError(t, svc.LoadBrowse(ctx, domain.PageRequest{}))
	require.NoError(t, svc.Search(ctx, "product", domain.PageRequest{}))
	_, err := svc.SelectProduct(ctx, "prod-01")
	require.NoError(t, err)

	_, err = svc.UpdateProduct(ctx, "prod-01", domain.ProductInput{Name: "Renamed"})
	require.NoError(t, err)

	for _, items := range [][]domain.Product{svc.Browse().Items(), svc.SearchResults().Items()} {
		for _, p := range items {
			if p.ID == "prod-01" {
				require.Equal(t, "Renamed", p.Name)
			}
		}
	}
	selected, ok := svc.Selected()
	require.True(t, ok)
	require.Equal(t, "Renamed", selected.Name)
}

func TestCatalogDeleteEvictsEverywhere(t *testing.T) {
	gateway := &fakeProductGateway{
		catalog:  catalogOf(3),
		matches:  map[string][]domain.Product{"product": catalogOf(3)},
		pageSize: 5,
	}
	svc := newTestCatalog(gateway)
	ctx := context.Background()

	require.NoError(t, svc.LoadBrowse(ctx, domain.PageRequest{}))
	require.NoError(t, svc.Search(ctx, "product", domain.PageRequest{}))
	_, err := svc.SelectProduct(ctx, "prod-01")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, "prod-01"))

	for _, p := range svc.Browse().Items() {
		require.NotEqual(t, domain.ProductID("prod-01"), p.ID)
	}
	for _, p := range svc.SearchResults().Items() {
		require.NotEqual(t, domain.ProductID("prod-01"), p.ID)
	}
	_, ok := svc.Selected()
	require.False(t, ok)
}

func TestCatalogApplyStockUpdate(t *testing.T) {
	gateway := &fakeProductGateway{
		catalog:  catalogOf(3),
		matches:  map[string][]domain.Product{"product": catalogOf(3)},
		pageSize: 5,
	}
	svc := newTestCatalog(gateway)
	ctx := context.Background()

	require.NoError(t, svc.LoadBrowse(ctx, domain.PageRequest{}))
	require.NoError(t, svc.Search(ctx, "product", domain.PageRequest{}))
	_, err := svc.SelectProduct(ctx, "prod-01")
	require.NoError(t, err)

	svc.ApplyStockUpdate(domain.StockUpdate{ProductID: "prod-01", NewStock: 8})

	for _, p := range svc.Browse().Items() {
		if p.ID == "prod-01" {
			require.Equal(t, 8, p.Stock)
		} else {
			require.Equal(t, 10, p.Stock, "other products untouched")
		}
	}
	for _, p := range svc.SearchResults().Items() {
		if p.ID == "prod-01" {
			require.Equal(t, 8, p.Stock)
		}
	}
	selected, ok := svc.Selected()
	require.True(t, ok)
	require.Equal(t, 8, selected.Stock)
}
