package domain

import "time"

type ProductID string

type Product struct {
	ID          ProductID
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Brand       string
	Images      []string
	Tags        []string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductInput carries the fields a caller may set when creating or
// updating a product. Zero values are sent as-is; the server validates.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Brand       string
	Images      []string
	Tags        []string
}

type StockOperation string

const (
	StockAdd      StockOperation = "add"
	StockSubtract StockOperation = "subtract"
)

// StockUpdate is the server's report of an applied stock mutation.
type StockUpdate struct {
	ProductID     ProductID
	ProductName   string
	Operation     StockOperation
	Quantity      int
	PreviousStock int
	NewStock      int
	UpdatedAt     time.Time
}

// ProductPage is one page of a cursor-paginated product listing.
type ProductPage struct {
	Products []Product
	Count    int
	Cursor   PageCursor
}
