package ports

import (
	"context"

	"github.com/lioncurt/shopfront-cli/internal/domain"
)

// AuthGateway wraps the storefront API's authentication endpoints.
type AuthGateway interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error)
	Register(ctx context.Context, reg domain.Registration) (domain.AuthResult, error)
	Profile(ctx context.Context) (domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	Logout(ctx context.Context) error
}

// ProductGateway wraps the product catalog and inventory endpoints.
type ProductGateway interface {
	List(ctx context.Context, req domain.PageRequest) (domain.ProductPage, error)
	Search(ctx context.Context, query string, req domain.PageRequest) (domain.ProductPage, error)
	Get(ctx context.Context, id domain.ProductID) (domain.Product, error)
	Create(ctx context.Context, input domain.ProductInput) (domain.Product, error)
	Update(ctx context.Context, id domain.ProductID, input domain.ProductInput) (domain.Product, error)
	Delete(ctx context.Context, id domain.ProductID) error
	UpdateStock(ctx context.Context, id domain.ProductID, op domain.StockOperation, quantity int) (domain.StockUpdate, error)
}

// CartGateway wraps the cart endpoints. Mutations report success only; the
// caller re-fetches the authoritative cart afterwards.
type CartGateway interface {
	Get(ctx context.Context) (domain.Cart, error)
	Add(ctx context.Context, productID domain.ProductID, quantity int) error
	UpdateItem(ctx context.Context, itemID string, quantity int) error
	RemoveItem(ctx context.Context, itemID string) error
	Clear(ctx context.Context) error
}

// StockCache receives authoritative stock levels observed during cart
// mutations so cached product views stay consistent without a refetch.
type StockCache interface {
	ApplyStockUpdate(update domain.StockUpdate)
}

// UserGateway wraps the admin user endpoints.
type UserGateway interface {
	List(ctx context.Context, req domain.PageRequest) (domain.UserPage, error)
	Get(ctx context.Context, id domain.UserID) (domain.User, error)
	Update(ctx context.Context, id domain.UserID, update domain.UserUpdate) (domain.User, error)
	Delete(ctx context.Context, id domain.UserID) error
}

// CheckoutSession is the payment gateway's handoff target. Payment outcome
// is reported out-of-band through the return URLs, never tracked here.
type CheckoutSession struct {
	SessionID  string
	URL        string
	SuccessURL string
	CancelURL  string
}

type CheckoutRequest struct {
	Amount      float64
	ProductName string
	Quantity    int
}

// PaymentGateway creates hosted checkout sessions.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
}
