package application

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lioncurt/shopfront-cli/internal/domain"
	"github.com/lioncurt/shopfront-cli/internal/ports"
)

// taxMultiplier is applied to the cart total at checkout handoff.
const taxMultiplier = 1.08

// CartService reconciles cart mutations against server inventory. Every
// mutation follows the same shape: the primary cart call decides success,
// a compensating stock adjustment keeps displayed inventory honest (its
// failures are logged and swallowed), and an authoritative re-fetch
// replaces the cached cart wholesale.
type CartService struct {
	carts    ports.CartGateway
	products ports.ProductGateway
	payments ports.PaymentGateway
	stock    ports.StockCache
	log      zerolog.Logger

	mu   sync.Mutex
	cart *domain.Cart
}

func NewCartService(carts ports.CartGateway, products ports.ProductGateway, payments ports.PaymentGateway, stock ports.StockCache, logger zerolog.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		payments: payments,
		stock:    stock,
		log:      logger.With().Str("component", "cart").Logger(),
	}
}

// Cart returns the cached cart snapshot and whether one has been loaded.
func (s *CartService) Cart() (domain.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return domain.Cart{}, false
	}
	return *s.cart, true
}

// Refresh replaces the cached cart with the server's authoritative state.
func (s *CartService) Refresh(ctx context.Context) (domain.Cart, error) {
	cart, err := s.carts.Get(ctx)
	if err != nil {
		return domain.Cart{}, err
	}
	s.mu.Lock()
	s.cart = &cart
	s.mu.Unlock()
	return cart, nil
}

// Add puts quantity units of a product in the cart, then subtracts them
// from displayed stock and re-fetches the cart.
func (s *CartService) Add(ctx context.Context, productID domain.ProductID, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, domain.ErrQuantityTooLow
	}
	if err := s.carts.Add(ctx, productID, quantity); err != nil {
		return domain.Cart{}, err
	}
	s.adjustStock(ctx, productID, domain.StockSubtract, quantity)
	return s.Refresh(ctx)
}

// UpdateQuantity sets an item's quantity to an absolute value. The stock
// adjustment covers only the delta from the cached quantity; quantities
// below one are rejected, removal is a separate operation.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID string, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, domain.ErrQuantityTooLow
	}

	line, err := s.lineByItemID(ctx, itemID)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := s.carts.UpdateItem(ctx, itemID, quantity); err != nil {
		return domain.Cart{}, err
	}

	switch delta := quantity - line.Quantity; {
	case delta > 0:
		s.adjustStock(ctx, line.ProductID, domain.StockSubtract, delta)
	case delta < 0:
		s.adjustStock(ctx, line.ProductID, domain.StockAdd, -delta)
	}
	return s.Refresh(ctx)
}

// Remove deletes a cart line and returns its units to displayed stock.
func (s *CartService) Remove(ctx context.Context, itemID string) (domain.Cart, error) {
	line, err := s.lineByItemID(ctx, itemID)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := s.carts.RemoveItem(ctx, itemID); err != nil {
		return domain.Cart{}, err
	}
	s.adjustStock(ctx, line.ProductID, domain.StockAdd, line.Quantity)
	return s.Refresh(ctx)
}

// Clear empties the cart. No stock compensation: the server releases
// cleared inventory itself, so displayed levels come from the next fetch.
func (s *CartService) Clear(ctx context.Context) (domain.Cart, error) {
	if err := s.carts.Clear(ctx); err != nil {
		return domain.Cart{}, err
	}
	return s.Refresh(ctx)
}

// Checkout creates a hosted checkout session for the cached cart. The
// amount is the cart total plus tax, rounded to cents.
func (s *CartService) Checkout(ctx context.Context) (ports.CheckoutSession, error) {
	cart, ok := s.Cart()
	if !ok {
		var err error
		cart, err = s.Refresh(ctx)
		if err != nil {
			return ports.CheckoutSession{}, err
		}
	}
	if cart.Empty() {
		return ports.CheckoutSession{}, domain.ErrEmptyCart
	}

	session, err := s.payments.CreateCheckoutSession(ctx, ports.CheckoutRequest{
		Amount:      s.CheckoutAmount(cart),
		ProductName: cart.CheckoutLabel(),
		Quantity:    cart.TotalItems,
	})
	if err != nil {
		return ports.CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}
	return session, nil
}

// CheckoutAmount is the taxed total submitted for the given cart.
func (s *CartService) CheckoutAmount(cart domain.Cart) float64 {
	return roundCents(cart.TotalAmount * taxMultiplier)
}

// lineByItemID resolves a cart line from the cache, fetching the cart first
// when nothing is cached yet.
func (s *CartService) lineByItemID(ctx context.Context, itemID string) (domain.CartLine, error) {
	cart, ok := s.Cart()
	if !ok {
		var err error
		cart, err = s.Refresh(ctx)
		if err != nil {
			return domain.CartLine{}, err
		}
	}
	line, ok := cart.LineByItemID(itemID)
	if !ok {
		return domain.CartLine{}, domain.ErrLineNotFound
	}
	return line, nil
}

// adjustStock issues the compensating inventory call. The cart mutation has
// already succeeded at this point, so a stock failure must not surface: it
// is logged and the next fetch shows the server's numbers.
func (s *CartService) adjustStock(ctx context.Context, productID domain.ProductID, op domain.StockOperation, quantity int) {
	update, err := s.products.UpdateStock(ctx, productID, op, quantity)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("product_id", string(productID)).
			Str("operation", string(op)).
			Int("quantity", quantity).
			Msg("stock adjustment failed")
		return
	}
	if s.stock != nil {
		s.stock.ApplyStockUpdate(update)
	}
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
