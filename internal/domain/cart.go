package domain

import (
	"fmt"
	"time"
)

// CartLine is one product entry in the cart, with a snapshot of the product
// as it looked when the line was added. The server owns the arithmetic;
// ItemTotal and the cart totals are mirrored, never recomputed locally.
type CartLine struct {
	ItemID      string
	ProductID   ProductID
	Quantity    int
	PriceAtAdd  float64
	ItemTotal   float64
	AddedAt     time.Time
	IsAvailable bool

	ProductName     string
	ProductPrice    float64
	ProductStock    int
	ProductCategory string
	ProductBrand    string
	ProductImages   []string
}

type Cart struct {
	CartID      string
	UserID      string
	Lines       []CartLine
	TotalAmount float64
	TotalItems  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// LineByItemID returns the line with the given item id, if present.
func (c Cart) LineByItemID(itemID string) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.ItemID == itemID {
			return line, true
		}
	}
	return CartLine{}, false
}

// QuantityOf sums the quantities of the given product across all lines.
func (c Cart) QuantityOf(productID ProductID) int {
	total := 0
	for _, line := range c.Lines {
		if line.ProductID == productID {
			total += line.Quantity
		}
	}
	return total
}

// CheckoutLabel derives the human-readable line-item label submitted to the
// payment gateway: the product name when the cart holds a single distinct
// product, an aggregate label otherwise.
func (c Cart) CheckoutLabel() string {
	if len(c.Lines) == 1 {
		return c.Lines[0].ProductName
	}
	return fmt.Sprintf("Cart Items (%d products)", len(c.Lines))
}

// ConsistentTotals reports whether the mirrored totals match the lines.
// The server enforces this; the client only checks it in tests.
func (c Cart) ConsistentTotals() bool {
	var amount float64
	items := 0
	for _, line := range c.Lines {
		amount += line.ItemTotal
		items += line.Quantity
	}
	return amount == c.TotalAmount && items == c.TotalItems
}
