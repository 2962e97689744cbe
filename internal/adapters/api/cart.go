package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lioncurt/shopfront-cli/internal/domain"
	"github.com/lioncurt/shopfront-cli/internal/ports"
)

// CartAPI implements ports.CartGateway against the /cart endpoints.
type CartAPI struct {
	Client *Client
}

var _ ports.CartGateway = (*CartAPI)(nil)

type cartLineSchema struct {
	ItemID          string   `json:"itemId"`
	ProductID       string   `json:"productId"`
	Quantity        int      `json:"quantity"`
	PriceAtAdd      float64  `json:"priceAtAdd"`
	ItemTotal       float64  `json:"itemTotal"`
	AddedAt         string   `json:"addedAt"`
	IsAvailable     bool     `json:"isAvailable"`
	ProductName     string   `json:"productName"`
	ProductPrice    float64  `json:"productPrice"`
	ProductStock    int      `json:"productStock"`
	ProductCategory string   `json:"productCategory"`
	ProductBrand    string   `json:"productBrand"`
	ProductImages   []string `json:"productImages"`
}

type cartSchema struct {
	CartID      string           `json:"cartId"`
	UserID      string           `json:"userId"`
	Items       []cartLineSchema `json:"items"`
	TotalAmount float64          `json:"totalAmount"`
	TotalItems  int              `json:"totalItems"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
}

func (c cartSchema) toDomain() domain.Cart {
	lines := make([]domain.CartLine, 0, len(c.Items))
	for _, item := range c.Items {
		itemID := item.ItemID
		if itemID == "" {
			// Older API versions address lines by product id.
			itemID = item.ProductID
		}
		lines = append(lines, domain.CartLine{
			ItemID:          itemID,
			ProductID:       domain.ProductID(item.ProductID),
			Quantity:        item.Quantity,
			PriceAtAdd:      item.PriceAtAdd,
			ItemTotal:       item.ItemTotal,
			AddedAt:         parseTime(item.AddedAt),
			IsAvailable:     item.IsAvailable,
			ProductName:     item.ProductName,
			ProductPrice:    item.ProductPrice,
			ProductStock:    item.ProductStock,
			ProductCategory: item.ProductCategory,
			ProductBrand:    item.ProductBrand,
			ProductImages:   item.ProductImages,
		})
	}
	return domain.Cart{
		CartID:      c.CartID,
		UserID:      c.UserID,
		Lines:       lines,
		TotalAmount: c.TotalAmount,
		TotalItems:  c.TotalItems,
		CreatedAt:   parseTime(c.CreatedAt),
		UpdatedAt:   parseTime(c.UpdatedAt),
	}
}

func (c *CartAPI) Get(ctx context.Context) (domain.Cart, error) {
	var cart cartSchema
	if err := c.Client.get(ctx, "/cart", nil, &cart); err != nil {
		return domain.Cart{}, err
	}
	return cart.toDomain(), nil
}

func (c *CartAPI) Add(ctx context.Context, productID domain.ProductID, quantity int) error {
	body := map[string]any{
		"productId": string(productID),
		"quantity":  quantity,
	}
	return c.Client.send(ctx, http.MethodPost, "/cart/add", nil, body, nil)
}

func (c *CartAPI) UpdateItem(ctx context.Context, itemID string, quantity int) error {
	body := map[string]any{"quantity": quantity}
	return c.Client.send(ctx, http.MethodPatch, "/cart/items/"+url.PathEscape(itemID), nil, body, nil)
}

func (c *CartAPI) RemoveItem(ctx context.Context, itemID string) error {
	return c.Client.send(ctx, http.MethodDelete, "/cart/items/"+url.PathEscape(itemID), nil, nil, nil)
}

func (c *CartAPI) Clear(ctx context.Context) error {
	return c.Client.send(ctx, http.MethodDelete, "/cart/clear", nil, nil, nil)
}
