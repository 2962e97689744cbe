package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lioncurt/shopfront-cli/internal/domain"
	"github.com/lioncurt/shopfront-cli/internal/ports"
)

// ProductAPI implements ports.ProductGateway against the /products endpoints.
type ProductAPI struct {
	Client *Client
}

var _ ports.ProductGateway = (*ProductAPI)(nil)

type productSchema struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
	IsActive    bool     `json:"isActive"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

func (p productSchema) toDomain() domain.Product {
	return domain.Product{
		ID:          domain.ProductID(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Brand:       p.Brand,
		Images:      p.Images,
		Tags:        p.Tags,
		IsActive:    p.IsActive,
		CreatedAt:   parseTime(p.CreatedAt),
		UpdatedAt:   parseTime(p.UpdatedAt),
	}
}

type paginationSchema struct {
	HasMore    bool    `json:"hasMore"`
	NextCursor *string `json:"nextCursor"`
	Limit      int     `json:"limit"`
	SortOrder  string  `json:"sortOrder"`
}

func (p paginationSchema) toDomain() domain.PageCursor {
	next := ""
	if p.NextCursor != nil {
		next = *p.NextCursor
	}
	return domain.PageCursor{
		HasMore:    p.HasMore,
		NextCursor: next,
		Limit:      p.Limit,
		SortOrder:  domain.SortOrder(p.SortOrder),
	}.Normalize()
}

type productPageSchema struct {
	Products   []productSchema  `json:"products"`
	Count      int              `json:"count"`
	Pagination paginationSchema `json:"pagination"`
}

func (p productPageSchema) toDomain() domain.ProductPage {
	products := make([]domain.Product, 0, len(p.Products))
	for _, entry := range p.Products {
		products = append(products, entry.toDomain())
	}
	return domain.ProductPage{
		Products: products,
		Count:    p.Count,
		Cursor:   p.Pagination.toDomain(),
	}
}

func pageQuery(req domain.PageRequest) url.Values {
	query := url.Values{}
	if req.Limit > 0 {
		query.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Cursor != "" {
		query.Set("cursor", req.Cursor)
	}
	if req.SortOrder != "" {
		query.Set("sortOrder", string(req.SortOrder))
	}
	return query
}

func productInputBody(input domain.ProductInput) map[string]any {
	images := input.Images
	if images == nil {
		images = []string{}
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"price":       input.Price,
		"stock":       input.Stock,
		"category":    input.Category,
		"brand":       input.Brand,
		"images":      images,
		"tags":        tags,
	}
}

func (p *ProductAPI) List(ctx context.Context, req domain.PageRequest) (domain.ProductPage, error) {
	var page productPageSchema
	if err := p.Client.get(ctx, "/products", pageQuery(req), &page); err != nil {
		return domain.ProductPage{}, fmt.Errorf("list products: %w", err)
	}
	return page.toDomain(), nil
}

func (p *ProductAPI) Search(ctx context.Context, query string, req domain.PageRequest) (domain.ProductPage, error) {
	values := pageQuery(req)
	values.Set("query", query)

	var page productPageSchema
	if err := p.Client.get(ctx, "/products/search", values, &page); err != nil {
		return domain.ProductPage{}, fmt.Errorf("search products: %w", err)
	}
	return page.toDomain(), nil
}

func (p *ProductAPI) Get(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	var product productSchema
	if err := p.Client.get(ctx, "/products/"+url.PathEscape(string(id)), nil, &product); err != nil {
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return product.toDomain(), nil
}

func (p *ProductAPI) Create(ctx context.Context, input domain.ProductInput) (domain.Product, error) {
	var product productSchema
	err := p.Client.send(ctx, http.MethodPost, "/products", nil, productInputBody(input), &product)
	if err != nil {
		return domain.Product{}, adminError(err, "create")
	}
	return product.toDomain(), nil
}

func (p *ProductAPI) Update(ctx context.Context, id domain.ProductID, input domain.ProductInput) (domain.Product, error) {
	var product productSchema
	err := p.Client.send(ctx, http.MethodPut, "/products/"+url.PathEscape(string(id)), nil, productInputBody(input), &product)
	if err != nil {
		return domain.Product{}, adminError(err, "update")
	}
	return product.toDomain(), nil
}

func (p *ProductAPI) Delete(ctx context.Context, id domain.ProductID) error {
	err := p.Client.send(ctx, http.MethodDelete, "/products/"+url.PathEscape(string(id)), nil, nil, nil)
	if err != nil {
		return adminError(err, "delete")
	}
	return nil
}

type stockUpdateSchema struct {
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	Operation     string `json:"operation"`
	Quantity      int    `json:"quantity"`
	PreviousStock int    `json:"previousStock"`
	NewStock      int    `json:"newStock"`
	UpdatedAt     string `json:"updatedAt"`
}

func (p *ProductAPI) UpdateStock(ctx context.Context, id domain.ProductID, op domain.StockOperation, quantity int) (domain.StockUpdate, error) {
	body := map[string]any{
		"operation": string(op),
		"quantity":  quantity,
	}

	var update stockUpdateSchema
	path := "/products/" + url.PathEscape(string(id)) + "/stock"
	if err := p.Client.send(ctx, http.MethodPatch, path, nil, body, &update); err != nil {
		return domain.StockUpdate{}, fmt.Errorf("update stock: %w", err)
	}
	return domain.StockUpdate{
		ProductID:     domain.ProductID(update.ProductID),
		ProductName:   update.ProductName,
		Operation:     domain.StockOperation(update.Operation),
		Quantity:      update.Quantity,
		PreviousStock: update.PreviousStock,
		NewStock:      update.NewStock,
		UpdatedAt:     parseTime(update.UpdatedAt),
	}, nil
}

// adminError substitutes the generic 403 message with the specific
// admin-access wording the product mutation endpoints call for.
func adminError(err error, verb string) error {
	if IsForbidden(err) {
		return &Error{
			Kind:    KindForbidden,
			Status:  http.StatusForbidden,
			Message: fmt.Sprintf("admin access required to %s products", verb),
		}
	}
	return err
}
