package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lioncurt/shopfront-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductListDecodesPageAndCursor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "desc", r.URL.Query().Get("sortOrder"))
		_, _ = w.Write([]byte(`{
			"success": true,
			"message": "ok",
			"data": {
				"products": [
					{"id":"p-1","name":"Canvas Tote","price":20,"stock":10,"category":"bags","brand":"north","isActive":true},
					{"id":"p-2","name":"Enamel Mug","price":12.5,"stock":4,"category":"kitchen","brand":"ember","isActive":true}
				],
				"count": 2,
				"pagination": {"hasMore":true,"nextCursor":"cur-2","limit":20,"sortOrder":"desc"}
			}
		}`))
	}))
	defer server.Close()

	gw := &ProductAPI{Client: &Client{BaseURL: server.URL}}
	page, err := gw.List(context.Background(), domain.PageRequest{Limit: 20, SortOrder: domain.SortDesc})
	require.NoError(t, err)

	require.Len(t, page.Products, 2)
	assert.Equal(t, domain.ProductID("p-1"), page.Products[0].ID)
	assert.Equal(t, 10, page.Products[0].Stock)
	assert.True(t, page.Cursor.HasMore)
	assert.Equal(t, "cur-2", page.Cursor.NextCursor)
}

func TestProductListNormalizesNullCursor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"products": [],
				"count": 0,
				"pagination": {"hasMore":true,"nextCursor":null,"limit":20,"sortOrder":"desc"}
			}
		}`))
	}))
	defer server.Close()

	gw := &ProductAPI{Client: &Client{BaseURL: server.URL}}
	page, err := gw.List(context.Background(), domain.PageRequest{Limit: 20})
	require.NoError(t, err)

	// nextCursor null forces hasMore false no matter what the server claims.
	assert.False(t, page.Cursor.HasMore)
	assert.Empty(t, page.Cursor.NextCursor)
}

func TestProductSearchSendsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/search", r.URL.Path)
		assert.Equal(t, "tote", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"products":[],"count":0,"pagination":{"hasMore":false,"nextCursor":null}}}`))
	}))
	defer server.Close()

	gw := &ProductAPI{Client: &Client{BaseURL: server.URL}}
	_, err := gw.Search(context.Background(), "tote", domain.PageRequest{})
	require.NoError(t, err)
}

func TestProductMutationsMapForbiddenToAdminMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success":false,"message":"forbidden"}`))
	}))
	defer server.Close()

	gw := &ProductAPI{Client: &Client{BaseURL: server.URL}}

	_, err := gw.Create(context.Background(), domain.ProductInput{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, "admin access required to create products", err.Error())

	_, err = gw.Update(context.Background(), "p-1", domain.ProductInput{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, "admin access required to update products", err.Error())

	err = gw.Delete(context.Background(), "p-1")
	require.Error(t, err)
	assert.Equal(t, "admin access required to delete products", err.Error())
}

func TestUpdateStockSendsOperationAndDecodesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/products/p-1/stock", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "subtract", body["operation"])
		assert.Equal(t, float64(2), body["quantity"])

		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"productId":"p-1","productName":"Canvas Tote","operation":"subtract","quantity":2,"previousStock":10,"newStock":8}
		}`))
	}))
	defer server.Close()

	gw := &ProductAPI{Client: &Client{BaseURL: server.URL}}
	update, err := gw.UpdateStock(context.Background(), "p-1", domain.StockSubtract, 2)
	require.NoError(t, err)

	assert.Equal(t, 10, update.PreviousStock)
	assert.Equal(t, 8, update.NewStock)
	assert.Equal(t, domain.StockSubtract, update.Operation)
}
