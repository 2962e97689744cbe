package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

func TestClientAttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{}}`))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, Tokens: staticTokens("token-123")}
	require.NoError(t, client.get(context.Background(), "/cart", nil, nil))

	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClientOmitsBearerWhenNoToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, Tokens: staticTokens("")}
	require.NoError(t, client.get(context.Background(), "/products", nil, nil))

	assert.Empty(t, gotAuth)
}

func TestClientClassifiesStatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind ErrorKind
	}{
		{name: "401 is auth", status: http.StatusUnauthorized, wantKind: KindAuth},
		{name: "403 is forbidden", status: http.StatusForbidden, wantKind: KindForbidden},
		{name: "422 is validation", status: http.StatusUnprocessableEntity, wantKind: KindValidation},
		{name: "500 is server", status: http.StatusInternalServerError, wantKind: KindServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"success":false,"message":"nope"}`))
			}))
			defer server.Close()

			client := &Client{BaseURL: server.URL}
			err := client.get(context.Background(), "/cart", nil, nil)
			require.Error(t, err)
			assert.True(t, IsKind(err, tt.wantKind))
			assert.Equal(t, "nope", err.Error())
		})
	}
}

func TestClientNormalizesTransportFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := &Client{BaseURL: server.URL}
	err := client.get(context.Background(), "/cart", nil, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNetwork))
	assert.Equal(t, "request failed, please try again", err.Error())
}

func TestClientPassesValidationMessageThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"quantity exceeds available stock"}`))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL}
	err := client.send(context.Background(), http.MethodPost, "/cart/add", nil, map[string]any{"quantity": 99}, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
	assert.Equal(t, "quantity exceeds available stock", err.Error())
}

func TestBuildAPIURLKeepsBasePathPrefix(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{name: "default base", base: "http://localhost:5000/api", path: "/products", want: "http://localhost:5000/api/products"},
		{name: "trailing slash base", base: "http://localhost:5000/api/", path: "/cart", want: "http://localhost:5000/api/cart"},
		{name: "nested path", base: "https://shop.example.com/api", path: "/cart/items/item-1", want: "https://shop.example.com/api/cart/items/item-1"},
		{name: "no prefix", base: "https://api.example.com", path: "/auth/login", want: "https://api.example.com/auth/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint, err := buildAPIURL(tt.base, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, endpoint)
		})
	}
}

func TestClientRequestsUnderBasePathPrefix(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":[]}`))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL + "/api"}
	require.NoError(t, client.get(context.Background(), "/products", nil, nil))

	assert.Equal(t, "/api/products", gotPath)
}

func TestBuildAPIURLRejectsBadBases(t *testing.T) {
	_, err := buildAPIURL("", "/cart")
	require.Error(t, err)

	_, err = buildAPIURL("ftp://example.com", "/cart")
	require.Error(t, err)

	endpoint, err := buildAPIURL("https://api.example.com", "/cart")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/cart", endpoint)
}
