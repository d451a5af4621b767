package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaxyebile/admin/internal/domain"
	"github.com/yaxyebile/admin/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(&config.BackendConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchProductsNormalizesRecordIDs(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"_id": "mongo-1", "id": "legacy-1", "name": "A", "price": 10},
			{"id": "plain-2", "name": "B", "price": 20}
		]`))
	}))

	products, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "mongo-1", products[0].ID, "_id wins when both are present")
	assert.Equal(t, "plain-2", products[1].ID)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(10)))
}

func TestFetchProductNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "not found"}`, http.StatusNotFound)
	}))

	_, err := client.FetchProduct(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Contains(t, httpErr.Body, "not found")
}

func TestUnreachableBackendReturnsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(&config.BackendConfig{
		BaseURL: url,
		Timeout: time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.FetchProducts(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.MethodGet, netErr.Method)
	assert.False(t, IsNotFound(err))
}

func TestCreateProductOmitsServerAssignedFields(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"_id": "server-1", "name": "Runner", "price": 59.9}`))
	}))

	created, err := client.CreateProduct(context.Background(), domain.Product{
		ID:        "must-not-be-sent",
		Name:      "Runner",
		Slug:      "runner",
		Category:  "shoes",
		Price:     decimal.RequireFromString("59.9"),
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "server-1", created.ID)

	assert.NotContains(t, body, "id")
	assert.NotContains(t, body, "_id")
	assert.NotContains(t, body, "createdAt")
	assert.Equal(t, 59.9, body["price"], "price must be a bare JSON number")
}

func TestUpdateProductSendsSparsePatch(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/p1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"id": "p1", "name": "Renamed", "price": 10}`))
	}))

	name := "Renamed"
	updated, err := client.UpdateProduct(context.Background(), "p1", domain.ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	assert.Equal(t, map[string]any{"name": "Renamed"}, body, "absent fields must be omitted")
}

func TestFetchCategoriesSubstitutesDefaultImage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"_id": "c1", "name": "Shoes", "slug": "shoes", "image": "/shoes.png"},
			{"_id": "c2", "name": "Shirts", "slug": "shirts"}
		]`))
	}))

	categories, err := client.FetchCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "/shoes.png", categories[0].Image)
	assert.Equal(t, defaultCategoryImage, categories[1].Image)
}

func TestDeleteProductEscapesID(t *testing.T) {
	var path string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteProduct(context.Background(), "a/b"))
	assert.Equal(t, "/products/a%2Fb", path)
}

func TestUpdateOrderStatusRoundTrip(t *testing.T) {
	var body map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/orders/o1/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"_id": "o1", "userId": "u1", "status": "shipped", "total": 40}`))
	}))

	order, err := client.UpdateOrderStatus(context.Background(), "o1", "shipped")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "shipped"}, body)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, "shipped", order.Status)
}

func TestCreateOrderMapsWireShape(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{
			"_id": "o9", "userId": "u1", "status": "pending", "total": 40,
			"products": [{"product": "p1", "quantity": 2}]
		}`))
	}))

	order, err := client.CreateOrder(context.Background(), domain.Order{
		UserID: "u1",
		Items:  []domain.OrderItem{{ProductID: "p1", Quantity: 2}},
		Total:  decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", body["userId"])
	assert.Contains(t, body, "products", "line items travel under the products key")
	assert.NotContains(t, body, "status", "the server assigns the initial status")

	assert.Equal(t, "o9", order.ID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "p1", order.Items[0].ProductID)
}

func TestNetworkErrorUnwraps(t *testing.T) {
	inner := errors.New("connection refused")
	err := &NetworkError{Method: "GET", URL: "http://x", Err: inner}
	assert.ErrorIs(t, err, inner)
}
