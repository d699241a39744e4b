package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kolikctl/internal/apierr"
	"kolikctl/internal/gateway"
)

type fixedTokens struct{}

func (fixedTokens) EnsureToken(context.Context) (string, error) { return "tok", nil }

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL + "/api")
	require.NoError(t, err)

	return NewClient(gateway.NewClient(srv.Client(), base, fixedTokens{}))
}

func TestProducts(t *testing.T) {
	cl := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`[{"id":1,"name":"Milk","category":"Dairy","unit":"1 l"},{"id":2,"name":"Bread","category":"Bakery","unit":"500 g"}]`))
	}))

	products, err := cl.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Milk", products[0].Name)
	assert.Equal(t, "Bakery", products[1].Category)
}

func TestProduct(t *testing.T) {
	cl := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/7/", r.URL.Path)
		w.Write([]byte(`{"id":7,"name":"Butter","category":"Dairy","unit":"250 g","prices":[{"vendor":"tesco","price":"54.90"},{"vendor":"billa","price":"49.90"}]}`))
	}))

	product, err := cl.Product(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), product.ID)
	require.Len(t, product.Prices, 2)
	assert.Equal(t, "billa", product.Prices[1].Vendor)
	assert.Equal(t, "49.90", product.Prices[1].Price)
}

func TestProduct_NotFound(t *testing.T) {
	cl := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not found."}`))
	}))

	_, err := cl.Product(context.Background(), 99)
	require.Error(t, err)

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Not found.", apiErr.Message)
}

func TestBestDeal(t *testing.T) {
	var gotCSRF string
	var gotBody map[string][]int64
	cl := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/basket/best-deal/", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		gotCSRF = r.Header.Get("X-CSRFToken")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"vendor":"billa","total":"123.40","totals":{"billa":"123.40","tesco":"131.20"}}`))
	}))

	deal, err := cl.BestDeal(context.Background(), []int64{1, 2, 7})
	require.NoError(t, err)
	assert.Equal(t, "tok", gotCSRF)
	assert.Equal(t, []int64{1, 2, 7}, gotBody["product_ids"])
	assert.Equal(t, "billa", deal.Vendor)
	assert.Equal(t, "131.20", deal.Totals["tesco"])
}
