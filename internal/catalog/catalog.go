// Package catalog calls the remote catalog and basket endpoints. All
// price figures come back from the service verbatim: the client never
// computes or stores prices.
package catalog

import (
	"context"
	"fmt"

	"kolikctl/internal/gateway"
)

// VendorPrice is one vendor's offer for a product, rendered as
// returned by the service.
type VendorPrice struct {
	Vendor string `json:"vendor"`
	Price  string `json:"price"`
}

// Product is a catalog entry.
type Product struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Unit     string        `json:"unit"`
	Prices   []VendorPrice `json:"prices,omitempty"`
}

// BestDeal is the service's comparison result for a basket.
type BestDeal struct {
	Vendor string            `json:"vendor"`
	Total  string            `json:"total"`
	Totals map[string]string `json:"totals"`
}

// Client is the typed wrapper over the catalog API. The endpoints are
// protected: callers are expected to hold an authenticated session.
type Client struct {
	c *gateway.Client
}

// NewClient wraps a backend client into the catalog client.
func NewClient(c *gateway.Client) *Client {
	return &Client{c: c}
}

// Products returns the product list.
func (cl *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := cl.c.Get(ctx, "/products/", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product returns one product with its per-vendor prices.
func (cl *Client) Product(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := cl.c.Get(ctx, fmt.Sprintf("/products/%d/", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

type bestDealRequest struct {
	ProductIDs []int64 `json:"product_ids"`
}

// BestDeal asks the service which vendor is cheapest for the given
// basket. The call mutates server-side basket state, so it carries the
// CSRF token like any other mutation.
func (cl *Client) BestDeal(ctx context.Context, productIDs []int64) (*BestDeal, error) {
	var deal BestDeal
	if err := cl.c.Post(ctx, "/basket/best-deal/", bestDealRequest{ProductIDs: productIDs}, &deal); err != nil {
		return nil, err
	}
	return &deal, nil
}
