// Package product talks to the upstream Peermall product service. The
// engine treats it as a read-only source of community metadata and
// listings; nothing fetched here is written back through the record
// store.
package product

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/peermall/peerstore/internal/model"
)

// Product is a listing owned by a community's mall.
type Product struct {
	ID          string  `json:"id"`
	CommunityID string  `json:"communityId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// Client is a thin REST client for the product service.
type Client struct {
	http *resty.Client
}

// NewClient builds a client against baseURL.
func NewClient(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// GetCommunity fetches the remote view of a community. A 404 maps to
// model.ErrNotFound so callers can treat remote and local misses alike.
func (c *Client) GetCommunity(ctx context.Context, id string) (*model.Community, error) {
	var out model.Community
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/v0/communities/%s", id))
	if err != nil {
		return nil, fmt.Errorf("get community %s: %w", id, err)
	}
	if resp.StatusCode() == 404 {
		return nil, model.ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get community %s: status %d", id, resp.StatusCode())
	}
	return &out, nil
}

// ListProducts fetches the listings for a community's mall.
func (c *Client) ListProducts(ctx context.Context, communityID string) ([]Product, error) {
	var out []Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetQueryParam("communityId", communityID).
		Get("/v0/products")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list products: status %d", resp.StatusCode())
	}
	return out, nil
}
