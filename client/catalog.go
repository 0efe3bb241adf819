package client

import (
	"context"
	"fmt"
	"net/http"

	storefront "github.com/goliatone/go-storefront"
)

// CatalogService wraps the public catalog reads. No authentication needed.
type CatalogService struct {
	client *Client
}

// Products lists the active catalog.
func (s *CatalogService) Products(ctx context.Context) ([]storefront.Product, error) {
	out := []storefront.Product{}
	if err := s.client.do(ctx, http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches a single product by id.
func (s *CatalogService) Product(ctx context.Context, id int64) (*storefront.Product, error) {
	out := &storefront.Product{}
	path := fmt.Sprintf("/api/products/%d", id)
	if err := s.client.do(ctx, http.MethodGet, path, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories lists the public category tree.
func (s *CatalogService) Categories(ctx context.Context) ([]storefront.Category, error) {
	out := []storefront.Category{}
	if err := s.client.do(ctx, http.MethodGet, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
