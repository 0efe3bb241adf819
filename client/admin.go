package client

import (
	"context"
	"fmt"
	"net/http"

	storefront "github.com/goliatone/go-storefront"
)

// AdminService wraps the admin console endpoints: dashboard stats, order
// oversight, and catalog CRUD. The backend enforces the admin role on every
// call; the client's advisory role only decides whether to show the views.
type AdminService struct {
	client *Client
}

// CategoryInput is the category create/update payload.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// ProductInput is the product create/update payload.
type ProductInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	SKU           string   `json:"sku"`
	Price         float64  `json:"price"`
	DiscountPrice float64  `json:"discountPrice,omitempty"`
	StockQuantity int      `json:"stockQuantity"`
	CategoryID    int64    `json:"categoryId"`
	Active        bool     `json:"active"`
	ImageURLs     []string `json:"imageUrls,omitempty"`
}

// Stats fetches the dashboard summary.
func (s *AdminService) Stats(ctx context.Context) (*storefront.DashboardStats, error) {
	out := &storefront.DashboardStats{}
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/admin/stats", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Orders lists every order for oversight.
func (s *AdminService) Orders(ctx context.Context) ([]storefront.Order, error) {
	out := []storefront.Order{}
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/admin/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories lists categories through the admin surface.
func (s *AdminService) Categories(ctx context.Context) ([]storefront.Category, error) {
	out := []storefront.Category{}
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/admin/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory adds a category.
func (s *AdminService) CreateCategory(ctx context.Context, input CategoryInput) (*storefront.Category, error) {
	out := &storefront.Category{}
	if err := s.client.do(ctx, http.MethodPost, "/api/v1/admin/categories", input, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateCategory edits a category.
func (s *AdminService) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*storefront.Category, error) {
	out := &storefront.Category{}
	path := fmt.Sprintf("/api/v1/admin/categories/%d", id)
	if err := s.client.do(ctx, http.MethodPut, path, input, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteCategory removes a category.
func (s *AdminService) DeleteCategory(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/admin/categories/%d", id)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil)
}

// Products lists products through the admin surface, inactive ones included.
func (s *AdminService) Products(ctx context.Context) ([]storefront.Product, error) {
	out := []storefront.Product{}
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/admin/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct adds a product.
func (s *AdminService) CreateProduct(ctx context.Context, input ProductInput) (*storefront.Product, error) {
	out := &storefront.Product{}
	if err := s.client.do(ctx, http.MethodPost, "/api/v1/admin/products", input, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProduct edits a product.
func (s *AdminService) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*storefront.Product, error) {
	out := &storefront.Product{}
	path := fmt.Sprintf("/api/v1/admin/products/%d", id)
	if err := s.client.do(ctx, http.MethodPut, path, input, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteProduct removes a product.
func (s *AdminService) DeleteProduct(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/admin/products/%d", id)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil)
}
