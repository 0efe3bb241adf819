package client

import (
	"context"
	"net/http"

	storefront "github.com/goliatone/go-storefront"
)

// OrderService wraps order placement and history. It satisfies
// storefront.OrderGateway so the checkout orchestrator can submit through
// it directly.
type OrderService struct {
	client *Client
}

var _ storefront.OrderGateway = (*OrderService)(nil)

// PlaceOrder submits an order snapshot. Insufficient stock and validation
// rejections surface as conflict-category errors so the cart is preserved
// for retry.
func (s *OrderService) PlaceOrder(ctx context.Context, req storefront.OrderRequest) (*storefront.Order, error) {
	out := &storefront.Order{}
	if err := s.client.do(ctx, http.MethodPost, "/api/v1/orders", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyOrders lists the authenticated user's order history.
func (s *OrderService) MyOrders(ctx context.Context) ([]storefront.Order, error) {
	out := []storefront.Order{}
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/orders/my-orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
