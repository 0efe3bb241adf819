package client

import (
	"context"
	"fmt"
	"net/http"

	storefront "github.com/goliatone/go-storefront"
)

// NotificationService wraps the admin notification feed.
type NotificationService struct {
	client *Client
}

// List fetches all notifications, newest first.
func (s *NotificationService) List(ctx context.Context) ([]storefront.Notification, error) {
	out := []storefront.Notification{}
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/admin/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnreadCount fetches the number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	var out int64
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/admin/notifications/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out, nil
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/admin/notifications/%d/read", id)
	return s.client.do(ctx, http.MethodPatch, path, nil, nil)
}
