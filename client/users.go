package client

import (
	"context"
	"net/http"
)

// UserService wraps the profile endpoints for the authenticated user.
type UserService struct {
	client *Client
}

// Profile is the authenticated user's account record.
type Profile struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Me fetches the current profile.
func (s *UserService) Me(ctx context.Context) (*Profile, error) {
	out := &Profile{}
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/users/me", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update edits the current profile.
func (s *UserService) Update(ctx context.Context, input UpdateProfileInput) (*Profile, error) {
	out := &Profile{}
	if err := s.client.do(ctx, http.MethodPut, "/api/v1/users/me", input, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAccount removes the account server-side. Callers should invalidate
// the local session afterward; the token is dead once this returns.
func (s *UserService) DeleteAccount(ctx context.Context) error {
	return s.client.do(ctx, http.MethodDelete, "/api/v1/users/me", nil, nil)
}
