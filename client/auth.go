package client

import (
	"context"
	"net/http"

	storefront "github.com/goliatone/go-storefront"
)

// AuthService wraps the backend auth endpoints. It satisfies
// storefront.AuthGateway so SessionService can sit directly on top of it.
type AuthService struct {
	client *Client
}

var _ storefront.AuthGateway = (*AuthService)(nil)

type authResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. Invalid credentials come
// back as an auth-category error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	payload := storefront.Credentials{
		Email:    email,
		Password: password,
	}

	out := authResponse{}
	err := s.client.do(ctx, http.MethodPost, "/api/v1/auth/authenticate", payload, &out)
	if err != nil {
		if storefront.IsAuthError(err) {
			return "", storefront.ErrInvalidCredentials
		}
		return "", err
	}

	if out.Token == "" {
		return "", storefront.ErrInvalidCredentials
	}

	return out.Token, nil
}

// Register creates an account; the backend issues a token on success.
func (s *AuthService) Register(ctx context.Context, input storefront.RegisterInput) (string, error) {
	out := authResponse{}
	if err := s.client.do(ctx, http.MethodPost, "/api/v1/auth/register", input, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Logout tells the backend to invalidate the token. Callers treat failures
// as best effort; local cleanup happens regardless.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.client.doWithBearer(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil, token)
}
