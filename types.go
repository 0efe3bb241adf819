package storefront

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenStore persists the current bearer token. Implementations must treat
// Clear as idempotent; clearing an empty store is not an error.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Put(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// AuthGateway is the backend auth surface the session layer depends on.
// Login and Register return the bearer token issued by the backend.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, input RegisterInput) (string, error)
	Logout(ctx context.Context, token string) error
}

// RegisterInput is the account creation payload.
type RegisterInput struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// OrderGateway places an order snapshot with the backend.
type OrderGateway interface {
	PlaceOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

// LoginPayload carries user supplied credentials into SessionService.Login.
type LoginPayload interface {
	GetIdentifier() string
	GetPassword() string
}

// Config holds storefront options
type Config interface {
	GetBaseURL() string
	GetLoginRoute() string
	GetDeniedRoute() string
	GetRequestTimeout() int
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] STOREFRONT "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] STOREFRONT "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] STOREFRONT "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] STOREFRONT "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
