package storefront_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	storefront "github.com/goliatone/go-storefront"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardFixture(t *testing.T, role string) *storefront.GuardMiddleware {
	t.Helper()

	tokens := storefront.NewMemoryTokenStore()
	if role != "" {
		token := mintToken(t, "user-1", role, time.Now(), time.Now().Add(time.Hour))
		require.NoError(t, tokens.Put(context.Background(), token))
	}

	sessions := storefront.NewSessionService(&MockAuthGateway{}, tokens)
	return storefront.NewGuardMiddleware(storefront.NewRouteGuard(), sessions)
}

func TestGuardMiddlewareAllowsAuthenticated(t *testing.T) {
	middleware := guardFixture(t, "ROLE_USER")
	mockCtx := new(MockContext)
	mockCtx.On("Context").Return(context.Background())

	handled := false
	handler := middleware.Protect(storefront.RouteProtected)(func(c router.Context) error {
		handled = true
		return nil
	})

	require.NoError(t, handler(mockCtx))
	assert.True(t, handled)
	mockCtx.AssertNotCalled(t, "Redirect", "/login", []int{http.StatusFound})
}

func TestGuardMiddlewareRedirectsAnonymous(t *testing.T) {
	middleware := guardFixture(t, "")
	mockCtx := new(MockContext)
	mockCtx.On("Context").Return(context.Background())
	mockCtx.On("Method").Return(string(router.GET))
	mockCtx.On("Redirect", "/login", []int{http.StatusFound}).Return(nil)

	handler := middleware.Protect(storefront.RouteProtected)(func(c router.Context) error {
		t.Fatal("handler must not run for anonymous visitors")
		return nil
	})

	require.NoError(t, handler(mockCtx))
	mockCtx.AssertExpectations(t)
}

func TestGuardMiddlewareSeeOtherForNonGet(t *testing.T) {
	middleware := guardFixture(t, "")
	mockCtx := new(MockContext)
	mockCtx.On("Context").Return(context.Background())
	mockCtx.On("Method").Return(string(router.POST))
	mockCtx.On("Redirect", "/login", []int{http.StatusSeeOther}).Return(nil)

	handler := middleware.Protect(storefront.RouteProtected)(func(c router.Context) error {
		return nil
	})

	require.NoError(t, handler(mockCtx))
	mockCtx.AssertExpectations(t)
}

func TestGuardMiddlewareDeniesNonAdmin(t *testing.T) {
	middleware := guardFixture(t, "ROLE_USER")
	mockCtx := new(MockContext)
	mockCtx.On("Context").Return(context.Background())
	mockCtx.On("Method").Return(string(router.GET))
	mockCtx.On("Redirect", "/", []int{http.StatusFound}).Return(nil)

	handler := middleware.Protect(storefront.RouteAdmin)(func(c router.Context) error {
		t.Fatal("handler must not run for non-admin sessions")
		return nil
	})

	require.NoError(t, handler(mockCtx))
	mockCtx.AssertExpectations(t)
}

func TestGuardMiddlewareAllowsAdmin(t *testing.T) {
	middleware := guardFixture(t, "ROLE_ADMIN")
	mockCtx := new(MockContext)
	mockCtx.On("Context").Return(context.Background())

	handled := false
	handler := middleware.Protect(storefront.RouteAdmin)(func(c router.Context) error {
		handled = true
		return nil
	})

	require.NoError(t, handler(mockCtx))
	assert.True(t, handled)
}
