package storefront_test

import (
	"testing"

	storefront "github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/assert"
)

func TestRouteGuardEvaluate(t *testing.T) {
	guard := storefront.NewRouteGuard()

	anonymous := &storefront.SessionObject{Role: storefront.RoleAnonymous}
	shopper := &storefront.SessionObject{
		UserID:        "user-1",
		Role:          storefront.RoleUser,
		Authenticated: true,
	}
	admin := &storefront.SessionObject{
		UserID:        "admin-1",
		Role:          storefront.RoleAdmin,
		Authenticated: true,
	}

	cases := []struct {
		name     string
		kind     storefront.RouteKind
		session  *storefront.SessionObject
		allowed  bool
		redirect string
	}{
		{"public anonymous", storefront.RoutePublic, anonymous, true, ""},
		{"public shopper", storefront.RoutePublic, shopper, true, ""},
		{"public admin", storefront.RoutePublic, admin, true, ""},
		{"public nil session", storefront.RoutePublic, nil, true, ""},

		{"protected anonymous", storefront.RouteProtected, anonymous, false, "/login"},
		{"protected nil session", storefront.RouteProtected, nil, false, "/login"},
		{"protected shopper", storefront.RouteProtected, shopper, true, ""},
		{"protected admin", storefront.RouteProtected, admin, true, ""},

		{"admin anonymous", storefront.RouteAdmin, anonymous, false, "/login"},
		{"admin shopper", storefront.RouteAdmin, shopper, false, "/"},
		{"admin admin", storefront.RouteAdmin, admin, true, ""},

		{"unknown kind", storefront.RouteKind("mystery"), admin, false, "/login"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := guard.Evaluate(tc.kind, tc.session)
			assert.Equal(t, tc.allowed, decision.Allowed)
			assert.Equal(t, tc.redirect, decision.RedirectTo)
			if !tc.allowed {
				assert.NotEmpty(t, decision.Reason)
			}
		})
	}
}

func TestRouteGuardCustomTargets(t *testing.T) {
	guard := storefront.RouteGuard{
		LoginRoute:  "/auth/sign-in",
		DeniedRoute: "/home",
	}

	decision := guard.Evaluate(storefront.RouteProtected, nil)
	assert.Equal(t, "/auth/sign-in", decision.RedirectTo)

	shopper := &storefront.SessionObject{Role: storefront.RoleUser, Authenticated: true}
	decision = guard.Evaluate(storefront.RouteAdmin, shopper)
	assert.Equal(t, "/home", decision.RedirectTo)
}

func TestNewRouteGuardFromConfig(t *testing.T) {
	cfg := new(MockConfig)
	cfg.On("GetLoginRoute").Return("/auth/sign-in")
	cfg.On("GetDeniedRoute").Return("")

	guard := storefront.NewRouteGuardFromConfig(cfg)
	assert.Equal(t, "/auth/sign-in", guard.LoginRoute)
	assert.Equal(t, "/", guard.DeniedRoute, "empty config values keep the defaults")

	guard = storefront.NewRouteGuardFromConfig(nil)
	assert.Equal(t, "/login", guard.LoginRoute)
}

func TestRouteGuardDistinguishesDenialFromLogin(t *testing.T) {
	guard := storefront.NewRouteGuard()
	shopper := &storefront.SessionObject{Role: storefront.RoleUser, Authenticated: true}

	// A logged-in shopper hitting an admin route must not bounce to login;
	// they already have a session, they just lack privilege.
	decision := guard.Evaluate(storefront.RouteAdmin, shopper)
	assert.False(t, decision.Allowed)
	assert.NotEqual(t, guard.LoginRoute, decision.RedirectTo)
	assert.Equal(t, guard.DeniedRoute, decision.RedirectTo)
}
