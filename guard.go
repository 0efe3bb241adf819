package storefront

// RouteKind classifies a navigation target for the guard policy.
type RouteKind string

const (
	// RoutePublic is reachable by anyone
	RoutePublic RouteKind = "public"
	// RouteProtected requires an authenticated session
	RouteProtected RouteKind = "protected"
	// RouteAdmin requires an authenticated session with the admin role
	RouteAdmin RouteKind = "admin"
)

// GuardDecision is the outcome of evaluating a route against a session.
// When Allowed is false, RedirectTo names the route the shell should
// navigate to instead.
type GuardDecision struct {
	Allowed    bool
	RedirectTo string
	Reason     string
}

// RouteGuard is a pure policy over (route kind, session). It holds no state
// beyond the two redirect targets, so the same instance can serve every
// navigation event.
type RouteGuard struct {
	// LoginRoute receives anonymous visitors hitting protected targets.
	LoginRoute string
	// DeniedRoute receives authenticated non-admins hitting admin targets.
	// It is deliberately not the login route: the visitor is logged in, they
	// just lack privilege.
	DeniedRoute string
}

// NewRouteGuard returns a guard with the conventional redirect targets.
func NewRouteGuard() RouteGuard {
	return RouteGuard{
		LoginRoute:  "/login",
		DeniedRoute: "/",
	}
}

// NewRouteGuardFromConfig builds a guard from host configuration, keeping
// the conventional targets for any route the config leaves empty.
func NewRouteGuardFromConfig(cfg Config) RouteGuard {
	guard := NewRouteGuard()
	if cfg == nil {
		return guard
	}
	if route := cfg.GetLoginRoute(); route != "" {
		guard.LoginRoute = route
	}
	if route := cfg.GetDeniedRoute(); route != "" {
		guard.DeniedRoute = route
	}
	return guard
}

// Evaluate decides whether the session may enter the target route.
func (g RouteGuard) Evaluate(kind RouteKind, session *SessionObject) GuardDecision {
	if session == nil {
		session = &SessionObject{Role: RoleAnonymous}
	}

	switch kind {
	case RoutePublic:
		return GuardDecision{Allowed: true}
	case RouteProtected:
		if session.Authenticated {
			return GuardDecision{Allowed: true}
		}
		return GuardDecision{
			Allowed:    false,
			RedirectTo: g.LoginRoute,
			Reason:     "authentication required",
		}
	case RouteAdmin:
		if !session.Authenticated {
			return GuardDecision{
				Allowed:    false,
				RedirectTo: g.LoginRoute,
				Reason:     "authentication required",
			}
		}
		if session.Role != RoleAdmin {
			return GuardDecision{
				Allowed:    false,
				RedirectTo: g.DeniedRoute,
				Reason:     "insufficient privilege",
			}
		}
		return GuardDecision{Allowed: true}
	default:
		return GuardDecision{
			Allowed:    false,
			RedirectTo: g.LoginRoute,
			Reason:     "unknown route kind",
		}
	}
}
