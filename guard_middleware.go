package storefront

import (
	"net/http"

	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// GuardMiddleware adapts RouteGuard decisions to go-router handlers so host
// shells can mount the policy directly on their routes. The policy itself
// stays pure; this adapter only translates denials into redirects.
type GuardMiddleware struct {
	guard    RouteGuard
	sessions *SessionService
	Logger   Logger
}

func NewGuardMiddleware(guard RouteGuard, sessions *SessionService) *GuardMiddleware {
	return &GuardMiddleware{
		guard:    guard,
		sessions: sessions,
		Logger:   defLogger{},
	}
}

// Protect wraps a handler with the guard policy for the given route kind.
func (m *GuardMiddleware) Protect(kind RouteKind) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			session := m.sessions.Session(c.Context())
			decision := m.guard.Evaluate(kind, session)

			if decision.Allowed {
				return hf(c)
			}

			m.Logger.Info(
				"route guard denied navigation",
				"kind", string(kind),
				"reason", decision.Reason,
				"session", print.MaybePrettyJSON(session),
			)

			statusCode := http.StatusSeeOther
			if c.Method() == string(router.GET) {
				statusCode = http.StatusFound
			}
			return c.Redirect(decision.RedirectTo, statusCode)
		}
	}
}
