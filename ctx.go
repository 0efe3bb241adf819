package storefront

import (
	"context"
)

var sessionCtxKey = &contextKey{"session"}

type contextKey struct {
	name string
}

// WithSessionContext sets the SessionObject in the given context
func WithSessionContext(ctx context.Context, session *SessionObject) context.Context {
	return context.WithValue(ctx, sessionCtxKey, session)
}

// SessionFromContext finds the session snapshot from the context.
func SessionFromContext(ctx context.Context) (*SessionObject, bool) {
	raw, ok := ctx.Value(sessionCtxKey).(*SessionObject)
	return raw, ok
}

// RoleFromContext is a convenience to read the advisory role directly from
// the context, degrading to RoleAnonymous when no session was attached.
func RoleFromContext(ctx context.Context) Role {
	session, ok := SessionFromContext(ctx)
	if !ok || session == nil {
		return RoleAnonymous
	}
	return session.Role
}
