package domain

import "context"

type ContextKey string

const SessionContextKey ContextKey = "session"

// SessionIDFromContext returns the storefront session attached by the session middleware.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionContextKey).(string)
	return id, ok && id != ""
}

// ContextWithSessionID attaches a storefront session id to ctx.
func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionContextKey, sessionID)
}
