package session

import "context"

type contextKey struct{}

// NewContext returns a context carrying the session token.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the session token stored by the session middleware,
// or "" when the request never passed through it.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
