// Package requestctx carries the per-request correlation ID through a
// context so transport, handlers, and logging agree on it.
package requestctx

import "context"

type contextKey struct{}

var requestIDKey contextKey

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the correlation ID, or "" when none was attached.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
