package transport

import "context"

type requestIDContextKey struct{}
type idempotencyKeyContextKey struct{}

// WithRequestID attaches a caller-chosen request identifier to ctx. When absent, the
// pipeline generates one per request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

// WithIdempotencyKey attaches an idempotency key to ctx. The pipeline forwards it as
// the X-Idempotency-Key header on the next request.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyContextKey{}, key)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

func idempotencyKeyFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	key, _ := ctx.Value(idempotencyKeyContextKey{}).(string)
	return key
}
