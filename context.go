package goLedger

import (
	"context"

	"github.com/MrEthical07/goLedger/transport"
)

// WithRequestID attaches a caller-supplied request identifier to ctx. The
// pipeline forwards it as the X-Request-ID header; when absent a random one is
// generated per request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return transport.WithRequestID(ctx, id)
}

// WithIdempotencyKey attaches an idempotency key to ctx. The pipeline forwards
// it as the X-Idempotency-Key header so the backend can collapse duplicate
// mutations that slip past the in-process guard.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return transport.WithIdempotencyKey(ctx, key)
}
