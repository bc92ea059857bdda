// Package invocation provides platform-independent context accessors for
// invocation-scoped values.
//
// Each external operation runs as one platform-serialized invocation. The
// hosting adapter (the Fabric transaction context in production, test
// setup code otherwise) injects the caller identity, the transaction ID
// and the transaction timestamp into the context; services read them back
// without knowing which platform produced them.
//
// Usage in services (read values):
//
//	caller := invocation.Caller(ctx)
//	now := invocation.Now(ctx)
//
// Usage in adapters and tests (set values):
//
//	ctx = invocation.WithCaller(ctx, id)
//	ctx = invocation.WithTime(ctx, txTime)
package invocation

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	callerKey struct{}
	txIDKey   struct{}
	timeKey   struct{}
)

// Caller retrieves the platform-verified identity string of the invoker.
// Returns "" if not set.
func Caller(ctx context.Context) string {
	if caller, ok := ctx.Value(callerKey{}).(string); ok {
		return caller
	}
	return ""
}

// WithCaller injects the invoker's identity string into the context.
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// TxID retrieves the platform transaction ID for the current invocation.
// Returns "" if not set.
func TxID(ctx context.Context) string {
	if txID, ok := ctx.Value(txIDKey{}).(string); ok {
		return txID
	}
	return ""
}

// WithTxID injects the platform transaction ID into the context.
func WithTxID(ctx context.Context, txID string) context.Context {
	return context.WithValue(ctx, txIDKey{}, txID)
}

// Now retrieves the invocation timestamp from the context.
//
// In production this is the transaction timestamp agreed by the platform,
// so every peer derives identical record timestamps. The time.Now fallback
// exists for CLI and dev paths that never pass through an adapter; tests
// should always inject a fixed time.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(timeKey{}).(time.Time); ok {
		return t
	}
	return time.Now().UTC()
}

// WithTime injects a specific invocation time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, timeKey{}, t)
}
