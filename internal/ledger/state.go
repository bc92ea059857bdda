// Package ledger defines the boundary to the platform's key-value ledger:
// composite key derivation, a minimal State interface over raw record
// bytes, and a typed JSON store built on both.
//
// Durability, ordering, replication and invocation atomicity belong to the
// surrounding platform. The package only assumes read-your-writes within a
// single invocation, which both the platform stub and the in-memory State
// provide.
package ledger

import "context"

// State is one invocation's view of the ledger key space.
//
// Get returns sentinel.ErrNotFound for keys never written; it never
// fabricates a zero record. Put is a total overwrite of the value at the
// key. SetEvent attaches a named event to the invocation; the platform
// publishes it only if the whole invocation commits.
type State interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	SetEvent(name string, payload []byte) error
}
