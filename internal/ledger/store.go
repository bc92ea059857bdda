package ledger

import (
	"context"
	"encoding/json"
	"errors"

	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/platform/sentinel"
)

// Store reads and writes one record type as flat JSON documents under a
// single namespace. It owns the serialized bytes at its keys; callers deal
// only in typed records.
type Store[T any] struct {
	state State
	ns    Namespace
}

// NewStore builds a typed store for the namespace over the given State.
func NewStore[T any](state State, ns Namespace) *Store[T] {
	return &Store[T]{state: state, ns: ns}
}

// Key derives the composite key for the ordered attributes under the
// store's namespace.
func (s *Store[T]) Key(attrs ...string) (string, error) {
	return s.ns.Key(attrs...)
}

// Get unmarshals the record at the key. Absence surfaces as
// sentinel.ErrNotFound, corrupt bytes as an internal error.
func (s *Store[T]) Get(ctx context.Context, key string) (*T, error) {
	raw, err := s.state.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	record := new(T)
	if err := json.Unmarshal(raw, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt record on ledger")
	}
	return record, nil
}

// Exists reports whether a record occupies the key.
func (s *Store[T]) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.state.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Put overwrites the record at the key with its JSON encoding.
func (s *Store[T]) Put(ctx context.Context, key string, record *T) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode record")
	}
	return s.state.Put(ctx, key, raw)
}

// Emit attaches a named event carrying the record's JSON encoding to the
// enclosing invocation.
func (s *Store[T]) Emit(name string, record *T) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode event payload")
	}
	return s.state.SetEvent(name, raw)
}
