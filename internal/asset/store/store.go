// Package store persists asset records on the ledger under the property
// namespace.
package store

import (
	"context"

	"regnet/internal/asset/models"
	"regnet/internal/ledger"
)

// Properties is the ledger-backed asset record store.
type Properties struct {
	records *ledger.Store[models.Property]
}

func New(state ledger.State) *Properties {
	return &Properties{records: ledger.NewStore[models.Property](state, ledger.PropertyNamespace)}
}

// Key derives the composite key for a property ID.
func (s *Properties) Key(propertyID string) (string, error) {
	return s.records.Key(propertyID)
}

// Get fetches the record for the property ID. Absence is
// sentinel.ErrNotFound.
func (s *Properties) Get(ctx context.Context, propertyID string) (*models.Property, error) {
	key, err := s.Key(propertyID)
	if err != nil {
		return nil, err
	}
	return s.records.Get(ctx, key)
}

// Exists reports whether a record occupies the property ID's key.
func (s *Properties) Exists(ctx context.Context, propertyID string) (bool, error) {
	key, err := s.Key(propertyID)
	if err != nil {
		return false, err
	}
	return s.records.Exists(ctx, key)
}

// Put overwrites the record at its own key.
func (s *Properties) Put(ctx context.Context, property *models.Property) error {
	return s.records.Put(ctx, property.Key, property)
}

// Emit attaches a named ledger event carrying the record.
func (s *Properties) Emit(name string, property *models.Property) error {
	return s.records.Emit(name, property)
}
