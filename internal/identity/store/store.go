// Package store persists identity records on the ledger under the user
// namespace. It speaks sentinel errors; the service layer translates them
// into coded domain errors.
package store

import (
	"context"

	"regnet/internal/identity/models"
	"regnet/internal/ledger"
)

// Users is the ledger-backed identity record store.
type Users struct {
	records *ledger.Store[models.User]
}

func New(state ledger.State) *Users {
	return &Users{records: ledger.NewStore[models.User](state, ledger.UserNamespace)}
}

// Key derives the composite key for the (name, national ID) pair.
func (s *Users) Key(name, nationalID string) (string, error) {
	return s.records.Key(name, nationalID)
}

// Get fetches the record at the derived key. Absence is sentinel.ErrNotFound.
func (s *Users) Get(ctx context.Context, name, nationalID string) (*models.User, error) {
	key, err := s.Key(name, nationalID)
	if err != nil {
		return nil, err
	}
	return s.records.Get(ctx, key)
}

// GetByKey fetches a record by an already-derived composite key, as stored
// in a property's owner field.
func (s *Users) GetByKey(ctx context.Context, key string) (*models.User, error) {
	return s.records.Get(ctx, key)
}

// Exists reports whether a record occupies the derived key.
func (s *Users) Exists(ctx context.Context, name, nationalID string) (bool, error) {
	key, err := s.Key(name, nationalID)
	if err != nil {
		return false, err
	}
	return s.records.Exists(ctx, key)
}

// Put overwrites the record at its own key.
func (s *Users) Put(ctx context.Context, user *models.User) error {
	return s.records.Put(ctx, user.Key, user)
}

// Emit attaches a named ledger event carrying the record.
func (s *Users) Emit(name string, user *models.User) error {
	return s.records.Emit(name, user)
}
