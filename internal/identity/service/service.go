// Package service implements the identity registry: registration requests,
// registrar approval, lookups and balance top-ups.
package service

import (
	"context"
	"errors"

	"regnet/internal/identity"
	identitymetrics "regnet/internal/identity/metrics"
	"regnet/internal/identity/models"
	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/invocation"
	"regnet/pkg/platform/sentinel"
)

// UserStore is the persistence boundary the registry needs. The ledger
// implementation lives in internal/identity/store.
type UserStore interface {
	Key(name, nationalID string) (string, error)
	Get(ctx context.Context, name, nationalID string) (*models.User, error)
	GetByKey(ctx context.Context, key string) (*models.User, error)
	Exists(ctx context.Context, name, nationalID string) (bool, error)
	Put(ctx context.Context, user *models.User) error
	Emit(name string, user *models.User) error
}

// Registry orchestrates the identity record lifecycle.
type Registry struct {
	users   UserStore
	metrics *identitymetrics.Metrics
}

// Option configures optional Registry collaborators.
type Option func(*Registry)

// WithMetrics attaches prometheus counters to the registry.
func WithMetrics(m *identitymetrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

func New(users UserStore, opts ...Option) *Registry {
	r := &Registry{users: users}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Request records a new participant awaiting registrar approval. The
// (name, national ID) pair is the sole uniqueness constraint; a second
// request for an occupied key fails and leaves the original untouched.
func (r *Registry) Request(ctx context.Context, name, email, phone, nationalID string) (*models.User, error) {
	user, err := models.NewUser(name, email, phone, nationalID, invocation.Caller(ctx), invocation.Now(ctx))
	if err != nil {
		return nil, err
	}

	key, err := r.users.Key(name, nationalID)
	if err != nil {
		return nil, err
	}
	user.Key = key

	taken, err := r.users.Exists(ctx, name, nationalID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "check for existing user")
	}
	if taken {
		return nil, dErrors.Newf(dErrors.CodeAlreadyExists, "a user with national ID %q already exists", nationalID)
	}

	if err := r.users.Put(ctx, user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store user request")
	}
	if err := r.users.Emit("UserRequested", user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "emit user request event")
	}

	r.metrics.IncrementUsersRequested()
	return user, nil
}

// Approve moves a Requested record to Approved, stamping the approving
// registrar. Re-approval is rejected and leaves the record unchanged.
func (r *Registry) Approve(ctx context.Context, name, nationalID string) (*models.User, error) {
	user, err := r.users.Get(ctx, name, nationalID)
	if err != nil {
		return nil, wrapUserErr(err, name, nationalID)
	}

	if err := user.CanApprove(); err != nil {
		return nil, err
	}
	user.ApplyApproval(invocation.Caller(ctx), invocation.Now(ctx))

	if err := r.users.Put(ctx, user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store user approval")
	}
	if err := r.users.Emit("UserApproved", user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "emit user approval event")
	}

	r.metrics.IncrementUsersApproved()
	return user, nil
}

// View returns the record at the (name, national ID) key without side
// effects.
func (r *Registry) View(ctx context.Context, name, nationalID string) (*models.User, error) {
	user, err := r.users.Get(ctx, name, nationalID)
	if err != nil {
		return nil, wrapUserErr(err, name, nationalID)
	}
	return user, nil
}

// Recharge credits an approved account with the coin value of a recognized
// top-up code.
func (r *Registry) Recharge(ctx context.Context, name, nationalID, code string) (*models.User, error) {
	user, err := r.users.Get(ctx, name, nationalID)
	if err != nil {
		return nil, wrapUserErr(err, name, nationalID)
	}

	if err := user.CanCredit(); err != nil {
		return nil, err
	}
	amount, err := identity.TopUpAmount(code)
	if err != nil {
		return nil, err
	}
	user.ApplyCredit(amount, invocation.Now(ctx))

	if err := r.users.Put(ctx, user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store recharge")
	}
	if err := r.users.Emit("AccountRecharged", user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "emit recharge event")
	}

	r.metrics.IncrementRecharges()
	return user, nil
}

func wrapUserErr(err error, name, nationalID string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "no user registered for %s (national ID %s)", name, nationalID)
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "load user")
}
