// Package service implements the asset registry: property registration
// requests, registrar approval, lookups and owner status updates.
package service

import (
	"context"
	"errors"

	assetmetrics "regnet/internal/asset/metrics"
	"regnet/internal/asset/models"
	identitymodels "regnet/internal/identity/models"
	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/invocation"
	"regnet/pkg/platform/sentinel"
)

// PropertyStore is the persistence boundary the registry needs.
type PropertyStore interface {
	Key(propertyID string) (string, error)
	Get(ctx context.Context, propertyID string) (*models.Property, error)
	Exists(ctx context.Context, propertyID string) (bool, error)
	Put(ctx context.Context, property *models.Property) error
	Emit(name string, property *models.Property) error
}

// OwnerDirectory resolves identity records for ownership checks; the
// identity store satisfies it.
type OwnerDirectory interface {
	Key(name, nationalID string) (string, error)
	Get(ctx context.Context, name, nationalID string) (*identitymodels.User, error)
}

// Registry orchestrates the asset record lifecycle.
type Registry struct {
	properties PropertyStore
	owners     OwnerDirectory
	metrics    *assetmetrics.Metrics
}

// Option configures optional Registry collaborators.
type Option func(*Registry)

// WithMetrics attaches prometheus counters to the registry.
func WithMetrics(m *assetmetrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

func New(properties PropertyStore, owners OwnerDirectory, opts ...Option) *Registry {
	r := &Registry{properties: properties, owners: owners}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RequestRegistration records a property awaiting registrar approval,
// owned by the requesting identity. The owner must already be approved,
// and the property ID must be unoccupied.
func (r *Registry) RequestRegistration(ctx context.Context, propertyID string, price int, ownerName, ownerNationalID string) (*models.Property, error) {
	owner, err := r.owners.Get(ctx, ownerName, ownerNationalID)
	if err != nil {
		return nil, wrapOwnerErr(err, ownerName, ownerNationalID)
	}
	if !owner.IsApproved() {
		return nil, dErrors.Newf(dErrors.CodeInvalidState, "owner %q must be approved before registering property", owner.Key)
	}

	property, err := models.NewProperty(propertyID, price, owner.Key, invocation.Now(ctx))
	if err != nil {
		return nil, err
	}
	key, err := r.properties.Key(propertyID)
	if err != nil {
		return nil, err
	}
	property.Key = key

	taken, err := r.properties.Exists(ctx, propertyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "check for existing property")
	}
	if taken {
		return nil, dErrors.Newf(dErrors.CodeAlreadyExists, "property %q is already registered", propertyID)
	}

	if err := r.properties.Put(ctx, property); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store property request")
	}
	if err := r.properties.Emit("PropertyRequested", property); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "emit property request event")
	}

	r.metrics.IncrementPropertiesRequested()
	return property, nil
}

// ApproveRegistration marks a requested property Registered, stamping the
// approving registrar.
func (r *Registry) ApproveRegistration(ctx context.Context, propertyID string) (*models.Property, error) {
	property, err := r.properties.Get(ctx, propertyID)
	if err != nil {
		return nil, wrapPropertyErr(err, propertyID)
	}

	property.ApplyApproval(invocation.Caller(ctx), invocation.Now(ctx))

	if err := r.properties.Put(ctx, property); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store property approval")
	}
	if err := r.properties.Emit("PropertyApproved", property); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "emit property approval event")
	}

	r.metrics.IncrementPropertiesApproved()
	return property, nil
}

// View returns the record for the property ID without side effects.
func (r *Registry) View(ctx context.Context, propertyID string) (*models.Property, error) {
	property, err := r.properties.Get(ctx, propertyID)
	if err != nil {
		return nil, wrapPropertyErr(err, propertyID)
	}
	return property, nil
}

// SetStatus applies an owner-chosen status (Registered or OnSale). Only
// the property's current owner, and only while approved, may change it.
func (r *Registry) SetStatus(ctx context.Context, propertyID, ownerName, ownerNationalID, rawStatus string) (*models.Property, error) {
	status, err := models.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	owner, err := r.owners.Get(ctx, ownerName, ownerNationalID)
	if err != nil {
		return nil, wrapOwnerErr(err, ownerName, ownerNationalID)
	}
	if !owner.IsApproved() {
		return nil, dErrors.Newf(dErrors.CodeInvalidState, "owner %q must be approved before updating property", owner.Key)
	}

	property, err := r.properties.Get(ctx, propertyID)
	if err != nil {
		return nil, wrapPropertyErr(err, propertyID)
	}
	if !property.OwnedBy(owner.Key) {
		return nil, dErrors.Newf(dErrors.CodeUnauthorized, "property %q is not owned by %q", propertyID, owner.Key)
	}

	property.ApplyStatus(status, invocation.Now(ctx))

	if err := r.properties.Put(ctx, property); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store property update")
	}
	if err := r.properties.Emit("PropertyUpdated", property); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "emit property update event")
	}

	r.metrics.IncrementStatusUpdates()
	return property, nil
}

func wrapOwnerErr(err error, name, nationalID string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "no user registered for %s (national ID %s)", name, nationalID)
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "load owner")
}

func wrapPropertyErr(err error, propertyID string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "property %q is not on the ledger", propertyID)
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "load property")
}
