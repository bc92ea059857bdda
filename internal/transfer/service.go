// Package transfer implements the purchase workflow: the one operation
// that mutates an asset record and two identity records together.
package transfer

import (
	"context"
	"errors"

	assetmodels "regnet/internal/asset/models"
	identitymodels "regnet/internal/identity/models"
	transfermetrics "regnet/internal/transfer/metrics"
	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/invocation"
	"regnet/pkg/platform/sentinel"
)

// UserStore is the identity persistence boundary the workflow needs.
type UserStore interface {
	Get(ctx context.Context, name, nationalID string) (*identitymodels.User, error)
	GetByKey(ctx context.Context, key string) (*identitymodels.User, error)
	Put(ctx context.Context, user *identitymodels.User) error
	Emit(name string, user *identitymodels.User) error
}

// PropertyStore is the asset persistence boundary the workflow needs.
type PropertyStore interface {
	Get(ctx context.Context, propertyID string) (*assetmodels.Property, error)
	Put(ctx context.Context, property *assetmodels.Property) error
	Emit(name string, property *assetmodels.Property) error
}

// Receipt bundles the three records a completed purchase updates.
type Receipt struct {
	Property *assetmodels.Property `json:"property"`
	Buyer    *identitymodels.User  `json:"buyer"`
	Seller   *identitymodels.User  `json:"seller"`
}

// Workflow executes purchases against the two record stores.
type Workflow struct {
	users      UserStore
	properties PropertyStore
	metrics    *transfermetrics.Metrics
}

// Option configures optional Workflow collaborators.
type Option func(*Workflow)

// WithMetrics attaches prometheus counters to the workflow.
func WithMetrics(m *transfermetrics.Metrics) Option {
	return func(w *Workflow) { w.metrics = m }
}

func New(users UserStore, properties PropertyStore, opts ...Option) *Workflow {
	w := &Workflow{users: users, properties: properties}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Purchase moves a for-sale property to the buyer and its price from the
// buyer's balance to the seller's, conserving total coins exactly.
//
// Every read and validation happens before the first write, so a failed
// purchase has zero side effects; the platform makes the three writes of a
// successful one atomic at the invocation boundary.
func (w *Workflow) Purchase(ctx context.Context, propertyID, buyerName, buyerNationalID string) (*Receipt, error) {
	buyer, err := w.users.Get(ctx, buyerName, buyerNationalID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "no user registered for %s (national ID %s)", buyerName, buyerNationalID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load buyer")
	}
	if !buyer.IsApproved() {
		return nil, dErrors.Newf(dErrors.CodeInvalidState, "buyer %q is not registered in the network", buyer.Key)
	}

	property, err := w.properties.Get(ctx, propertyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "property %q is not on the ledger", propertyID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load property")
	}

	if property.OwnedBy(buyer.Key) {
		return nil, dErrors.Newf(dErrors.CodeInvalidArgument, "buyer %q already owns property %q", buyer.Key, propertyID)
	}
	if err := property.CanPurchase(); err != nil {
		return nil, err
	}
	if err := buyer.CanSpend(property.Price); err != nil {
		return nil, err
	}

	seller, err := w.users.GetByKey(ctx, property.Owner)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "owner record %q for property %q is missing", property.Owner, propertyID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load seller")
	}

	// All preconditions hold; from here on the invocation must commit as a
	// unit, which the platform guarantees at its boundary.
	now := invocation.Now(ctx)
	price := property.Price
	buyer.ApplyDebit(price, now)
	seller.ApplyCredit(price, now)
	property.ApplyTransfer(buyer.Key, now)

	if err := w.properties.Put(ctx, property); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store transferred property")
	}
	if err := w.users.Put(ctx, buyer); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store buyer")
	}
	if err := w.users.Put(ctx, seller); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store seller")
	}
	if err := w.properties.Emit("PropertyTransferred", property); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "emit transfer event")
	}

	w.metrics.ObservePurchase(price)
	return &Receipt{Property: property, Buyer: buyer, Seller: seller}, nil
}
