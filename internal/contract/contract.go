// Package contract exposes the registry as two Fabric contracts, split the
// way the network's organizations are: the users contract carries every
// participant-initiated operation, the registrar contract the approvals.
//
// Each method is a thin adapter: derive the invocation context from the
// transaction, wire the services over the transaction's state view,
// delegate, and return the typed record or the coded error.
package contract

import (
	"context"
	"strconv"

	"github.com/hyperledger/fabric-contract-api-go/v2/contractapi"

	assetmetrics "regnet/internal/asset/metrics"
	assetservice "regnet/internal/asset/service"
	assetstore "regnet/internal/asset/store"
	identitymetrics "regnet/internal/identity/metrics"
	identityservice "regnet/internal/identity/service"
	identitystore "regnet/internal/identity/store"
	"regnet/internal/ledger"
	"regnet/internal/platform/fabric"
	"regnet/internal/transfer"
	transfermetrics "regnet/internal/transfer/metrics"
	dErrors "regnet/pkg/domain-errors"
)

// Metrics groups the per-module counters shared by both contracts. All
// fields are optional; nil metrics record nothing.
type Metrics struct {
	Identity *identitymetrics.Metrics
	Asset    *assetmetrics.Metrics
	Transfer *transfermetrics.Metrics
}

// services wires the registries over one invocation's state view. The
// service structs are cheap; building them per transaction keeps every
// read and write inside the transaction's own world-state view.
type services struct {
	identities *identityservice.Registry
	assets     *assetservice.Registry
	transfers  *transfer.Workflow
}

func wire(state ledger.State, m Metrics) *services {
	users := identitystore.New(state)
	properties := assetstore.New(state)
	return &services{
		identities: identityservice.New(users, identityservice.WithMetrics(m.Identity)),
		assets:     assetservice.New(properties, users, assetservice.WithMetrics(m.Asset)),
		transfers:  transfer.New(users, properties, transfer.WithMetrics(m.Transfer)),
	}
}

func invoke(tctx contractapi.TransactionContextInterface, m Metrics) (context.Context, *services, error) {
	ctx, state, err := fabric.Invocation(tctx)
	if err != nil {
		return nil, nil, err
	}
	return ctx, wire(state, m), nil
}

// parsePrice parses the price argument of the external surface, where all
// arguments arrive as strings.
func parsePrice(raw string) (int, error) {
	price, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeInvalidArgument, "price %q is not an integer", raw)
	}
	return price, nil
}
