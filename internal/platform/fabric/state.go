// Package fabric adapts the Hyperledger Fabric transaction context to the
// platform-independent seams the services consume: a ledger.State over the
// chaincode stub and an invocation context carrying the verified caller,
// the transaction ID and the transaction timestamp.
package fabric

import (
	"context"

	"github.com/hyperledger/fabric-chaincode-go/v2/shim"
	"github.com/hyperledger/fabric-contract-api-go/v2/contractapi"

	"regnet/internal/ledger"
	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/invocation"
	"regnet/pkg/platform/sentinel"
)

// State is one transaction's view of world state through the stub.
type State struct {
	stub shim.ChaincodeStubInterface
}

func NewState(stub shim.ChaincodeStubInterface) *State {
	return &State{stub: stub}
}

// Get reads the committed-or-written value at the key. Fabric reports
// absence as empty bytes; that is translated to sentinel.ErrNotFound so no
// caller ever sees a zero record.
func (s *State) Get(_ context.Context, key string) ([]byte, error) {
	raw, err := s.stub.GetState(key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "read world state")
	}
	if len(raw) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return raw, nil
}

// Put stages a total overwrite of the value at the key; it commits only if
// the whole invocation commits.
func (s *State) Put(_ context.Context, key string, value []byte) error {
	if err := s.stub.PutState(key, value); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "write world state")
	}
	return nil
}

// SetEvent attaches a chaincode event to the transaction.
func (s *State) SetEvent(name string, payload []byte) error {
	if err := s.stub.SetEvent(name, payload); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "set transaction event")
	}
	return nil
}

// Invocation derives the domain invocation context and state view from a
// Fabric transaction context. The timestamp is the transaction timestamp,
// so every endorsing peer stamps records identically.
func Invocation(tctx contractapi.TransactionContextInterface) (context.Context, ledger.State, error) {
	stub := tctx.GetStub()

	caller, err := tctx.GetClientIdentity().GetID()
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "resolve client identity")
	}
	ts, err := stub.GetTxTimestamp()
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "resolve transaction timestamp")
	}

	ctx := invocation.WithCaller(context.Background(), caller)
	ctx = invocation.WithTime(ctx, ts.AsTime().UTC())
	ctx = invocation.WithTxID(ctx, stub.GetTxID())
	return ctx, NewState(stub), nil
}
