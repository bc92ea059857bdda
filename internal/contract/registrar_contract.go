package contract

import (
	"github.com/hyperledger/fabric-contract-api-go/v2/contractapi"

	assetmodels "regnet/internal/asset/models"
	identitymodels "regnet/internal/identity/models"
)

// RegistrarContract is the approving organization's contract.
type RegistrarContract struct {
	contractapi.Contract
	metrics Metrics
}

func NewRegistrarContract(m Metrics) *RegistrarContract {
	c := &RegistrarContract{metrics: m}
	c.Name = "org.property-registration-network.regnet.registrar"
	return c
}

// ApproveNewUser moves a requested identity to Approved.
func (c *RegistrarContract) ApproveNewUser(tctx contractapi.TransactionContextInterface, name, nationalID string) (*identitymodels.User, error) {
	ctx, svc, err := invoke(tctx, c.metrics)
	if err != nil {
		return nil, err
	}
	return svc.identities.Approve(ctx, name, nationalID)
}

// ViewUser returns the identity record at the (name, national ID) key.
func (c *RegistrarContract) ViewUser(tctx contractapi.TransactionContextInterface, name, nationalID string) (*identitymodels.User, error) {
	ctx, svc, err := invoke(tctx, c.metrics)
	if err != nil {
		return nil, err
	}
	return svc.identities.View(ctx, name, nationalID)
}

// ApprovePropertyRegistration marks a requested property Registered.
func (c *RegistrarContract) ApprovePropertyRegistration(tctx contractapi.TransactionContextInterface, propertyID string) (*assetmodels.Property, error) {
	ctx, svc, err := invoke(tctx, c.metrics)
	if err != nil {
		return nil, err
	}
	return svc.assets.ApproveRegistration(ctx, propertyID)
}

// ViewProperty returns the asset record for the property ID.
func (c *RegistrarContract) ViewProperty(tctx contractapi.TransactionContextInterface, propertyID string) (*assetmodels.Property, error) {
	ctx, svc, err := invoke(tctx, c.metrics)
	if err != nil {
		return nil, err
	}
	return svc.assets.View(ctx, propertyID)
}
