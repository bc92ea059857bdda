package contract

import (
	"github.com/hyperledger/fabric-contract-api-go/v2/contractapi"

	assetmodels "regnet/internal/asset/models"
	identitymodels "regnet/internal/identity/models"
	"regnet/internal/transfer"
)

// UsersContract is the participant-facing contract.
type UsersContract struct {
	contractapi.Contract
	metrics Metrics
}

func NewUsersContract(m Metrics) *UsersContract {
	c := &UsersContract{metrics: m}
	c.Name = "org.property-registration-network.regnet.users"
	return c
}

// RequestNewUser records a registration request for a new participant.
func (c *UsersContract) RequestNewUser(tctx contractapi.TransactionContextInterface, name, email, phone, nationalID string) (*identitymodels.User, error) {
	ctx, svc, err := invoke(tctx, c.metrics)
	if err != nil {
		return nil, err
	}
	return svc.identities.Request(ctx, name, email, phone, nationalID)
}

// RechargeAccount credits an approved account with the value of a top-up
// code.
func (c *UsersContract) RechargeAccount(tctx contractapi.TransactionContextInterface, name, nationalID, code string) (*identitymodels.User, error) {
	ctx, svc, err := invoke(tctx, c.metrics)
	if err != nil {
		return nil, err
	}
	return svc.identities.Recharge(ctx, name, nationalID, code)
}

// ViewUser returns the identity record at the (name, national ID) key.
func (c *UsersContract) ViewUser(tctx contractapi.TransactionContextInterface, name, nationalID string) (*identitymodels.User, error) {
	ctx, svc, err := invoke(tctx, c.metrics)
	if err != nil {
		return nil, err
	}
	return svc.identities.View(ctx, name, nationalID)
}

// PropertyRegistrationRequest records a property registration request for
// an approved participant.
func (c *UsersContract) PropertyRegistrationRequest(tctx contractapi.TransactionContextInterface, propertyID, price, name, nationalID string) (*assetmodels.Property, error) {
	parsed, err := parsePrice(price)
	if err != nil {
		return nil, err
	}
	ctx, svc, err := invoke(tctx, c.metrics)
	if err != nil {
		return nil, err
	}
	return svc.assets.RequestRegistration(ctx, propertyID, parsed, name, nationalID)
}

// ViewProperty returns the asset record for the property ID.
func (c *UsersContract) ViewProperty(tctx contractapi.TransactionContextInterface, propertyID string) (*assetmodels.Property, error) {
	ctx, svc, err := invoke(tctx, c.metrics)
	if err != nil {
		return nil, err
	}
	return svc.assets.View(ctx, propertyID)
}

// UpdateProperty applies an owner-chosen status to a property.
func (c *UsersContract) UpdateProperty(tctx contractapi.TransactionContextInterface, propertyID, name, nationalID, status string) (*assetmodels.Property, error) {
	ctx, svc, err := invoke(tctx, c.metrics)
	if err != nil {
		return nil, err
	}
	return svc.assets.SetStatus(ctx, propertyID, name, nationalID, status)
}

// PurchaseProperty transfers a for-sale property to the buyer, moving the
// price from the buyer's balance to the seller's.
func (c *UsersContract) PurchaseProperty(tctx contractapi.TransactionContextInterface, propertyID, buyerName, buyerNationalID string) (*transfer.Receipt, error) {
	ctx, svc, err := invoke(tctx, c.metrics)
	if err != nil {
		return nil, err
	}
	return svc.transfers.Purchase(ctx, propertyID, buyerName, buyerNationalID)
}
