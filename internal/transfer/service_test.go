package transfer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	assetmodels "regnet/internal/asset/models"
	assetservice "regnet/internal/asset/service"
	assetstore "regnet/internal/asset/store"
	identityservice "regnet/internal/identity/service"
	identitystore "regnet/internal/identity/store"
	"regnet/internal/ledger"
	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/invocation"
)

type PurchaseSuite struct {
	suite.Suite
	state      *ledger.InMemory
	workflow   *Workflow
	identities *identityservice.Registry
	assets     *assetservice.Registry
	ctx        context.Context

	sellerName, sellerNID string
	buyerName, buyerNID   string
	propertyID            string
}

func TestPurchaseSuite(t *testing.T) {
	suite.Run(t, new(PurchaseSuite))
}

func (s *PurchaseSuite) SetupTest() {
	s.state = ledger.NewInMemory()
	users := identitystore.New(s.state)
	properties := assetstore.New(s.state)
	s.workflow = New(users, properties)
	s.identities = identityservice.New(users)
	s.assets = assetservice.New(properties, users)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := invocation.WithCaller(context.Background(), "x509::CN=client::CN=ca.org1")
	s.ctx = invocation.WithTime(ctx, now)

	// Seller with an approved, for-sale property priced 300.
	s.sellerName, s.sellerNID = "alice", uuid.NewString()
	s.registerUser(s.sellerName, s.sellerNID)
	s.propertyID = "P-" + uuid.NewString()
	_, err := s.assets.RequestRegistration(s.ctx, s.propertyID, 300, s.sellerName, s.sellerNID)
	s.Require().NoError(err)
	_, err = s.assets.ApproveRegistration(s.registrar(), s.propertyID)
	s.Require().NoError(err)
	_, err = s.assets.SetStatus(s.ctx, s.propertyID, s.sellerName, s.sellerNID, "OnSale")
	s.Require().NoError(err)

	// Approved buyer, no balance yet.
	s.buyerName, s.buyerNID = "bob", uuid.NewString()
	s.registerUser(s.buyerName, s.buyerNID)
}

func (s *PurchaseSuite) registrar() context.Context {
	return invocation.WithCaller(s.ctx, "x509::CN=registrar::CN=ca.registrar")
}

func (s *PurchaseSuite) registerUser(name, nationalID string) {
	_, err := s.identities.Request(s.ctx, name, name+"@example.com", "555-0100", nationalID)
	s.Require().NoError(err)
	_, err = s.identities.Approve(s.registrar(), name, nationalID)
	s.Require().NoError(err)
}

func (s *PurchaseSuite) recharge(name, nationalID, code string) {
	_, err := s.identities.Recharge(s.ctx, name, nationalID, code)
	s.Require().NoError(err)
}

func (s *PurchaseSuite) balances() (buyer, seller int) {
	b, err := s.identities.View(s.ctx, s.buyerName, s.buyerNID)
	s.Require().NoError(err)
	sl, err := s.identities.View(s.ctx, s.sellerName, s.sellerNID)
	s.Require().NoError(err)
	return b.Balance, sl.Balance
}

func (s *PurchaseSuite) TestSuccessfulPurchase() {
	s.recharge(s.buyerName, s.buyerNID, "upg500")
	s.recharge(s.sellerName, s.sellerNID, "upg100")
	buyerBefore, sellerBefore := s.balances()

	receipt, err := s.workflow.Purchase(s.ctx, s.propertyID, s.buyerName, s.buyerNID)
	s.Require().NoError(err)

	s.Run("property moves to the buyer and returns to Registered", func() {
		s.Equal(receipt.Buyer.Key, receipt.Property.Owner)
		s.Equal(assetmodels.StatusRegistered, receipt.Property.Status)
	})

	s.Run("price moves buyer to seller exactly", func() {
		s.Equal(buyerBefore-300, receipt.Buyer.Balance)
		s.Equal(sellerBefore+300, receipt.Seller.Balance)
	})

	s.Run("total coins are conserved", func() {
		buyerAfter, sellerAfter := s.balances()
		s.Equal(buyerBefore+sellerBefore, buyerAfter+sellerAfter)
	})

	s.Run("receipt matches committed state", func() {
		property, err := s.assets.View(s.ctx, s.propertyID)
		s.Require().NoError(err)
		s.Equal(receipt.Property.Owner, property.Owner)
	})
}

func (s *PurchaseSuite) TestValidationFailuresLeaveStateUntouched() {
	s.recharge(s.buyerName, s.buyerNID, "upg100")
	buyerBefore, sellerBefore := s.balances()

	assertUntouched := func() {
		buyerAfter, sellerAfter := s.balances()
		s.Equal(buyerBefore, buyerAfter)
		s.Equal(sellerBefore, sellerAfter)

		property, err := s.assets.View(s.ctx, s.propertyID)
		s.Require().NoError(err)
		s.Equal(assetmodels.StatusOnSale, property.Status)
	}

	s.Run("insufficient balance", func() {
		_, err := s.workflow.Purchase(s.ctx, s.propertyID, s.buyerName, s.buyerNID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientBalance))
		assertUntouched()
	})

	s.Run("self purchase", func() {
		// Ownership is checked before the balance, so no recharge needed.
		_, err := s.workflow.Purchase(s.ctx, s.propertyID, s.sellerName, s.sellerNID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))

		property, err := s.assets.View(s.ctx, s.propertyID)
		s.Require().NoError(err)
		s.Equal(assetmodels.StatusOnSale, property.Status)

		seller, err := s.identities.View(s.ctx, s.sellerName, s.sellerNID)
		s.Require().NoError(err)
		s.Equal(property.Owner, seller.Key)
	})

	s.Run("unknown buyer", func() {
		_, err := s.workflow.Purchase(s.ctx, s.propertyID, "ghost", uuid.NewString())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		assertUntouched()
	})

	s.Run("unapproved buyer", func() {
		pendingNID := uuid.NewString()
		_, err := s.identities.Request(s.ctx, "carol", "carol@example.com", "555-0103", pendingNID)
		s.Require().NoError(err)

		_, err = s.workflow.Purchase(s.ctx, s.propertyID, "carol", pendingNID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		assertUntouched()
	})

	s.Run("unknown property", func() {
		_, err := s.workflow.Purchase(s.ctx, "P-missing", s.buyerName, s.buyerNID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		assertUntouched()
	})

	s.Run("no transfer event was emitted", func() {
		for _, event := range s.state.Events() {
			s.NotEqual("PropertyTransferred", event.Name)
		}
	})
}

func (s *PurchaseSuite) TestNotForSale() {
	s.recharge(s.buyerName, s.buyerNID, "upg500")
	_, err := s.assets.SetStatus(s.ctx, s.propertyID, s.sellerName, s.sellerNID, "Registered")
	s.Require().NoError(err)

	_, err = s.workflow.Purchase(s.ctx, s.propertyID, s.buyerName, s.buyerNID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
}
