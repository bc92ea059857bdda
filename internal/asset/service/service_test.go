package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	assetstore "regnet/internal/asset/store"
	identitystore "regnet/internal/identity/store"
	"regnet/internal/ledger"
	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/invocation"

	"regnet/internal/asset/models"
	identityservice "regnet/internal/identity/service"
)

type AssetRegistrySuite struct {
	suite.Suite
	state      *ledger.InMemory
	registry   *Registry
	identities *identityservice.Registry
	ctx        context.Context
	now        time.Time

	ownerName string
	ownerNID  string
	ownerKey  string
}

func TestAssetRegistrySuite(t *testing.T) {
	suite.Run(t, new(AssetRegistrySuite))
}

func (s *AssetRegistrySuite) SetupTest() {
	s.state = ledger.NewInMemory()
	users := identitystore.New(s.state)
	s.registry = New(assetstore.New(s.state), users)
	s.identities = identityservice.New(users)

	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := invocation.WithCaller(context.Background(), "x509::CN=alice::CN=ca.org1")
	s.ctx = invocation.WithTime(ctx, s.now)

	// Approved owner used by most cases.
	s.ownerName = "alice"
	s.ownerNID = uuid.NewString()
	owner, err := s.identities.Request(s.ctx, s.ownerName, "alice@example.com", "555-0100", s.ownerNID)
	s.Require().NoError(err)
	s.ownerKey = owner.Key
	_, err = s.identities.Approve(s.registrar(), s.ownerName, s.ownerNID)
	s.Require().NoError(err)
}

func (s *AssetRegistrySuite) registrar() context.Context {
	return invocation.WithCaller(s.ctx, "x509::CN=registrar::CN=ca.registrar")
}

func (s *AssetRegistrySuite) requestProperty(id string) *models.Property {
	property, err := s.registry.RequestRegistration(s.ctx, id, 300, s.ownerName, s.ownerNID)
	s.Require().NoError(err)
	return property
}

func (s *AssetRegistrySuite) TestRequestRegistration() {
	s.Run("creates a requested record owned by the requester", func() {
		property := s.requestProperty("P-" + uuid.NewString())
		s.Equal(models.StatusRequested, property.Status)
		s.Equal(s.ownerKey, property.Owner)
		s.Equal(300, property.Price)
		s.Equal(s.now, property.CreatedAt)
	})

	s.Run("rejects an unapproved owner", func() {
		pendingNID := uuid.NewString()
		_, err := s.identities.Request(s.ctx, "bob", "bob@example.com", "555-0101", pendingNID)
		s.Require().NoError(err)

		_, err = s.registry.RequestRegistration(s.ctx, "P-"+uuid.NewString(), 300, "bob", pendingNID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("rejects an unknown owner", func() {
		_, err := s.registry.RequestRegistration(s.ctx, "P-"+uuid.NewString(), 300, "ghost", uuid.NewString())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("rejects a duplicate property ID and keeps the original", func() {
		id := "P-" + uuid.NewString()
		original := s.requestProperty(id)

		_, err := s.registry.RequestRegistration(s.ctx, id, 999, s.ownerName, s.ownerNID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyExists))

		kept, err := s.registry.View(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(original.Price, kept.Price)
	})

	s.Run("rejects a non-positive price", func() {
		_, err := s.registry.RequestRegistration(s.ctx, "P-"+uuid.NewString(), 0, s.ownerName, s.ownerNID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})
}

func (s *AssetRegistrySuite) TestApproveRegistration() {
	s.Run("unknown property is not found", func() {
		_, err := s.registry.ApproveRegistration(s.registrar(), "P-missing")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("approval registers the property and stamps the registrar", func() {
		id := "P-" + uuid.NewString()
		s.requestProperty(id)

		property, err := s.registry.ApproveRegistration(s.registrar(), id)
		s.Require().NoError(err)
		s.Equal(models.StatusRegistered, property.Status)
		s.Equal("x509::CN=registrar::CN=ca.registrar", property.RegistrarID)
	})
}

func (s *AssetRegistrySuite) TestSetStatus() {
	id := "P-" + uuid.NewString()
	s.requestProperty(id)
	_, err := s.registry.ApproveRegistration(s.registrar(), id)
	s.Require().NoError(err)

	s.Run("owner lists the property for sale", func() {
		property, err := s.registry.SetStatus(s.ctx, id, s.ownerName, s.ownerNID, "OnSale")
		s.Require().NoError(err)
		s.Equal(models.StatusOnSale, property.Status)
	})

	s.Run("non-owner is rejected", func() {
		otherNID := uuid.NewString()
		_, err := s.identities.Request(s.ctx, "eve", "eve@example.com", "555-0102", otherNID)
		s.Require().NoError(err)
		_, err = s.identities.Approve(s.registrar(), "eve", otherNID)
		s.Require().NoError(err)

		_, err = s.registry.SetStatus(s.ctx, id, "eve", otherNID, "OnSale")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown status is rejected", func() {
		_, err := s.registry.SetStatus(s.ctx, id, s.ownerName, s.ownerNID, "Condemned")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})

	s.Run("requested is reserved to the registration flow", func() {
		_, err := s.registry.SetStatus(s.ctx, id, s.ownerName, s.ownerNID, "Requested")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})
}
