package models

import (
	"strings"
	"time"

	dErrors "regnet/pkg/domain-errors"
)

// PropertyStatus is the registration state of an asset record.
type PropertyStatus string

const (
	StatusRequested  PropertyStatus = "Requested"
	StatusRegistered PropertyStatus = "Registered"
	StatusOnSale     PropertyStatus = "OnSale"
)

// ParseStatus maps an external status argument onto a PropertyStatus that
// owners may set. Requested is reserved to the registration flow.
func ParseStatus(raw string) (PropertyStatus, error) {
	switch PropertyStatus(raw) {
	case StatusRegistered:
		return StatusRegistered, nil
	case StatusOnSale:
		return StatusOnSale, nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidArgument, "unknown property status %q", raw)
	}
}

// Property is the registrable-asset record stored on the ledger.
//
// Invariants:
//   - ID is non-empty and globally unique; it alone forms the key
//   - Owner always references an existing identity record's key
//   - Price is positive
//   - Status moves Requested → Registered → OnSale; a purchase reassigns
//     the owner and resets the status to Registered
type Property struct {
	Key         string         `json:"key"`
	ID          string         `json:"id"`
	Owner       string         `json:"owner"`
	Price       int            `json:"price"`
	Status      PropertyStatus `json:"status"`
	RegistrarID string         `json:"registrar_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewProperty validates the registration input and builds a Requested
// record owned by the requesting identity.
func NewProperty(id string, price int, ownerKey string, now time.Time) (*Property, error) {
	if strings.TrimSpace(id) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "property ID cannot be empty")
	}
	if price <= 0 {
		return nil, dErrors.Newf(dErrors.CodeInvalidArgument, "property price must be positive, got %d", price)
	}
	if ownerKey == "" {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "property owner key cannot be empty")
	}
	return &Property{
		ID:        id,
		Owner:     ownerKey,
		Price:     price,
		Status:    StatusRequested,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// OwnedBy reports whether the identity key owns this property.
func (p *Property) OwnedBy(userKey string) bool {
	return p.Owner == userKey
}

// CanPurchase checks that the property is listed for sale.
func (p *Property) CanPurchase() error {
	if p.Status != StatusOnSale {
		return dErrors.Newf(dErrors.CodeInvalidState, "property %q is not for sale", p.ID)
	}
	return nil
}

// ApplyApproval marks the record Registered and stamps the approving
// registrar.
func (p *Property) ApplyApproval(registrarID string, now time.Time) {
	p.Status = StatusRegistered
	p.RegistrarID = registrarID
	p.UpdatedAt = now
}

// ApplyStatus sets an owner-chosen status.
func (p *Property) ApplyStatus(status PropertyStatus, now time.Time) {
	p.Status = status
	p.UpdatedAt = now
}

// ApplyTransfer hands the property to the buyer and returns it to the
// plain Registered state. Call CanPurchase first.
func (p *Property) ApplyTransfer(buyerKey string, now time.Time) {
	p.Owner = buyerKey
	p.Status = StatusRegistered
	p.UpdatedAt = now
}
