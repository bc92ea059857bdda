package models

import (
	"strings"
	"time"

	dErrors "regnet/pkg/domain-errors"
)

// UserStatus is the approval state of an identity record.
type UserStatus string

const (
	StatusRequested UserStatus = "Requested"
	StatusApproved  UserStatus = "Approved"
)

// User is the registered-participant record stored on the ledger.
//
// Invariants:
//   - Name and NationalID are non-empty; together they form the key
//   - Balance is never negative
//   - Status transitions: Requested → Approved only, never reversed,
//     never re-approved
//   - RegistrarID and UpdatedAt are set atomically with approval
//
// The serialized document carries its own composite key so a record can be
// reconstructed from raw ledger bytes without re-deriving the key.
type User struct {
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	NationalID  string     `json:"national_id"`
	SubmittedBy string     `json:"submitted_by"`
	Status      UserStatus `json:"status"`
	Balance     int        `json:"balance"`
	RegistrarID string     `json:"registrar_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewUser validates the registration input and builds a Requested record
// with a zero balance. Malformed input is rejected here, before the caller
// derives any key; the composite key is assigned by the service once
// validation has passed.
func NewUser(name, email, phone, nationalID, submittedBy string, now time.Time) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "user name cannot be empty")
	}
	if strings.TrimSpace(nationalID) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "national ID cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, dErrors.Newf(dErrors.CodeInvalidArgument, "email %q is not an address", email)
	}
	if strings.TrimSpace(phone) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "phone number cannot be empty")
	}
	return &User{
		Name:        name,
		Email:       email,
		PhoneNumber: phone,
		NationalID:  nationalID,
		SubmittedBy: submittedBy,
		Status:      StatusRequested,
		Balance:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}

// CanApprove checks that the record is still awaiting approval.
// Use with ApplyApproval for the validate-then-mutate pattern.
func (u *User) CanApprove() error {
	if u.Status == StatusApproved {
		return dErrors.Newf(dErrors.CodeInvalidState, "user %q is already approved", u.Key)
	}
	return nil
}

// ApplyApproval marks the record Approved and stamps the audit fields.
// The balance is left untouched; credits are only possible after approval,
// so at this point it is still the zero it was created with. Call
// CanApprove first.
func (u *User) ApplyApproval(registrarID string, now time.Time) {
	u.Status = StatusApproved
	u.RegistrarID = registrarID
	u.UpdatedAt = now
}

// CanCredit checks that the account may receive a top-up.
func (u *User) CanCredit() error {
	if !u.IsApproved() {
		return dErrors.Newf(dErrors.CodeInvalidState, "user %q must be approved before recharging", u.Key)
	}
	return nil
}

// ApplyCredit adds the top-up amount to the balance. Call CanCredit first.
func (u *User) ApplyCredit(amount int, now time.Time) {
	u.Balance += amount
	u.UpdatedAt = now
}

// CanSpend checks that the balance covers the price.
func (u *User) CanSpend(price int) error {
	if u.Balance < price {
		return dErrors.Newf(dErrors.CodeInsufficientBalance, "user %q has %d coins, needs %d", u.Key, u.Balance, price)
	}
	return nil
}

// ApplyDebit removes the price from the balance. Call CanSpend first.
func (u *User) ApplyDebit(price int, now time.Time) {
	u.Balance -= price
	u.UpdatedAt = now
}
