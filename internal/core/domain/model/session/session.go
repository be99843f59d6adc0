package session

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrAuthenticationFailed is returned when a connecting actor presents a missing
// or invalid credential during the real-time handshake. The connection attempt
// is rejected; the error never outlives the attempt.
var ErrAuthenticationFailed = errors.New("authentication failed")

// Role identifies the kind of actor behind a real-time connection.
// Every connected actor has exactly one role, and the broadcast audience of an
// event is computed in terms of roles and role-scoped identities.
type Role string

const (
	// RoleAdmin is a platform administrator; admins hear about every order event.
	RoleAdmin Role = "admin"

	// RoleChef is a kitchen partner; one kitchen holds one live connection,
	// scoped by its kitchen id.
	RoleChef Role = "chef"

	// RoleDelivery is a courier, scoped by courier id.
	RoleDelivery Role = "delivery"

	// RoleCustomer is a buying customer, scoped by the order id they are tracking.
	RoleCustomer Role = "customer"

	// RoleBrowser is an anonymous read-only recipient, scoped by a user id,
	// an order id, or a generated browser id. Requires no credential.
	RoleBrowser Role = "browser"
)

func validRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleAdmin:    {},
		RoleChef:     {},
		RoleDelivery: {},
		RoleCustomer: {},
		RoleBrowser:  {},
	}
}

// Validate checks that the role is one of the five known actor roles.
func (r Role) Validate() error {
	if _, ok := validRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
	return nil
}

// RequiresCredential reports whether the handshake for this role must present
// an authentication credential. Browsers are read-only broadcast recipients
// and connect without one.
func (r Role) RequiresCredential() bool {
	return r != RoleBrowser
}

func (r Role) String() string {
	return string(r)
}

// Key is the role-scoped identity a connection is addressed by: a courier id
// for delivery connections, a kitchen id for chef connections, an order or
// user id for customer and browser connections, an admin id for admins.
//
// Key is the registry's map key: registering a second connection with the same
// key replaces the first (reconnect semantics, last writer wins).
type Key struct {
	Role  Role
	Scope string
}

// NewKey builds a validated role-scoped identity.
func NewKey(role Role, scope string) (Key, error) {
	if err := role.Validate(); err != nil {
		return Key{}, err
	}
	if scope == "" {
		return Key{}, errs.NewValueIsRequiredError("scope")
	}
	return Key{Role: role, Scope: scope}, nil
}

func (k Key) String() string {
	return string(k.Role) + "/" + k.Scope
}
