package services

import (
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/session"
)

// Audience is the computed set of live connections that must receive an
// event: every connection holding one of Roles, plus the specific role-scoped
// connections named by Keys. A key whose connection is not live is simply
// absent from delivery; the resolver only decides who should hear.
type Audience struct {
	Roles []session.Role
	Keys  []session.Key
}

// AudienceResolver is a domain service that answers "who must be notified"
// for every event type the dispatch core raises. It is pure: it inspects the
// event subject and returns a decision, never touching connections itself.
//
// Business rules:
//   - Administrators hear about every order and entity event
//   - A kitchen hears only about its own orders and entity changes
//   - A courier hears about orders bound to them
//   - Customers and browsers hear about the order or wallet they are scoped to
//   - Courier-availability broadcasts go to every connected courier
//
// Example usage:
//
//	resolver := NewAudienceResolver()
//	audience := resolver.OrderUpdate(o)
//	// audience.Roles == [admin], audience.Keys name the chef, courier, and
//	// customer connections for this specific order
type AudienceResolver struct{}

// NewAudienceResolver creates a new AudienceResolver instance.
func NewAudienceResolver() AudienceResolver {
	return AudienceResolver{}
}

// NewOrder computes the audience for a freshly placed order: all admins and
// the kitchen the order is routed to.
func (AudienceResolver) NewOrder(o *order.Order) Audience {
	return Audience{
		Roles: []session.Role{session.RoleAdmin},
		Keys: []session.Key{
			{Role: session.RoleChef, Scope: o.ChefID().String()},
		},
	}
}

// OrderUpdate computes the audience for a status or assignment change:
// all admins, the owning kitchen, the bound courier when one exists, and the
// customer and browser connections tracking this order.
func (AudienceResolver) OrderUpdate(o *order.Order) Audience {
	keys := []session.Key{
		{Role: session.RoleChef, Scope: o.ChefID().String()},
		{Role: session.RoleCustomer, Scope: o.ID().String()},
		{Role: session.RoleBrowser, Scope: o.ID().String()},
	}
	if courier := o.Courier(); courier != nil {
		keys = append(keys, session.Key{Role: session.RoleDelivery, Scope: courier.String()})
	}

	return Audience{
		Roles: []session.Role{session.RoleAdmin},
		Keys:  keys,
	}
}

// PreparedOrder computes the audience for a courier-availability broadcast:
// every connected courier, so they can race to claim.
func (AudienceResolver) PreparedOrder(_ *order.Order) Audience {
	return Audience{
		Roles: []session.Role{session.RoleDelivery},
	}
}

// ManualAssignmentRequired computes the audience for an escalation: all admins.
func (AudienceResolver) ManualAssignmentRequired(_ *order.Order) Audience {
	return Audience{
		Roles: []session.Role{session.RoleAdmin},
	}
}

// EntityStatus computes the audience for a chef or product status change:
// all admins, all customers and browsers, and the owning kitchen.
func (AudienceResolver) EntityStatus(chefID string) Audience {
	return Audience{
		Roles: []session.Role{session.RoleAdmin, session.RoleCustomer, session.RoleBrowser},
		Keys: []session.Key{
			{Role: session.RoleChef, Scope: chefID},
		},
	}
}

// WalletUpdate computes the audience for a wallet balance change: only the
// customer and browser connections scoped to that user.
func (AudienceResolver) WalletUpdate(userID string) Audience {
	return Audience{
		Keys: []session.Key{
			{Role: session.RoleCustomer, Scope: userID},
			{Role: session.RoleBrowser, Scope: userID},
		},
	}
}
