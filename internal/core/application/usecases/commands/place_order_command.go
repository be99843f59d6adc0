package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand registers a freshly placed order in the dispatch core.
// The ordering collaborator creates the purchase; this command persists the
// pending row and announces it to administrators and the owning kitchen.
//
// Example:
//
//	cmd, err := commands.NewPlaceOrderCommand(orderID, chefID, customerID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type PlaceOrderCommand struct {
	orderID    kernel.UUID
	chefID     kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a validated command to register a placed order.
func NewPlaceOrderCommand(orderID, chefID, customerID kernel.UUID) (PlaceOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		chefID.Validate(),
		customerID.Validate(),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return PlaceOrderCommand{
		orderID:    orderID,
		chefID:     chefID,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the placed order.
func (c PlaceOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ChefID returns the owning kitchen's identifier.
func (c PlaceOrderCommand) ChefID() kernel.UUID { return c.chefID }

// CustomerID returns the buying customer's identifier.
func (c PlaceOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}
