package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand is a courier's attempt to bind itself as the deliverer of
// an unassigned order. Many couriers may race with the same order id; exactly
// one wins.
//
// Example:
//
//	cmd, err := commands.NewClaimOrderCommand(orderID, courierID)
//	if err != nil {
//	    return err
//	}
//	claimed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrAlreadyClaimed):
//	    // lost the race; re-poll the claimable list
//	case errors.Is(err, order.ErrNotClaimable):
//	    // order cannot be acted on right now
//	}
type ClaimOrderCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a validated claim attempt.
func NewClaimOrderCommand(orderID, courierID kernel.UUID) (ClaimOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		courierID.Validate(),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return ClaimOrderCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the id of the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the id of the claiming courier.
func (c ClaimOrderCommand) CourierID() kernel.UUID { return c.courierID }

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}
