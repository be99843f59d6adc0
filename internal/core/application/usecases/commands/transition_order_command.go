package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand requests a lifecycle move for an order: chef accept,
// mark prepared, courier accept, pickup, delivery confirmation, completion,
// or a recurring delivery being rescheduled.
//
// Example:
//
//	cmd, err := commands.NewTransitionOrderCommand(orderID, order.Prepared, "chef-7")
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // the stored state moved on; refresh the client's view
//	}
type TransitionOrderCommand struct {
	orderID kernel.UUID
	target  order.Status
	actor   string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a validated transition request. The actor
// is recorded for logging only; authorization happens at the transport edge.
func NewTransitionOrderCommand(orderID kernel.UUID, target order.Status, actor string) (TransitionOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		target.Validate(),
	); err != nil {
		return TransitionOrderCommand{}, err
	}
	if actor == "" {
		return TransitionOrderCommand{}, errs.NewValueIsRequiredError("actor")
	}

	return TransitionOrderCommand{
		orderID: orderID,
		target:  target,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the id of the order to move.
func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Target returns the requested lifecycle status.
func (c TransitionOrderCommand) Target() order.Status { return c.target }

// Actor returns who requested the move.
func (c TransitionOrderCommand) Actor() string { return c.actor }

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}
