package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand is the administrator override that binds (or rebinds)
// a courier directly, bypassing the conditional claim check. Used when
// escalation reported that no courier responded in time.
//
// Example:
//
//	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type AssignCourierCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a validated admin assignment override.
func NewAssignCourierCommand(orderID, courierID kernel.UUID) (AssignCourierCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		courierID.Validate(),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return AssignCourierCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the id of the order being assigned.
func (c AssignCourierCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the id of the courier the administrator chose.
func (c AssignCourierCommand) CourierID() kernel.UUID { return c.courierID }

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}
