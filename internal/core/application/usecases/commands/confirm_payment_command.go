package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand records the payment gateway's confirmation and moves
// the order from pending to confirmed, making it claimable by couriers.
type ConfirmPaymentCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a validated payment confirmation.
func NewConfirmPaymentCommand(orderID kernel.UUID) (ConfirmPaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the id of the paid order.
func (c ConfirmPaymentCommand) OrderID() kernel.UUID { return c.orderID }

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}
