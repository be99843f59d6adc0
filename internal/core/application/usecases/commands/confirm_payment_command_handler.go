package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// ConfirmPaymentCommandHandler advances a pending order to confirmed once the
// payment gateway reports a reconciled charge.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmations.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle confirms payment and returns the updated order. Confirming an order
// that already left pending fails with order.ErrInvalidTransition.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, command ConfirmPaymentCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	subject, err := repo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = subject.ConfirmPayment(); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, subject); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.NotifyOrderUpdate(ctx, subject, "payment confirmed")
	return subject, nil
}
