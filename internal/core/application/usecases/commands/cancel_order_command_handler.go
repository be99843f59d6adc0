package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// CancelOrderCommandHandler moves an order to the terminal cancelled state
// and broadcasts the change with the recorded reason.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewCancelOrderCommandHandler creates a handler for cancellations.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.OrderNotifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle cancels the order and returns it. Orders already out for delivery
// cannot be cancelled; the attempt fails with order.ErrInvalidTransition.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) (*order.Order, error) {
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

	if err = subject.Cancel(command.Reason()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, subject); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.NotifyOrderUpdate(ctx, subject, command.Reason())
	return subject, nil
}
