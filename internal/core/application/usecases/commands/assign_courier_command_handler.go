package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// AssignCourierCommandHandler executes the administrator assignment override.
// Unlike a claim, the write is unconditional on the current assignment: an
// administrator may hand an already-claimed order to a different courier.
// The resulting broadcast drives the escalation manager, which cancels any
// pending timer for the order.
type AssignCourierCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewAssignCourierCommandHandler creates a handler for assignment overrides.
func NewAssignCourierCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle binds the courier and returns the updated order.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) (*order.Order, error) {
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

	if err = subject.AssignOverride(command.CourierID()); err != nil {
		return nil, err
	}

	if err = repo.Assign(ctx, command.OrderID(), command.CourierID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.NotifyOrderUpdate(ctx, subject, "courier assigned by administrator")
	return subject, nil
}
