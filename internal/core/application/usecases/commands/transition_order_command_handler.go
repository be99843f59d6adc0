package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// TransitionOrderCommandHandler applies a validated lifecycle move to an
// order and broadcasts the result.
//
// The current status is re-read inside the transaction immediately before the
// move, and the repository update is conditional on that status, so two
// actors racing to mutate the same order are linearized by the store: the
// loser's request fails with order.ErrInvalidTransition and produces no
// broadcast and no timer mutation.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewTransitionOrderCommandHandler creates a handler for lifecycle moves.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the transition request and returns the updated order.
// Illegal moves return order.ErrInvalidTransition with zero side effects.
func (h TransitionOrderCommandHandler) Handle(
	ctx context.Context,
	command TransitionOrderCommand,
) (*order.Order, error) {
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

	if err = subject.TransitionTo(command.Target()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, subject); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.broadcast(ctx, subject)
	return subject, nil
}

// broadcast fans the committed result out. Entering an awaiting state with no
// courier bound additionally raises the courier-availability event so every
// connected courier can race to claim.
func (h TransitionOrderCommandHandler) broadcast(ctx context.Context, subject *order.Order) {
	if subject.Status() == order.Rescheduled {
		h.notifier.NotifySubscriptionUpdate(ctx, subject, "delivery rescheduled to a future date")
		return
	}

	h.notifier.NotifyOrderUpdate(ctx, subject, "")

	switch subject.Status() {
	case order.AcceptedByChef, order.Prepared:
		if subject.Courier() == nil {
			h.notifier.NotifyPreparedOrder(ctx, subject)
		}
	}
}
