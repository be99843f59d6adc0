package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// ClaimOrderCommandHandler resolves the many-couriers-one-order race.
//
// The aggregate pre-validates claimability so losers get a precise error, but
// the store's conditional write is the authority: exactly one concurrent
// caller observes rows affected, everyone else gets order.ErrAlreadyClaimed.
// Claiming deliberately leaves the lifecycle status untouched — who will
// deliver an order is independent of whether the food is ready.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewClaimOrderCommandHandler creates a handler for courier claim attempts.
func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.OrderNotifier) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes a claim attempt and returns the claimed order on success.
// Returns order.ErrAlreadyClaimed when another courier holds the order,
// order.ErrNotClaimable when the lifecycle state forbids claiming, and an
// errs.ObjectNotFoundError for an unknown order id. On any error the stored
// order is untouched and nothing is broadcast.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, command ClaimOrderCommand) (*order.Order, error) {
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

	claimedOrder, err := repo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = claimedOrder.Claim(command.CourierID()); err != nil {
		return nil, err
	}

	won, err := repo.Claim(ctx, command.OrderID(), command.CourierID())
	if err != nil {
		return nil, err
	}
	if !won {
		// Another courier slipped in between our read and the conditional
		// write; they are the single winner.
		return nil, order.ErrAlreadyClaimed
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.NotifyOrderUpdate(ctx, claimedOrder, "order claimed by courier")
	return claimedOrder, nil
}
