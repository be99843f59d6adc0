package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// PlaceOrderCommandHandler persists a freshly placed order and broadcasts
// the new_order event to administrators and the owning kitchen.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.OrderNotifier) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle creates the pending order row and, after commit, announces it.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, command PlaceOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(command.OrderID(), command.ChefID(), command.CustomerID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.NotifyNewOrder(ctx, newOrder)
	return newOrder, nil
}
