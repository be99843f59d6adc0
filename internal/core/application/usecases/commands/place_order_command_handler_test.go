package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	orderID, chefID, customerID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, chefID, customerID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyNewOrder", ctx, mock.AnythingOfType("*order.Order")).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, notifier)
	placed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, placed.ID().IsEqual(orderID))
	assert.Equal(t, order.Pending, placed.Status())
	assert.Nil(t, placed.Courier())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_AddFails(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Add", ctx, mock.Anything).Return(assert.AnError).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)

	h := commands.NewPlaceOrderCommandHandler(factory, notifier)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, assert.AnError)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	notifier.AssertNotCalled(t, "NotifyNewOrder", mock.Anything, mock.Anything)
}
