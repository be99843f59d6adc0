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

func TestAssignCourierCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.Prepared, nil)
	courierID := kernel.NewUUID()
	cmd, err := commands.NewAssignCourierCommand(stored.ID(), courierID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		repo.On("Assign", ctx, stored.ID(), courierID).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyOrderUpdate", ctx, stored, "courier assigned by administrator").Once()

	h := commands.NewAssignCourierCommandHandler(factory, notifier)
	assigned, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, assigned.Courier())
	assert.True(t, assigned.Courier().IsEqual(courierID))
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_RebindsClaimedOrder(t *testing.T) {
	ctx := t.Context()
	original := kernel.NewUUID()
	stored := storedOrder(t, order.AcceptedByDelivery, &original)
	replacement := kernel.NewUUID()
	cmd, err := commands.NewAssignCourierCommand(stored.ID(), replacement)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once()
	repo.On("Assign", ctx, stored.ID(), replacement).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyOrderUpdate", ctx, stored, "courier assigned by administrator").Once()

	h := commands.NewAssignCourierCommandHandler(factory, notifier)
	assigned, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, assigned.Courier().IsEqual(replacement))
}

func TestAssignCourierCommandHandler_Handle_TerminalOrderRejected(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	stored := storedOrder(t, order.Completed, &courierID)
	cmd, err := commands.NewAssignCourierCommand(stored.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)

	h := commands.NewAssignCourierCommandHandler(factory, notifier)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	repo.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyOrderUpdate", mock.Anything, mock.Anything, mock.Anything)
}
