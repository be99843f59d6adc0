package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClaimOrderCommandHandler_Handle_Winner(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.Preparing, nil)
	courierID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(stored.ID(), courierID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		repo.On("Claim", ctx, stored.ID(), courierID).Return(true, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyOrderUpdate", ctx, stored, "order claimed by courier").Once()

	h := commands.NewClaimOrderCommandHandler(factory, notifier)
	claimed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, claimed.Courier())
	assert.True(t, claimed.Courier().IsEqual(courierID))
	assert.Equal(t, order.Preparing, claimed.Status(), "claiming must not change status")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.Prepared, nil)
	courierID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(stored.ID(), courierID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once()
	// Zero rows affected: another courier won between read and write.
	repo.On("Claim", ctx, stored.ID(), courierID).Return(false, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)

	h := commands.NewClaimOrderCommandHandler(factory, notifier)
	claimed, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrAlreadyClaimed)
	assert.Nil(t, claimed)
	notifier.AssertNotCalled(t, "NotifyOrderUpdate", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	winner := kernel.NewUUID()
	stored := storedOrder(t, order.Prepared, &winner)
	cmd, err := commands.NewClaimOrderCommand(stored.ID(), kernel.NewUUID())
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

	h := commands.NewClaimOrderCommandHandler(factory, notifier)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrAlreadyClaimed)
	repo.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_NotClaimable(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.Pending, nil)
	cmd, err := commands.NewClaimOrderCommand(stored.ID(), kernel.NewUUID())
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

	h := commands.NewClaimOrderCommandHandler(factory, notifier)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrNotClaimable)
	repo.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory, new(MockNotifier))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestClaimOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)

	h := commands.NewClaimOrderCommandHandler(factory, new(MockNotifier))
	_, err := h.Handle(ctx, commands.ClaimOrderCommand{})

	require.ErrorIs(t, err, commands.ErrClaimOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
