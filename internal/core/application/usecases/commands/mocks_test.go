package commands_test

import (
	"context"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Claim(ctx context.Context, orderID, courierID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID, courierID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Assign(ctx context.Context, orderID, courierID kernel.UUID) error {
	args := m.Called(ctx, orderID, courierID)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAwaitingCourier(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// MockNotifier records broadcasts so tests can assert that rejected actions
// produce none and accepted actions produce exactly the expected ones.
type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyNewOrder(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) NotifyOrderUpdate(ctx context.Context, o *order.Order, message string) {
	m.Called(ctx, o, message)
}

func (m *MockNotifier) NotifyPreparedOrder(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) NotifyManualAssignmentRequired(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) NotifySubscriptionUpdate(ctx context.Context, o *order.Order, message string) {
	m.Called(ctx, o, message)
}

// storedOrder rebuilds an aggregate the way the repository would return it.
func storedOrder(t *testing.T, status order.Status, courierID *kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		status, order.PaymentConfirmed, courierID,
		"", nil, nil, nil, nil,
	)
	require.NoError(t, err)
	return o
}
