package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetClaimableOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetClaimableOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetClaimableOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) addOrderAt(status order.Status) *order.Order {
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		status, order.PaymentConfirmed, nil,
		"", nil, nil, nil, nil,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetClaimableOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) TestHandle_ReturnsOnlyUnassignedClaimable() {
	ctx := context.Background()

	confirmed := suite.addOrderAt(order.Confirmed)
	preparing := suite.addOrderAt(order.Preparing)
	prepared := suite.addOrderAt(order.Prepared)

	// Not claimable: payment pending, in flight, and retired.
	suite.addOrderAt(order.Pending)
	suite.addOrderAt(order.Cancelled)

	// Claimable status, but a courier already holds it.
	claimed := suite.addOrderAt(order.AcceptedByChef)
	won, err := suite.orderRepo.Claim(ctx, claimed.ID(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.True(won)

	query := queries.NewGetClaimableOrdersQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Len(result, 3)

	resultIDs := make(map[kernel.UUID]order.Status)
	for _, r := range result {
		resultIDs[r.ID] = r.Status
	}
	suite.Equal(order.Confirmed, resultIDs[confirmed.ID()])
	suite.Equal(order.Preparing, resultIDs[preparing.ID()])
	suite.Equal(order.Prepared, resultIDs[prepared.ID()])
	suite.NotContains(resultIDs, claimed.ID())
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) TestHandle_OldestFirst() {
	first := suite.addOrderAt(order.Confirmed)
	second := suite.addOrderAt(order.Confirmed)

	query := queries.NewGetClaimableOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(first.ID()))
	suite.True(result[1].ID.IsEqual(second.ID()))
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetClaimableOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetClaimableOrdersQuery constructor")
}

func TestGetClaimableOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetClaimableOrdersQueryHandlerTestSuite))
}
