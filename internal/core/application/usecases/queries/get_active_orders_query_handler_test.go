package queries_test

import (
	"context"
	"testing"
	"time"

	"falcon/internal/adapters/out/postgres/orderrepo"
	"falcon/internal/core/application/usecases/queries"
	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repositories' tracker dependency in tests.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
}

type GetActiveOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetActiveOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupSuite() {
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

	suite.handler = queries.NewGetActiveOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) createOrderInStatus(status order.Status) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "12 Oak Lane", nil)
	suite.Require().NoError(err)
	if status == order.StatusNew {
		return o
	}

	suite.Require().NoError(o.AssignAppraiser(kernel.NewUUID()))
	if status == order.StatusAssigned {
		return o
	}

	path := []order.Status{
		order.StatusInProgress, order.StatusInReview,
		order.StatusReadyForClient, order.StatusSentToClient, order.StatusComplete,
	}
	for _, step := range path {
		_, err = o.TransitionTo(step, actor.RoleAdmin)
		suite.Require().NoError(err)
		if o.Status() == status {
			return o
		}
	}

	suite.Require().Equal(status, o.Status())
	return o
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_FiltersCompletedOrders() {
	ctx := context.Background()

	activeStatuses := []order.Status{
		order.StatusNew, order.StatusAssigned, order.StatusInProgress,
		order.StatusInReview, order.StatusReadyForClient, order.StatusSentToClient,
	}
	activeIDs := make(map[kernel.UUID]bool)
	for _, s := range activeStatuses {
		o := suite.createOrderInStatus(s)
		suite.Require().NoError(suite.orderRepo.Add(ctx, o))
		activeIDs[o.ID()] = true
	}

	completed := suite.createOrderInStatus(order.StatusComplete)
	suite.Require().NoError(suite.orderRepo.Add(ctx, completed))

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, len(activeStatuses))
	for _, r := range result {
		suite.True(activeIDs[r.ID], "order %s should be active", r.ID)
		suite.NotEqual(order.StatusComplete, r.Status)
	}
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_MapsFields() {
	ctx := context.Background()

	o := suite.createOrderInStatus(order.StatusAssigned)
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(o.ID(), result[0].ID)
	suite.Equal("12 Oak Lane", result[0].PropertyAddress)
	suite.Equal(order.StatusAssigned, result[0].Status)
	suite.Require().NotNil(result[0].AppraiserID)
	suite.True(result[0].AppraiserID.IsEqual(*o.AppraiserID()))
	suite.WithinDuration(o.UpdatedAt(), result[0].UpdatedAt, time.Millisecond)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_NilAppraiserSurvivesMapping() {
	ctx := context.Background()

	o := suite.createOrderInStatus(order.StatusNew)
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Nil(result[0].AppraiserID)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetActiveOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestGetActiveOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetActiveOrdersQueryHandlerTestSuite))
}
