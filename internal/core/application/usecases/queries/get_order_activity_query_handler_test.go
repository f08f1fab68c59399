package queries_test

import (
	"context"
	"testing"
	"time"

	"falcon/internal/adapters/out/postgres/activityrepo"
	"falcon/internal/adapters/out/postgres/orderrepo"
	"falcon/internal/core/application/usecases/queries"
	"falcon/internal/core/domain/model/activity"
	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/order"
	"falcon/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderActivityQueryHandlerTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	handler      queries.GetOrderActivityQueryHandler
	orderRepo    *orderrepo.GormOrderRepository
	activityRepo *activityrepo.GormActivityRepository
}

func (suite *GetOrderActivityQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &activityrepo.EntryDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderActivityQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.activityRepo = activityrepo.NewGormActivityRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderActivityQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderActivityQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, activity_entries").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderActivityQueryHandlerTestSuite) seedOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "12 Oak Lane", nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *GetOrderActivityQueryHandlerTestSuite) appendEntryAt(
	orderID kernel.UUID, action string, createdAt time.Time,
) *activity.Entry {
	entry, err := activity.RestoreEntry(
		kernel.NewUUID(), orderID, kernel.NewUUID(),
		actor.RoleAdmin, action,
		order.StatusNew, order.StatusNew,
		"note",
		createdAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.activityRepo.Append(context.Background(), entry))
	return entry
}

func (suite *GetOrderActivityQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderActivityQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(result)
}

func (suite *GetOrderActivityQueryHandlerTestSuite) TestHandle_OrderWithoutEntries_ReturnsEmptySlice() {
	o := suite.seedOrder()

	query, err := queries.NewGetOrderActivityQuery(o.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrderActivityQueryHandlerTestSuite) TestHandle_ReturnsEntriesNewestFirst() {
	o := suite.seedOrder()

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	oldest := suite.appendEntryAt(o.ID(), activity.ActionOrderCreated, base)
	middle := suite.appendEntryAt(o.ID(), activity.ActionAppraiserAssigned, base.Add(time.Minute))
	newest := suite.appendEntryAt(o.ID(), activity.ActionStatusChange, base.Add(2*time.Minute))

	query, err := queries.NewGetOrderActivityQuery(o.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(newest.ID(), result[0].ID)
	suite.Equal(middle.ID(), result[1].ID)
	suite.Equal(oldest.ID(), result[2].ID)
}

func (suite *GetOrderActivityQueryHandlerTestSuite) TestHandle_MapsFields() {
	o := suite.seedOrder()

	entry, err := activity.NewEntry(
		o.ID(), kernel.NewUUID(), actor.RoleReviewer,
		activity.ActionStatusChange,
		order.StatusInReview, order.StatusNeedsRevisions,
		"comps need rework",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.activityRepo.Append(context.Background(), entry))

	query, err := queries.NewGetOrderActivityQuery(o.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(entry.ID(), result[0].ID)
	suite.Equal(entry.ActorID(), result[0].ActorID)
	suite.Equal(actor.RoleReviewer, result[0].ActorRole)
	suite.Equal(activity.ActionStatusChange, result[0].Action)
	suite.Equal(order.StatusInReview, result[0].PreviousStatus)
	suite.Equal(order.StatusNeedsRevisions, result[0].NewStatus)
	suite.Equal("comps need rework", result[0].Message)
	suite.WithinDuration(entry.CreatedAt(), result[0].CreatedAt, time.Millisecond)
}

func (suite *GetOrderActivityQueryHandlerTestSuite) TestHandle_ExcludesOtherOrders() {
	first := suite.seedOrder()
	second := suite.seedOrder()

	now := time.Now().UTC().Truncate(time.Millisecond)
	suite.appendEntryAt(first.ID(), activity.ActionOrderCreated, now)
	suite.appendEntryAt(second.ID(), activity.ActionOrderCreated, now)

	query, err := queries.NewGetOrderActivityQuery(first.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
}

func TestGetOrderActivityQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderActivityQueryHandlerTestSuite))
}
