package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"grocery/internal/adapters/out/postgres/orderrepo"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.HistoryDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_status_history").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) totals() kernel.OrderTotals {
	money := func(v int64) kernel.Money {
		m, err := kernel.NewMoney(v)
		suite.Require().NoError(err)
		return m
	}

	totals, err := kernel.NewOrderTotals(money(2000), money(500), money(300), money(150), money(2350))
	suite.Require().NoError(err)
	return totals
}

// newPendingOrder creates a fresh order and returns it with its party IDs.
func (suite *OrderRepositoryIntegrationTestSuite) newPendingOrder() (*order.Order, kernel.UUID, kernel.UUID) {
	customerID := kernel.NewUUID()
	storeID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), "GRC-2024-000123", customerID, storeID, suite.totals())
	suite.Require().NoError(err)
	return o, customerID, storeID
}

// newReadyOrder drives a fresh order to ready status.
func (suite *OrderRepositoryIntegrationTestSuite) newReadyOrder() *order.Order {
	o, _, storeID := suite.newPendingOrder()
	vendor, err := order.NewActor(order.RoleVendor, storeID)
	suite.Require().NoError(err)

	for _, target := range []order.Status{order.Confirmed, order.Preparing, order.Ready} {
		suite.Require().NoError(o.TransitionTo(target, vendor, ""))
	}

	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) expectTracking(o *order.Order) {
	suite.tracker.On("TrackAggregate", o.ID(), o)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertHistoryCount(o *order.Order, expected int64) {
	var count int64
	err := suite.db.Model(&orderrepo.HistoryDTO{}).
		Where("order_id = ?", o.ID().Bytes()).
		Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder, _, _ := suite.newPendingOrder()
	suite.expectTracking(testOrder)

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertHistoryCount(testOrder, 1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrips() {
	ctx := context.Background()

	originalOrder, customerID, storeID := suite.newPendingOrder()
	suite.expectTracking(originalOrder)
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrieved, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(originalOrder.ID(), retrieved.ID())
	suite.Equal("GRC-2024-000123", retrieved.Number())
	suite.Equal(customerID, retrieved.Customer())
	suite.Equal(storeID, retrieved.Store())
	suite.Nil(retrieved.Courier())
	suite.Equal(order.Pending, retrieved.Status())
	suite.Equal(int64(2350), retrieved.Totals().Total().Amount())
	suite.Require().Len(retrieved.History(), 1)
	suite.Equal(order.Pending, retrieved.History()[0].Status())
	suite.Equal(order.RoleCustomer, retrieved.History()[0].Actor().Role())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppliedTransition_PersistsStatusAndHistory() {
	ctx := context.Background()

	testOrder, _, storeID := suite.newPendingOrder()
	suite.expectTracking(testOrder)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	vendor, err := order.NewActor(order.RoleVendor, storeID)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.TransitionTo(order.Confirmed, vendor, ""))

	err = suite.repository.Update(ctx, testOrder, order.Pending)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, retrieved.Status())
	suite.Require().Len(retrieved.History(), 2)
	suite.Equal(order.Confirmed, retrieved.History()[1].Status())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_CancelledOrder_PersistsReasonAndTimestamp() {
	ctx := context.Background()

	testOrder, customerID, _ := suite.newPendingOrder()
	suite.expectTracking(testOrder)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	customer, err := order.NewActor(order.RoleCustomer, customerID)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.TransitionTo(order.Cancelled, customer, "changed my mind"))

	err = suite.repository.Update(ctx, testOrder, order.Pending)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, retrieved.Status())
	suite.Equal("changed my mind", retrieved.CancelReason())
	suite.NotNil(retrieved.CancelledAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleStatus_ReturnsVersionError() {
	ctx := context.Background()

	testOrder, _, storeID := suite.newPendingOrder()
	suite.expectTracking(testOrder)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	vendor, err := order.NewActor(order.RoleVendor, storeID)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.TransitionTo(order.Confirmed, vendor, ""))

	// Expectation does not match the stored pending status
	err = suite.repository.Update(ctx, testOrder, order.Preparing)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, retrieved.Status())
	suite.Len(retrieved.History(), 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_UnclaimedReadyOrder_AssignsCourier() {
	ctx := context.Background()

	testOrder := suite.newReadyOrder()
	suite.expectTracking(testOrder)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	courierID := kernel.NewUUID()
	courier, err := order.NewActor(order.RoleCourier, courierID)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.TransitionTo(order.Assigned, courier, ""))

	err = suite.repository.Claim(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, retrieved.Status())
	suite.Require().NotNil(retrieved.Courier())
	suite.True(retrieved.Courier().IsEqual(courierID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_AlreadyClaimedOrder_ReturnsAlreadyAssigned() {
	ctx := context.Background()

	testOrder := suite.newReadyOrder()
	suite.expectTracking(testOrder)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Both couriers loaded the same ready order
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.expectTracking(first)

	firstCourierID := kernel.NewUUID()
	firstCourier, err := order.NewActor(order.RoleCourier, firstCourierID)
	suite.Require().NoError(err)
	suite.Require().NoError(first.TransitionTo(order.Assigned, firstCourier, ""))
	suite.Require().NoError(suite.repository.Claim(ctx, first))

	secondCourier, err := order.NewActor(order.RoleCourier, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(second.TransitionTo(order.Assigned, secondCourier, ""))

	err = suite.repository.Claim(ctx, second)
	suite.Require().Error(err)
	suite.ErrorIs(err, order.ErrAlreadyAssigned)

	// The first courier keeps the order
	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.Courier())
	suite.True(retrieved.Courier().IsEqual(firstCourierID))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
