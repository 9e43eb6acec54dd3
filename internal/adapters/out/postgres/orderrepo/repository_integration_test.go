package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
)

// noopTracker satisfies the repository's aggregate tracker without a full
// unit of work, the tests here inspect database state directly.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// OrderRepositoryIntegrationTestSuite exercises GormOrderRepository against
// a real PostgreSQL instance, including the paths that depend on database
// semantics: optimistic locking, the sequence upsert and aggregation.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository

	orderSeq int
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.StageDTO{}, &orderrepo.DocumentDTO{}, &orderrepo.OrderSequenceDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db, noopTracker{})
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_stages, order_documents, order_sequences").Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(
	clientID kernel.UUID, serviceType kernel.ServiceType, total string,
) *order.Order {
	suite.orderSeq++

	money, err := kernel.NewMoney(decimal.RequireFromString(total), "USD")
	suite.Require().NoError(err)
	cost, err := order.NewCost(money, money, decimal.Zero, decimal.Zero)
	suite.Require().NoError(err)

	agentID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.FormatOrderNumber(time.Now().Year(), suite.orderSeq),
		clientID,
		&agentID,
		"Hamburg",
		"Singapore",
		serviceType,
		cost,
	)
	suite.Require().NoError(err)
	return o
}

// deliver walks every stage of the order to completion.
func (suite *OrderRepositoryIntegrationTestSuite) deliver(o *order.Order, clientID kernel.UUID) {
	for {
		stage, ok := o.CurrentStage()
		if !ok {
			break
		}

		suite.Require().NoError(o.AdvanceStage(stage.Name()))
		suite.Require().NoError(o.AdvanceStage(stage.Name()))

		if current, stillOpen := o.CurrentStage(); stillOpen &&
			current.Name() == stage.Name() && current.Status() == order.StageRequiresConfirmation {
			suite.Require().NoError(o.ConfirmStage(stage.Name(), clientID))
		}
	}
	suite.Require().Equal(order.StatusDelivered, o.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	clientID := kernel.NewUUID()
	testOrder := suite.newOrder(clientID, kernel.ServiceTypeFreight, "2760")

	docID := kernel.NewUUID()
	suite.Require().NoError(testOrder.AttachDocument(docID))

	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(testOrder.ID().IsEqual(retrieved.ID()))
	suite.Equal(testOrder.OrderNumber(), retrieved.OrderNumber())
	suite.True(clientID.IsEqual(retrieved.ClientID()))
	suite.Equal("Hamburg", retrieved.Origin())
	suite.Equal("Singapore", retrieved.Destination())
	suite.Equal(kernel.ServiceTypeFreight, retrieved.ServiceType())
	suite.Equal(order.StatusPending, retrieved.Status())
	suite.Equal(1, retrieved.Version())
	suite.True(testOrder.Cost().Total().IsEqual(retrieved.Cost().Total()))

	suite.Require().Len(retrieved.DocumentIDs(), 1)
	suite.True(docID.IsEqual(retrieved.DocumentIDs()[0]))

	stages := retrieved.Stages()
	suite.Require().Len(stages, len(testOrder.Stages()))
	for i, stage := range stages {
		want := testOrder.Stages()[i]
		suite.Equal(want.Name(), stage.Name())
		suite.Equal(want.Sequence(), stage.Sequence())
		suite.Equal(want.RequiresClientConfirmation(), stage.RequiresClientConfirmation())
		suite.Equal(want.AdvancesTo(), stage.AdvancesTo())
		suite.Equal(order.StagePending, stage.Status())
		suite.Nil(stage.CompletedAt())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStageProgress() {
	ctx := context.Background()
	clientID := kernel.NewUUID()
	testOrder := suite.newOrder(clientID, kernel.ServiceTypeAuto, "900")

	suite.Require().NoError(suite.repo.Add(ctx, testOrder))

	// Walk booking through confirmation, which moves the order to confirmed.
	suite.Require().NoError(testOrder.AdvanceStage("booking_confirmation"))
	suite.Require().NoError(testOrder.AdvanceStage("booking_confirmation"))
	suite.Require().NoError(testOrder.ConfirmStage("booking_confirmation", clientID))

	suite.Require().NoError(suite.repo.Update(ctx, testOrder))
	suite.Equal(2, testOrder.Version(), "aggregate should carry the stored version after update")

	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, retrieved.Status())
	suite.Equal(2, retrieved.Version())

	booking := retrieved.Stages()[0]
	suite.Equal(order.StageCompleted, booking.Status())
	suite.NotNil(booking.CompletedAt())

	current, ok := retrieved.CurrentStage()
	suite.Require().True(ok)
	suite.Equal("truck_departure", current.Name())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionConflict() {
	ctx := context.Background()
	clientID := kernel.NewUUID()
	testOrder := suite.newOrder(clientID, kernel.ServiceTypeAuto, "900")
	suite.Require().NoError(suite.repo.Add(ctx, testOrder))

	// Two copies of the same aggregate, as two concurrent handlers would see it.
	first, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.AdvanceStage("booking_confirmation"))
	suite.Require().NoError(suite.repo.Update(ctx, first))

	suite.Require().NoError(second.AdvanceStage("booking_confirmation"))
	err = suite.repo.Update(ctx, second)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConcurrencyConflict)
	suite.Equal(1, second.Version(), "loser's aggregate should keep its stale version")

	// The winner's write is intact.
	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(2, retrieved.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActive() {
	ctx := context.Background()
	clientID := kernel.NewUUID()

	pending := suite.newOrder(clientID, kernel.ServiceTypeRailway, "1200")
	delivered := suite.newOrder(clientID, kernel.ServiceTypeAuto, "800")
	cancelled := suite.newOrder(clientID, kernel.ServiceTypeAuto, "500")

	suite.deliver(delivered, clientID)
	suite.Require().NoError(cancelled.Cancel())

	suite.Require().NoError(suite.repo.Add(ctx, pending))
	suite.Require().NoError(suite.repo.Add(ctx, delivered))
	suite.Require().NoError(suite.repo.Add(ctx, cancelled))

	active, err := suite.repo.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(active, 1)
	suite.True(pending.ID().IsEqual(active[0].ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestNextOrderSequence() {
	ctx := context.Background()

	first, err := suite.repo.NextOrderSequence(ctx, 2026)
	suite.Require().NoError(err)
	suite.Equal(1, first)

	second, err := suite.repo.NextOrderSequence(ctx, 2026)
	suite.Require().NoError(err)
	suite.Equal(2, second)

	third, err := suite.repo.NextOrderSequence(ctx, 2026)
	suite.Require().NoError(err)
	suite.Equal(3, third)

	// Each year starts its own sequence.
	nextYear, err := suite.repo.NextOrderSequence(ctx, 2027)
	suite.Require().NoError(err)
	suite.Equal(1, nextYear)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestNextOrderSequence_ConcurrentClaims() {
	const claims = 20

	type claim struct {
		sequence int
		err      error
	}

	results := make(chan claim, claims)
	var wg sync.WaitGroup
	for range claims {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sequence, err := suite.repo.NextOrderSequence(context.Background(), 2026)
			results <- claim{sequence: sequence, err: err}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int]bool, claims)
	for result := range results {
		suite.Require().NoError(result.err)
		suite.False(seen[result.sequence], "sequence %d was claimed twice", result.sequence)
		seen[result.sequence] = true
	}

	// Distinct and gapless: exactly 1..claims.
	suite.Len(seen, claims)
	for sequence := 1; sequence <= claims; sequence++ {
		suite.True(seen[sequence], "sequence %d was never claimed", sequence)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClientStats() {
	ctx := context.Background()
	clientID := kernel.NewUUID()
	otherClient := kernel.NewUUID()

	deliveredA := suite.newOrder(clientID, kernel.ServiceTypeAuto, "1000")
	deliveredB := suite.newOrder(clientID, kernel.ServiceTypeAuto, "250.50")
	pending := suite.newOrder(clientID, kernel.ServiceTypeAuto, "9999")
	foreign := suite.newOrder(otherClient, kernel.ServiceTypeAuto, "700")

	suite.deliver(deliveredA, clientID)
	suite.deliver(deliveredB, clientID)
	suite.deliver(foreign, otherClient)

	suite.Require().NoError(suite.repo.Add(ctx, deliveredA))
	suite.Require().NoError(suite.repo.Add(ctx, deliveredB))
	suite.Require().NoError(suite.repo.Add(ctx, pending))
	suite.Require().NoError(suite.repo.Add(ctx, foreign))

	stats, err := suite.repo.ClientStats(ctx, clientID)
	suite.Require().NoError(err)

	suite.Equal(2, stats.TotalOrders, "only delivered orders count")
	suite.True(stats.TotalRevenue.Equal(decimal.RequireFromString("1250.50")),
		"revenue should sum delivered totals, got %s", stats.TotalRevenue)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClientStats_NoHistory() {
	stats, err := suite.repo.ClientStats(context.Background(), kernel.NewUUID())
	suite.Require().NoError(err)

	suite.Equal(0, stats.TotalOrders)
	suite.True(stats.TotalRevenue.IsZero())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
