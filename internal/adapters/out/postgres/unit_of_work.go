// Package postgres provides a GORM-based implementation of the Unit of Work
// pattern. A unit of work maintains the set of aggregates touched by a
// business transaction and coordinates writing out changes in one database
// transaction, with automatic isolation between concurrent operations.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Repositories obtained from the unit of work share its transaction, so an
// order write and a rate or margin rule read observe the same snapshot.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"freight/internal/adapters/out/postgres/loyaltyrepo"
	"freight/internal/adapters/out/postgres/marginrepo"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/adapters/out/postgres/raterepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// Tracked aggregates are what the application layer publishes change events
// for after a successful commit.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances backed by a shared GORM
// connection. Each business operation gets a fresh unit of work so concurrent
// operations never share transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. All created instances use the provided database connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction across the freight
// repositories and tracks aggregates modified within it. Repositories
// returned by the accessor methods run on the open transaction when one is
// active and on the base connection otherwise.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a database transaction. Calling Begin when a transaction is
// already open is a no-op, nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction. After
// commit the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction. After
// rollback the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction. Orders it adds or updates are registered via TrackAggregate.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// RateQuoteRepository returns a rate quote repository bound to the current
// transaction.
func (uow *GormUnitOfWork) RateQuoteRepository() ports.RateQuoteRepository {
	return raterepo.NewGormRateQuoteRepository(uow.conn())
}

// MarginRuleRepository returns a margin rule repository bound to the current
// transaction.
func (uow *GormUnitOfWork) MarginRuleRepository() ports.MarginRuleRepository {
	return marginrepo.NewGormMarginRuleRepository(uow.conn())
}

// LoyaltyScheduleRepository returns a loyalty schedule repository bound to
// the current transaction.
func (uow *GormUnitOfWork) LoyaltyScheduleRepository() ports.LoyaltyScheduleRepository {
	return loyaltyrepo.NewGormLoyaltyScheduleRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Repository implementations call it on Add and Update so the
// application layer can publish change events after the commit.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
