// Package ports defines repository interfaces for the freight domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/loyalty"
	"freight/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// along with the order-number sequence and client loyalty statistics.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate under optimistic
	// locking: the update applies only if the stored version still matches the
	// aggregate's version, and increments it. A version mismatch fails with
	// errs.ErrConcurrencyConflict so the caller can reload and retry.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its cost snapshot and stage sequence.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves all orders not yet in a terminal status.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// NextOrderSequence atomically claims the next order number sequence for
	// the given year. Two concurrent calls never observe the same value, so
	// order numbers stay unique without a separate uniqueness check.
	NextOrderSequence(ctx context.Context, year int) (int, error)

	// ClientStats returns the client's delivered-order count and cumulative
	// delivered spend, the inputs of loyalty tier resolution. A client with
	// no delivered orders yields the zero value, not an error.
	ClientStats(ctx context.Context, clientID kernel.UUID) (loyalty.ClientStats, error)
}
