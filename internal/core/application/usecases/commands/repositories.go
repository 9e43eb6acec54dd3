// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RateRepoFactory provides access to the rate quote repository within a transaction.
	RateRepoFactory interface {
		RateQuoteRepository() ports.RateQuoteRepository
	}

	// MarginRepoFactory provides access to the margin rule repository within a transaction.
	MarginRepoFactory interface {
		MarginRuleRepository() ports.MarginRuleRepository
	}

	// LoyaltyRepoFactory provides access to the loyalty schedule repository within a transaction.
	LoyaltyRepoFactory interface {
		LoyaltyScheduleRepository() ports.LoyaltyScheduleRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used by lifecycle commands that modify a single order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RateUoW manages transactions for rate publication.
	RateUoW interface {
		TxManager
		RateRepoFactory
	}

	// RateUoWFactory creates new rate unit of work instances.
	RateUoWFactory interface {
		Create() RateUoW
	}

	// MarginUoW manages transactions for margin rule configuration.
	MarginUoW interface {
		TxManager
		MarginRepoFactory
	}

	// MarginUoWFactory creates new margin unit of work instances.
	MarginUoWFactory interface {
		Create() MarginUoW
	}

	// LoyaltyUoW manages transactions for loyalty schedule replacement.
	LoyaltyUoW interface {
		TxManager
		LoyaltyRepoFactory
	}

	// LoyaltyUoWFactory creates new loyalty unit of work instances.
	LoyaltyUoWFactory interface {
		Create() LoyaltyUoW
	}

	// PricingUoW manages transactions that price and persist a new order.
	// CreateOrder reads rates, the margin rule and the loyalty schedule in the
	// same transaction that claims the order number and stores the order, so
	// the cost snapshot and the number allocation stay consistent.
	PricingUoW interface {
		TxManager
		OrderRepoFactory
		RateRepoFactory
		MarginRepoFactory
		LoyaltyRepoFactory
	}

	// PricingUoWFactory creates new pricing unit of work instances.
	PricingUoWFactory interface {
		Create() PricingUoW
	}
)
