package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/margin"
)

// MarginRuleRepository defines the persistence contract for margin rules.
// At most one active rule exists per agent and service type; Upsert replaces
// rather than accumulates.
type MarginRuleRepository interface {
	// GetActive retrieves the active rule for the agent and service type.
	// Returns errs.ErrObjectNotFound when the agent has not configured one.
	GetActive(ctx context.Context, agentID kernel.UUID, serviceType kernel.ServiceType) (*margin.Rule, error)

	// Upsert stores the rule, deactivating any previous rule for the same
	// agent and service type in the same transaction.
	Upsert(ctx context.Context, rule *margin.Rule) error
}
