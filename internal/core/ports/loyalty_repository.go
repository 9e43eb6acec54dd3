package ports

import (
	"context"

	"freight/internal/core/domain/model/loyalty"
)

// LoyaltyScheduleRepository defines the persistence contract for the loyalty
// tier schedule. The schedule is global configuration, not per-client state.
type LoyaltyScheduleRepository interface {
	// GetSchedule retrieves the current tier schedule. An empty schedule is a
	// valid result and resolves every client to a zero discount.
	GetSchedule(ctx context.Context) (loyalty.Schedule, error)

	// ReplaceSchedule atomically replaces the whole schedule with the given one.
	ReplaceSchedule(ctx context.Context, schedule loyalty.Schedule) error
}
