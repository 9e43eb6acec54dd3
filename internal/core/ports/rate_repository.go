package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/rate"
)

// RateQuoteRepository defines the persistence contract for agent rate quotes.
type RateQuoteRepository interface {
	// Add persists a newly published rate quote.
	Add(ctx context.Context, quote *rate.RateQuote) error

	// Update persists changes to an existing quote, currently only deactivation.
	Update(ctx context.Context, quote *rate.RateQuote) error

	// Get retrieves a rate quote by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rate.RateQuote, error)

	// FindEffective retrieves the active quotes matching the route and service
	// type that are effective on the given date. The pricing engine picks the
	// winner; the repository only narrows the candidate set.
	FindEffective(
		ctx context.Context,
		origin string,
		destination string,
		serviceType kernel.ServiceType,
		asOf time.Time,
	) ([]*rate.RateQuote, error)

	// FindActiveForKey retrieves the active quotes sharing the publication key
	// of agent, route, service type and container type. Publishing a new quote
	// supersedes these.
	FindActiveForKey(
		ctx context.Context,
		agentID kernel.UUID,
		origin string,
		destination string,
		serviceType kernel.ServiceType,
		containerType string,
	) ([]*rate.RateQuote, error)

	// FindExpired retrieves active quotes whose validity ended before the
	// given date. Used by the expiry job to deactivate stale quotes.
	FindExpired(ctx context.Context, asOf time.Time) ([]*rate.RateQuote, error)
}
