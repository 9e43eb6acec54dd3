package rate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrRateQuoteIsNotConstructed is returned when a RateQuote instance was not
	// created through NewRateQuote or RestoreRateQuote.
	ErrRateQuoteIsNotConstructed = errors.New("RateQuote must be created via NewRateQuote constructor")
)

// RateQuote represents a raw price quotation published by an agent for a
// route, service type and container type, valid for an inclusive date range.
//
// RateQuote follows these invariants:
//   - Must have valid identifiers for the quote and the publishing agent
//   - Origin and destination must be non-empty
//   - Price must be a constructed Money value
//   - validFrom must not be after validTo
//   - Once published it is never mutated; superseding deactivates it
type RateQuote struct {
	id            kernel.UUID
	agentID       kernel.UUID
	origin        string
	destination   string
	serviceType   kernel.ServiceType
	containerType string
	price         kernel.Money
	validFrom     time.Time
	validTo       time.Time
	active        bool

	isConstructed bool
}

// NewRateQuote creates an active RateQuote with validation. This is the only
// way to publish a valid quotation; the persistence layer uses RestoreRateQuote
// to rebuild existing ones.
func NewRateQuote(
	id kernel.UUID,
	agentID kernel.UUID,
	origin string,
	destination string,
	serviceType kernel.ServiceType,
	containerType string,
	price kernel.Money,
	validFrom time.Time,
	validTo time.Time,
) (*RateQuote, error) {
	quote := &RateQuote{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		quote.setID(id),
		quote.setAgentID(agentID),
		quote.setRoute(origin, destination),
		quote.setServiceType(serviceType),
		quote.setPrice(price),
		quote.setValidity(validFrom, validTo),
	); err != nil {
		return nil, err
	}

	quote.containerType = strings.TrimSpace(containerType)
	return quote, nil
}

// RestoreRateQuote reconstructs a RateQuote from persistence, including its
// active flag. It applies the same validation as NewRateQuote.
func RestoreRateQuote(
	id kernel.UUID,
	agentID kernel.UUID,
	origin string,
	destination string,
	serviceType kernel.ServiceType,
	containerType string,
	price kernel.Money,
	validFrom time.Time,
	validTo time.Time,
	active bool,
) (*RateQuote, error) {
	quote, err := NewRateQuote(id, agentID, origin, destination, serviceType, containerType, price, validFrom, validTo)
	if err != nil {
		return nil, err
	}

	quote.active = active
	return quote, nil
}

// Validate ensures the RateQuote instance was properly constructed.
func (q *RateQuote) Validate() error {
	if q == nil || !q.isConstructed {
		return ErrRateQuoteIsNotConstructed
	}
	return nil
}

// IsEqual compares two quotations by their unique identifiers.
func (q *RateQuote) IsEqual(other *RateQuote) bool {
	return other != nil && q.id.IsEqual(other.id)
}

// ID returns the quotation's unique identifier.
func (q *RateQuote) ID() kernel.UUID {
	return q.id
}

// AgentID returns the identifier of the agent that published the quotation.
func (q *RateQuote) AgentID() kernel.UUID {
	return q.agentID
}

// Origin returns the origin of the quoted route, as submitted.
func (q *RateQuote) Origin() string {
	return q.origin
}

// Destination returns the destination of the quoted route, as submitted.
func (q *RateQuote) Destination() string {
	return q.destination
}

// ServiceType returns the transport service the quotation covers.
func (q *RateQuote) ServiceType() kernel.ServiceType {
	return q.serviceType
}

// ContainerType returns the container type, empty when not applicable.
func (q *RateQuote) ContainerType() string {
	return q.containerType
}

// Price returns the raw quoted price before margin and discount.
func (q *RateQuote) Price() kernel.Money {
	return q.price
}

// ValidFrom returns the first day the quotation is effective.
func (q *RateQuote) ValidFrom() time.Time {
	return q.validFrom
}

// ValidTo returns the last day the quotation is effective.
func (q *RateQuote) ValidTo() time.Time {
	return q.validTo
}

// IsActive reports whether the quotation has not been superseded or expired.
func (q *RateQuote) IsActive() bool {
	return q.active
}

// IsEffectiveAt reports whether the quotation takes part in pricing at the
// given date: it is active and the date falls within [validFrom, validTo].
// Comparison is date-granular and inclusive on both ends, so a quotation
// valid to 2024-12-31 is still effective at any time on that day.
func (q *RateQuote) IsEffectiveAt(at time.Time) bool {
	if !q.active {
		return false
	}

	d := dateOf(at)
	return !d.Before(dateOf(q.validFrom)) && !d.After(dateOf(q.validTo))
}

// MatchesRoute reports whether the quotation covers the given route.
// Matching is case-insensitive on both origin and destination.
func (q *RateQuote) MatchesRoute(origin, destination string) bool {
	return strings.EqualFold(q.origin, strings.TrimSpace(origin)) &&
		strings.EqualFold(q.destination, strings.TrimSpace(destination))
}

// Deactivate marks the quotation as superseded. Deactivation is the only
// mutation a published quotation ever sees.
func (q *RateQuote) Deactivate() {
	q.active = false
}

func (q *RateQuote) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.id = id
	return nil
}

func (q *RateQuote) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agentId", err)
	}
	q.agentID = agentID
	return nil
}

func (q *RateQuote) setRoute(origin, destination string) error {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	if origin == "" {
		return errs.NewValueIsRequiredError("origin")
	}
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}

	q.origin = origin
	q.destination = destination
	return nil
}

func (q *RateQuote) setServiceType(serviceType kernel.ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	q.serviceType = serviceType
	return nil
}

func (q *RateQuote) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	q.price = price
	return nil
}

func (q *RateQuote) setValidity(validFrom, validTo time.Time) error {
	if validFrom.IsZero() {
		return errs.NewValueIsRequiredError("validFrom")
	}
	if validTo.IsZero() {
		return errs.NewValueIsRequiredError("validTo")
	}
	if dateOf(validFrom).After(dateOf(validTo)) {
		return errs.NewValueIsInvalidErrorWithCause("validity",
			fmt.Errorf("validFrom %s is after validTo %s",
				validFrom.Format(time.DateOnly), validTo.Format(time.DateOnly)))
	}

	q.validFrom = validFrom
	q.validTo = validTo
	return nil
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
