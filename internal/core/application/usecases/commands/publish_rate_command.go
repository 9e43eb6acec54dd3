package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrPublishRateCommandIsNotConstructed = errors.New(
		"PublishRateCommand must be created via NewPublishRateCommand constructor",
	)
)

// PublishRateCommand represents an agent's request to publish a rate quote
// for a route, service type and validity window.
type PublishRateCommand struct { //nolint:recvcheck //using for validation
	rateID        kernel.UUID
	agentID       kernel.UUID
	origin        string
	destination   string
	serviceType   kernel.ServiceType
	containerType string
	price         kernel.Money
	validFrom     time.Time
	validTo       time.Time

	guard guard.ConstructorGuard
}

// NewPublishRateCommand creates a command to publish an agent rate quote.
// Field validation is deferred to the RateQuote aggregate; the command only
// requires a constructed price and valid identifiers.
func NewPublishRateCommand(
	rateID kernel.UUID,
	agentID kernel.UUID,
	origin string,
	destination string,
	serviceType kernel.ServiceType,
	containerType string,
	price kernel.Money,
	validFrom time.Time,
	validTo time.Time,
) (PublishRateCommand, error) {
	cmd := PublishRateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rateID.Validate(),
		agentID.Validate(),
		price.Validate(),
	); err != nil {
		return PublishRateCommand{}, err
	}

	cmd.rateID = rateID
	cmd.agentID = agentID
	cmd.origin = origin
	cmd.destination = destination
	cmd.serviceType = serviceType
	cmd.containerType = containerType
	cmd.price = price
	cmd.validFrom = validFrom
	cmd.validTo = validTo
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishRateCommand) Validate() error {
	return c.guard.Validate(ErrPublishRateCommandIsNotConstructed)
}

// RateID returns the identifier for the new rate quote.
func (c PublishRateCommand) RateID() kernel.UUID {
	return c.rateID
}

// AgentID returns the publishing agent's identifier.
func (c PublishRateCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Origin returns the route's origin.
func (c PublishRateCommand) Origin() string {
	return c.origin
}

// Destination returns the route's destination.
func (c PublishRateCommand) Destination() string {
	return c.destination
}

// ServiceType returns the quoted transport service.
func (c PublishRateCommand) ServiceType() kernel.ServiceType {
	return c.serviceType
}

// ContainerType returns the quoted container type, empty when not applicable.
func (c PublishRateCommand) ContainerType() string {
	return c.containerType
}

// Price returns the quoted price.
func (c PublishRateCommand) Price() kernel.Money {
	return c.price
}

// ValidFrom returns the first day the quote is effective.
func (c PublishRateCommand) ValidFrom() time.Time {
	return c.validFrom
}

// ValidTo returns the last day the quote is effective.
func (c PublishRateCommand) ValidTo() time.Time {
	return c.validTo
}
