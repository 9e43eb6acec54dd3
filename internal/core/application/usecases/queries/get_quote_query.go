// Package queries contains read-only operations in the CQRS architecture.
// Query handlers either compose repositories for domain-shaped reads or go
// straight to the database with raw SQL for view-shaped reads.
package queries

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrGetQuoteQueryIsNotConstructed = errors.New(
		"GetQuoteQuery must be created via NewGetQuoteQuery constructor",
	)
)

// GetQuoteQuery requests an advisory price for a shipment before an order is
// placed. The returned price is not persisted and not binding; placing the
// order the same day against the same rates reproduces it.
type GetQuoteQuery struct {
	clientID    kernel.UUID
	agentID     kernel.UUID
	origin      string
	destination string
	serviceType kernel.ServiceType

	guard guard.ConstructorGuard
}

// NewGetQuoteQuery creates a query for an advisory shipment quote.
func NewGetQuoteQuery(
	clientID kernel.UUID,
	agentID kernel.UUID,
	origin string,
	destination string,
	serviceType kernel.ServiceType,
) (GetQuoteQuery, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	if err := clientID.Validate(); err != nil {
		return GetQuoteQuery{}, errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}
	if err := agentID.Validate(); err != nil {
		return GetQuoteQuery{}, errs.NewValueIsRequiredErrorWithCause("agentId", err)
	}
	if origin == "" {
		return GetQuoteQuery{}, errs.NewValueIsRequiredError("origin")
	}
	if destination == "" {
		return GetQuoteQuery{}, errs.NewValueIsRequiredError("destination")
	}
	if err := serviceType.Validate(); err != nil {
		return GetQuoteQuery{}, err
	}

	return GetQuoteQuery{
		clientID:    clientID,
		agentID:     agentID,
		origin:      origin,
		destination: destination,
		serviceType: serviceType,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetQuoteQueryIsNotConstructed)
}

// ClientID returns the requesting client's identifier.
func (q GetQuoteQuery) ClientID() kernel.UUID {
	return q.clientID
}

// AgentID returns the serving agent's identifier.
func (q GetQuoteQuery) AgentID() kernel.UUID {
	return q.agentID
}

// Origin returns the shipment's origin.
func (q GetQuoteQuery) Origin() string {
	return q.origin
}

// Destination returns the shipment's destination.
func (q GetQuoteQuery) Destination() string {
	return q.destination
}

// ServiceType returns the requested transport service.
func (q GetQuoteQuery) ServiceType() kernel.ServiceType {
	return q.serviceType
}

// GetQuoteQueryResponse is the advisory quote returned to the client: the
// final price plus the breakdown the client is allowed to see.
type GetQuoteQueryResponse struct {
	FinalPrice      decimal.Decimal
	Currency        string
	RawPrice        decimal.Decimal
	MarginPercent   decimal.Decimal
	DiscountPercent decimal.Decimal
}
