package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to place a new shipment order.
// Encapsulates the ordering client, the serving agent, the route and the
// requested transport service.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, clientID, agentID,
//	    "Shanghai", "Rotterdam", kernel.ServiceTypeFreight)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	clientID    kernel.UUID
	agentID     kernel.UUID
	origin      string
	destination string
	serviceType kernel.ServiceType

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new shipment order.
// Validates identifiers, the route and the service type.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID kernel.UUID,
	agentID kernel.UUID,
	origin string,
	destination string,
	serviceType kernel.ServiceType,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(clientID),
		cmd.setAgentID(agentID),
		cmd.setRoute(origin, destination),
		cmd.setServiceType(serviceType),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the ordering client's identifier.
func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// AgentID returns the serving agent's identifier.
func (c CreateOrderCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Origin returns the shipment's origin.
func (c CreateOrderCommand) Origin() string {
	return c.origin
}

// Destination returns the shipment's destination.
func (c CreateOrderCommand) Destination() string {
	return c.destination
}

// ServiceType returns the requested transport service.
func (c CreateOrderCommand) ServiceType() kernel.ServiceType {
	return c.serviceType
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}

	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agentId", err)
	}

	c.agentID = agentID
	return nil
}

func (c *CreateOrderCommand) setRoute(origin, destination string) error {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	if origin == "" {
		return errs.NewValueIsRequiredError("origin")
	}
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}

	c.origin = origin
	c.destination = destination
	return nil
}

func (c *CreateOrderCommand) setServiceType(serviceType kernel.ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}

	c.serviceType = serviceType
	return nil
}
