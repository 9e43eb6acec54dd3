package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrConfirmStageCommandIsNotConstructed = errors.New(
		"ConfirmStageCommand must be created via NewConfirmStageCommand constructor",
	)
)

// ConfirmStageCommand represents a client's confirmation of a stage waiting
// on their action. Carries the confirming client's identity: only the order's
// own client may confirm.
type ConfirmStageCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	stageName string
	clientID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmStageCommand creates a command to confirm the named stage of an order.
func NewConfirmStageCommand(orderID kernel.UUID, stageName string, clientID kernel.UUID) (ConfirmStageCommand, error) {
	cmd := ConfirmStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStageName(stageName),
		cmd.setClientID(clientID),
	); err != nil {
		return ConfirmStageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmStageCommand) Validate() error {
	return c.guard.Validate(ErrConfirmStageCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being confirmed.
func (c ConfirmStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StageName returns the name of the stage being confirmed.
func (c ConfirmStageCommand) StageName() string {
	return c.stageName
}

// ClientID returns the confirming client's identifier.
func (c ConfirmStageCommand) ClientID() kernel.UUID {
	return c.clientID
}

func (c *ConfirmStageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmStageCommand) setStageName(stageName string) error {
	stageName = strings.TrimSpace(stageName)
	if stageName == "" {
		return errs.NewValueIsRequiredError("stageName")
	}

	c.stageName = stageName
	return nil
}

func (c *ConfirmStageCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}

	c.clientID = clientID
	return nil
}
