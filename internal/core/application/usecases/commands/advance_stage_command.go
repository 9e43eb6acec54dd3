package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrAdvanceStageCommandIsNotConstructed = errors.New(
		"AdvanceStageCommand must be created via NewAdvanceStageCommand constructor",
	)
)

// AdvanceStageCommand represents a request to move an order's current stage
// one step forward in its workflow.
type AdvanceStageCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	stageName string

	guard guard.ConstructorGuard
}

// NewAdvanceStageCommand creates a command to advance the named stage of an order.
func NewAdvanceStageCommand(orderID kernel.UUID, stageName string) (AdvanceStageCommand, error) {
	cmd := AdvanceStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStageName(stageName),
	); err != nil {
		return AdvanceStageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStageCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStageCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to advance.
func (c AdvanceStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StageName returns the name of the stage to advance.
func (c AdvanceStageCommand) StageName() string {
	return c.stageName
}

func (c *AdvanceStageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceStageCommand) setStageName(stageName string) error {
	stageName = strings.TrimSpace(stageName)
	if stageName == "" {
		return errs.NewValueIsRequiredError("stageName")
	}

	c.stageName = stageName
	return nil
}
