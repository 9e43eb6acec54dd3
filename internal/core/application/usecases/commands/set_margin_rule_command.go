package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrSetMarginRuleCommandIsNotConstructed = errors.New(
		"SetMarginRuleCommand must be created via NewSetMarginRuleCommand constructor",
	)
)

// SetMarginRuleCommand represents an agent's request to set the margin
// percentage applied to their rates for one service type. Replaces any
// previously active rule for the same agent and service type.
type SetMarginRuleCommand struct { //nolint:recvcheck //using for validation
	ruleID        kernel.UUID
	agentID       kernel.UUID
	serviceType   kernel.ServiceType
	marginPercent decimal.Decimal

	guard guard.ConstructorGuard
}

// NewSetMarginRuleCommand creates a command to configure a margin rule.
// The percentage bounds per service type are enforced by the Rule aggregate.
func NewSetMarginRuleCommand(
	ruleID kernel.UUID,
	agentID kernel.UUID,
	serviceType kernel.ServiceType,
	marginPercent decimal.Decimal,
) (SetMarginRuleCommand, error) {
	cmd := SetMarginRuleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ruleID.Validate(),
		agentID.Validate(),
		serviceType.Validate(),
	); err != nil {
		return SetMarginRuleCommand{}, err
	}

	cmd.ruleID = ruleID
	cmd.agentID = agentID
	cmd.serviceType = serviceType
	cmd.marginPercent = marginPercent
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetMarginRuleCommand) Validate() error {
	return c.guard.Validate(ErrSetMarginRuleCommandIsNotConstructed)
}

// RuleID returns the identifier for the new rule.
func (c SetMarginRuleCommand) RuleID() kernel.UUID {
	return c.ruleID
}

// AgentID returns the configuring agent's identifier.
func (c SetMarginRuleCommand) AgentID() kernel.UUID {
	return c.agentID
}

// ServiceType returns the service type the rule applies to.
func (c SetMarginRuleCommand) ServiceType() kernel.ServiceType {
	return c.serviceType
}

// MarginPercent returns the requested margin percentage.
func (c SetMarginRuleCommand) MarginPercent() decimal.Decimal {
	return c.marginPercent
}
