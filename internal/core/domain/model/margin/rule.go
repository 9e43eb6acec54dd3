// Package margin contains the MarginRule aggregate: the per-agent,
// per-service-type markup applied on top of raw rate quotations.
//
// Percentage bounds are enforced once, when a rule is written. The pricing
// engine trusts persisted rules and never re-validates bounds at quote time.
package margin

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrRuleIsNotConstructed is returned when a Rule instance was not created
	// through NewRule or RestoreRule.
	ErrRuleIsNotConstructed = errors.New("MarginRule must be created via NewRule constructor")
)

// Bounds is the inclusive percentage range a margin may take for a service type.
type Bounds struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// BoundsFor returns the configured margin bounds for a service type.
// The table reflects commercial policy: container rental carries the widest
// markup range, road transport the narrowest.
func BoundsFor(serviceType kernel.ServiceType) Bounds {
	switch serviceType {
	case kernel.ServiceTypeFreight:
		return Bounds{Min: decimal.NewFromInt(5), Max: decimal.NewFromInt(40)}
	case kernel.ServiceTypeRailway:
		return Bounds{Min: decimal.NewFromInt(5), Max: decimal.NewFromInt(35)}
	case kernel.ServiceTypeAuto:
		return Bounds{Min: decimal.NewFromInt(3), Max: decimal.NewFromInt(30)}
	case kernel.ServiceTypeContainerRental:
		return Bounds{Min: decimal.NewFromInt(10), Max: decimal.NewFromInt(50)}
	default:
		return Bounds{Min: decimal.Zero, Max: decimal.NewFromInt(100)}
	}
}

// Contains reports whether the percentage lies within the bounds, inclusive.
func (b Bounds) Contains(percent decimal.Decimal) bool {
	return percent.GreaterThanOrEqual(b.Min) && percent.LessThanOrEqual(b.Max)
}

// Rule represents the active margin configuration for one agent and service
// type. The repository guarantees at most one active rule per pair; writing a
// new rule deactivates the previous one in the same transaction.
type Rule struct {
	id            kernel.UUID
	agentID       kernel.UUID
	serviceType   kernel.ServiceType
	marginPercent decimal.Decimal
	active        bool

	isConstructed bool
}

// NewRule creates an active margin rule. The percentage must lie within
// BoundsFor(serviceType); this is the only place bounds are checked.
func NewRule(
	id kernel.UUID,
	agentID kernel.UUID,
	serviceType kernel.ServiceType,
	marginPercent decimal.Decimal,
) (*Rule, error) {
	rule := &Rule{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		rule.setID(id),
		rule.setAgentID(agentID),
		rule.setServiceType(serviceType),
	); err != nil {
		return nil, err
	}

	if err := rule.setMarginPercent(marginPercent); err != nil {
		return nil, err
	}

	return rule, nil
}

// RestoreRule reconstructs a rule from persistence, including its active flag.
func RestoreRule(
	id kernel.UUID,
	agentID kernel.UUID,
	serviceType kernel.ServiceType,
	marginPercent decimal.Decimal,
	active bool,
) (*Rule, error) {
	rule, err := NewRule(id, agentID, serviceType, marginPercent)
	if err != nil {
		return nil, err
	}

	rule.active = active
	return rule, nil
}

// Validate ensures the Rule instance was properly constructed.
func (r *Rule) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRuleIsNotConstructed
	}
	return nil
}

// ID returns the rule's unique identifier.
func (r *Rule) ID() kernel.UUID {
	return r.id
}

// AgentID returns the agent the rule applies to.
func (r *Rule) AgentID() kernel.UUID {
	return r.agentID
}

// ServiceType returns the service type the rule applies to.
func (r *Rule) ServiceType() kernel.ServiceType {
	return r.serviceType
}

// MarginPercent returns the markup percentage.
func (r *Rule) MarginPercent() decimal.Decimal {
	return r.marginPercent
}

// IsActive reports whether the rule is the current one for its pair.
func (r *Rule) IsActive() bool {
	return r.active
}

// ChangePercent updates the markup percentage, re-checking bounds.
func (r *Rule) ChangePercent(marginPercent decimal.Decimal) error {
	return r.setMarginPercent(marginPercent)
}

// Deactivate marks the rule as superseded by a newer one.
func (r *Rule) Deactivate() {
	r.active = false
}

// Apply returns the raw price increased by the rule's markup:
// rawPrice * (1 + marginPercent/100).
func (r *Rule) Apply(rawPrice kernel.Money) (kernel.Money, error) {
	if err := r.Validate(); err != nil {
		return kernel.Money{}, err
	}
	return rawPrice.ApplyMarkup(r.marginPercent)
}

func (r *Rule) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rule) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agentId", err)
	}
	r.agentID = agentID
	return nil
}

func (r *Rule) setServiceType(serviceType kernel.ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	r.serviceType = serviceType
	return nil
}

func (r *Rule) setMarginPercent(marginPercent decimal.Decimal) error {
	bounds := BoundsFor(r.serviceType)
	if !bounds.Contains(marginPercent) {
		return errs.NewValueIsOutOfRangeError("marginPercent",
			marginPercent.String(), bounds.Min.String(), bounds.Max.String())
	}

	r.marginPercent = marginPercent
	return nil
}
