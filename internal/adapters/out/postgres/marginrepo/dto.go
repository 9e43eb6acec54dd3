// Package marginrepo provides data transfer objects and mapping functions for
// margin rule persistence.
package marginrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/margin"
)

// MarginRuleDTO represents the database structure for persisting margin rules.
// The agent and service type columns are indexed together: pricing always
// looks the rule up by that pair.
type MarginRuleDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgentID       uuid.UUID `gorm:"type:uuid;index:idx_margin_agent_service"`
	ServiceType   string    `gorm:"index:idx_margin_agent_service"`
	MarginPercent decimal.Decimal `gorm:"type:numeric"`
	Active        bool
}

// TableName specifies the database table name for margin rules.
func (MarginRuleDTO) TableName() string {
	return "margin_rules"
}

// fromDomain converts a margin rule aggregate to its database representation.
func fromDomain(rule *margin.Rule) MarginRuleDTO {
	return MarginRuleDTO{
		ID:            rule.ID().Bytes(),
		AgentID:       rule.AgentID().Bytes(),
		ServiceType:   rule.ServiceType().String(),
		MarginPercent: rule.MarginPercent(),
		Active:        rule.IsActive(),
	}
}

// toDomain converts a database DTO to a margin rule aggregate.
func toDomain(dto MarginRuleDTO) (*margin.Rule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	agentID, err := kernel.UUIDFromBytes(dto.AgentID[:])
	if err != nil {
		return nil, err
	}

	serviceType, err := kernel.ParseServiceType(dto.ServiceType)
	if err != nil {
		return nil, err
	}

	return margin.RestoreRule(id, agentID, serviceType, dto.MarginPercent, dto.Active)
}
