package marginrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/margin"
	"freight/internal/pkg/errs"
)

// GormMarginRuleRepository implements MarginRuleRepository using GORM.
type GormMarginRuleRepository struct {
	db *gorm.DB
}

// NewGormMarginRuleRepository creates a new GORM margin rule repository.
func NewGormMarginRuleRepository(db *gorm.DB) *GormMarginRuleRepository {
	return &GormMarginRuleRepository{db: db}
}

// GetActive retrieves the active rule for the agent and service type.
func (r *GormMarginRuleRepository) GetActive(
	ctx context.Context,
	agentID kernel.UUID,
	serviceType kernel.ServiceType,
) (*margin.Rule, error) {
	if err := agentID.Validate(); err != nil {
		return nil, err
	}
	if err := serviceType.Validate(); err != nil {
		return nil, err
	}

	var dto MarginRuleDTO
	err := r.db.WithContext(ctx).First(&dto,
		"agent_id = ? AND service_type = ? AND active = ?",
		agentID.Bytes(), serviceType.String(), true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("marginRule", agentID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Upsert stores the rule and deactivates any previously active rule for the
// same agent and service type. The two statements run on the repository's
// connection, which the unit of work binds to one transaction.
func (r *GormMarginRuleRepository) Upsert(ctx context.Context, rule *margin.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	dto := fromDomain(rule)

	err := r.db.WithContext(ctx).Model(&MarginRuleDTO{}).
		Where("agent_id = ? AND service_type = ? AND active = ?",
			dto.AgentID, dto.ServiceType, true).
		Update("active", false).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}
