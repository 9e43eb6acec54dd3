package loyaltyrepo

import (
	"context"

	"gorm.io/gorm"

	"freight/internal/core/domain/model/loyalty"
)

// GormLoyaltyScheduleRepository implements LoyaltyScheduleRepository using GORM.
type GormLoyaltyScheduleRepository struct {
	db *gorm.DB
}

// NewGormLoyaltyScheduleRepository creates a new GORM loyalty schedule repository.
func NewGormLoyaltyScheduleRepository(db *gorm.DB) *GormLoyaltyScheduleRepository {
	return &GormLoyaltyScheduleRepository{db: db}
}

// GetSchedule retrieves the current tier schedule. No rows is not an error,
// it reads back as the empty schedule.
func (r *GormLoyaltyScheduleRepository) GetSchedule(ctx context.Context) (loyalty.Schedule, error) {
	var dtos []TierDTO
	err := r.db.WithContext(ctx).Order("position ASC").Find(&dtos).Error
	if err != nil {
		return loyalty.Schedule{}, err
	}

	return toDomain(dtos)
}

// ReplaceSchedule swaps the whole schedule for the given one. The delete and
// the insert run on the repository's connection, which the unit of work binds
// to one transaction.
func (r *GormLoyaltyScheduleRepository) ReplaceSchedule(ctx context.Context, schedule loyalty.Schedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Where("position >= 0").Delete(&TierDTO{}).Error
	if err != nil {
		return err
	}

	dtos := fromDomain(schedule)
	if len(dtos) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}
