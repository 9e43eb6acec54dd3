package loyaltyrepo

import (
	"github.com/shopspring/decimal"

	"freight/internal/core/domain/model/loyalty"
)

// TierDTO is the database representation of a loyalty tier. Position keeps
// the insertion order so the schedule reads back in its original shape even
// though tier resolution itself does not depend on ordering.
type TierDTO struct {
	Position        int             `gorm:"primaryKey;autoIncrement:false"`
	Name            string          `gorm:"not null"`
	MinOrders       int             `gorm:"not null"`
	MinAmount       decimal.Decimal `gorm:"type:numeric;not null"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric;not null"`
}

func (TierDTO) TableName() string {
	return "loyalty_tiers"
}

func fromDomain(schedule loyalty.Schedule) []TierDTO {
	tiers := schedule.Tiers()
	dtos := make([]TierDTO, 0, len(tiers))

	for i, tier := range tiers {
		dtos = append(dtos, TierDTO{
			Position:        i,
			Name:            tier.Name(),
			MinOrders:       tier.MinOrders(),
			MinAmount:       tier.MinAmount(),
			DiscountPercent: tier.DiscountPercent(),
		})
	}

	return dtos
}

func toDomain(dtos []TierDTO) (loyalty.Schedule, error) {
	tiers := make([]loyalty.Tier, 0, len(dtos))

	for _, dto := range dtos {
		tier, err := loyalty.NewTier(dto.Name, dto.MinOrders, dto.MinAmount, dto.DiscountPercent)
		if err != nil {
			return loyalty.Schedule{}, err
		}
		tiers = append(tiers, tier)
	}

	return loyalty.NewSchedule(tiers)
}
