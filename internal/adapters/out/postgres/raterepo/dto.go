// Package raterepo provides data transfer objects and mapping functions for
// rate quote persistence.
package raterepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/rate"
)

// RateQuoteDTO represents the database structure for persisting rate quotes.
// The route columns are indexed together for the effective-rate lookup.
type RateQuoteDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgentID       uuid.UUID `gorm:"type:uuid;index"`
	Origin        string    `gorm:"index:idx_rate_route"`
	Destination   string    `gorm:"index:idx_rate_route"`
	ServiceType   string    `gorm:"index:idx_rate_route"`
	ContainerType string
	PriceAmount   decimal.Decimal `gorm:"type:numeric"`
	PriceCurrency string
	ValidFrom     time.Time
	ValidTo       time.Time
	Active        bool `gorm:"index"`
}

// TableName specifies the database table name for rate quotes.
func (RateQuoteDTO) TableName() string {
	return "rate_quotes"
}

// fromDomain converts a rate quote aggregate to its database representation.
func fromDomain(quote *rate.RateQuote) RateQuoteDTO {
	return RateQuoteDTO{
		ID:            quote.ID().Bytes(),
		AgentID:       quote.AgentID().Bytes(),
		Origin:        quote.Origin(),
		Destination:   quote.Destination(),
		ServiceType:   quote.ServiceType().String(),
		ContainerType: quote.ContainerType(),
		PriceAmount:   quote.Price().Amount(),
		PriceCurrency: quote.Price().Currency(),
		ValidFrom:     quote.ValidFrom(),
		ValidTo:       quote.ValidTo(),
		Active:        quote.IsActive(),
	}
}

// toDomain converts a database DTO to a rate quote aggregate.
func toDomain(dto RateQuoteDTO) (*rate.RateQuote, error) {
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

	price, err := kernel.NewMoney(dto.PriceAmount, dto.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return rate.RestoreRateQuote(id, agentID, dto.Origin, dto.Destination,
		serviceType, dto.ContainerType, price, dto.ValidFrom, dto.ValidTo, dto.Active)
}
