package raterepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/rate"
	"freight/internal/pkg/errs"
)

// GormRateQuoteRepository implements RateQuoteRepository using GORM.
type GormRateQuoteRepository struct {
	db *gorm.DB
}

// NewGormRateQuoteRepository creates a new GORM rate quote repository.
func NewGormRateQuoteRepository(db *gorm.DB) *GormRateQuoteRepository {
	return &GormRateQuoteRepository{db: db}
}

// Add saves a newly published rate quote to the database.
func (r *GormRateQuoteRepository) Add(ctx context.Context, quote *rate.RateQuote) error {
	if err := quote.Validate(); err != nil {
		return err
	}

	dto := fromDomain(quote)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing rate quote to the database.
func (r *GormRateQuoteRepository) Update(ctx context.Context, quote *rate.RateQuote) error {
	if err := quote.Validate(); err != nil {
		return err
	}

	dto := fromDomain(quote)
	result := r.db.WithContext(ctx).Model(&RateQuoteDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rateQuote", quote.ID().String())
	}

	return nil
}

// Get retrieves a rate quote by ID.
func (r *GormRateQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*rate.RateQuote, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RateQuoteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rateQuote", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindEffective retrieves the active quotes matching the route and service
// type whose validity window covers the given date. Route matching is case
// insensitive; validity is date granular on both ends. Results come back
// ordered by price, then validFrom, then container type, so the cheapest
// quote is first and equal prices resolve deterministically.
func (r *GormRateQuoteRepository) FindEffective(
	ctx context.Context,
	origin string,
	destination string,
	serviceType kernel.ServiceType,
	asOf time.Time,
) ([]*rate.RateQuote, error) {
	if err := serviceType.Validate(); err != nil {
		return nil, err
	}

	var dtos []RateQuoteDTO
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("LOWER(origin) = LOWER(?)", origin).
		Where("LOWER(destination) = LOWER(?)", destination).
		Where("service_type = ?", serviceType.String()).
		Where("valid_from::date <= ?::date AND valid_to::date >= ?::date", asOf, asOf).
		Order("price_amount ASC, valid_from ASC, container_type ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// FindActiveForKey retrieves the active quotes sharing the publication key of
// agent, route, service type and container type.
func (r *GormRateQuoteRepository) FindActiveForKey(
	ctx context.Context,
	agentID kernel.UUID,
	origin string,
	destination string,
	serviceType kernel.ServiceType,
	containerType string,
) ([]*rate.RateQuote, error) {
	if err := agentID.Validate(); err != nil {
		return nil, err
	}
	if err := serviceType.Validate(); err != nil {
		return nil, err
	}

	var dtos []RateQuoteDTO
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("agent_id = ?", agentID.Bytes()).
		Where("LOWER(origin) = LOWER(?)", origin).
		Where("LOWER(destination) = LOWER(?)", destination).
		Where("service_type = ?", serviceType.String()).
		Where("container_type = ?", containerType).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// FindExpired retrieves active quotes whose validity ended before the given date.
func (r *GormRateQuoteRepository) FindExpired(ctx context.Context, asOf time.Time) ([]*rate.RateQuote, error) {
	var dtos []RateQuoteDTO
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("valid_to::date < ?::date", asOf).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []RateQuoteDTO) ([]*rate.RateQuote, error) {
	quotes := make([]*rate.RateQuote, 0, len(dtos))
	for _, dto := range dtos {
		quote, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}

	return quotes, nil
}
