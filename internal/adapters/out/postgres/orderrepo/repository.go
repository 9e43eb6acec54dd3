package orderrepo

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/loyalty"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, including its stage sequence.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order under optimistic locking. The row is updated
// only while its stored version still equals the aggregate's version; losing
// that race returns errs.ErrConcurrencyConflict and changes nothing. Stage and
// document rows are rewritten with the order row in the same transaction. On
// success the aggregate's version is bumped to match the stored row.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	currentVersion := dto.Version
	dto.Version = currentVersion + 1

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, currentVersion).
		Select("*").Omit("Stages", "Documents").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("order", aggregate.ID().String())
	}

	if err := r.replaceChildren(ctx, dto); err != nil {
		return err
	}

	aggregate.BumpVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// replaceChildren rewrites stage and document rows for the order. The row
// counts are tiny and fixed by the workflow template, so delete-and-insert
// beats diffing.
func (r *GormOrderRepository) replaceChildren(ctx context.Context, dto OrderDTO) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("order_id = ?", dto.ID).Delete(&StageDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Stages) > 0 {
		if err := db.Create(&dto.Stages).Error; err != nil {
			return err
		}
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&DocumentDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Documents) > 0 {
		if err := db.Create(&dto.Documents).Error; err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves an order by ID with its stages and document references.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("sequence") }).
		Preload("Documents").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves all orders that have not reached a terminal status.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("sequence") }).
		Preload("Documents").
		Find(&dtos, "status NOT IN (?, ?)",
			order.StatusDelivered.String(), order.StatusCancelled.String()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// NextOrderSequence atomically claims the next order number for the year.
// The upsert-returning statement makes the claim a single atomic operation;
// two concurrent callers always observe distinct values.
func (r *GormOrderRepository) NextOrderSequence(ctx context.Context, year int) (int, error) {
	if year <= 0 {
		return 0, errs.NewValueIsInvalidError("year")
	}

	var sequence int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO order_sequences (year, last_value)
		VALUES (?, 1)
		ON CONFLICT (year)
		DO UPDATE SET last_value = order_sequences.last_value + 1
		RETURNING last_value
	`, year).Scan(&sequence).Error
	if err != nil {
		return 0, err
	}

	return sequence, nil
}

// ClientStats returns the client's delivered-order count and cumulative
// delivered spend. Cancelled and in-flight orders do not count towards
// loyalty.
func (r *GormOrderRepository) ClientStats(ctx context.Context, clientID kernel.UUID) (loyalty.ClientStats, error) {
	if err := clientID.Validate(); err != nil {
		return loyalty.ClientStats{}, err
	}

	var row struct {
		TotalOrders  int
		TotalRevenue decimal.Decimal
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COALESCE(SUM(total_amount), 0) AS total_revenue
		FROM orders
		WHERE client_id = ? AND status = ?
	`, clientID.Bytes(), order.StatusDelivered.String()).Scan(&row).Error
	if err != nil {
		return loyalty.ClientStats{}, err
	}

	return loyalty.ClientStats{
		TotalOrders:  row.TotalOrders,
		TotalRevenue: row.TotalRevenue,
	}, nil
}
