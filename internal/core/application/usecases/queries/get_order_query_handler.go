package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// GetOrderQueryHandler retrieves the tracking view of one order straight from
// the database. The read model skips aggregate reconstruction: the view needs
// rows, not behavior.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order tracking queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query for one order and its stage progression.
// Returns errs.ErrObjectNotFound when no order has the given identifier.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var id, clientID uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			client_id,
			origin,
			destination,
			service_type,
			status,
			total_amount,
			currency,
			raw_price_amount,
			margin_percent,
			discount_percent
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	err := row.Scan(
		&id,
		&resp.OrderNumber,
		&clientID,
		&resp.Origin,
		&resp.Destination,
		&resp.ServiceType,
		&resp.Status,
		&resp.TotalPrice,
		&resp.Currency,
		&resp.RawPrice,
		&resp.MarginPercent,
		&resp.DiscountPercent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
		}
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	stages, err := h.loadStages(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Stages = stages

	return resp, nil
}

func (h GetOrderQueryHandler) loadStages(ctx context.Context, orderID kernel.UUID) ([]OrderStageResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			sequence,
			status,
			requires_confirmation,
			completed_at
		FROM order_stages
		WHERE order_id = ?
		ORDER BY sequence
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stages := make([]OrderStageResponse, 0)
	for rows.Next() {
		var stage OrderStageResponse

		err = rows.Scan(
			&stage.Name,
			&stage.Sequence,
			&stage.Status,
			&stage.RequiresConfirmation,
			&stage.CompletedAt,
		)
		if err != nil {
			return nil, err
		}

		stages = append(stages, stage)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stages, nil
}
