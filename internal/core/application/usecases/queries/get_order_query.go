package queries

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its cost snapshot and full stage
// progression for tracking views.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order by identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the tracking view of one order.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	ClientID        kernel.UUID
	Origin          string
	Destination     string
	ServiceType     string
	Status          string
	TotalPrice      decimal.Decimal
	Currency        string
	RawPrice        decimal.Decimal
	MarginPercent   decimal.Decimal
	DiscountPercent decimal.Decimal
	Stages          []OrderStageResponse
}

// OrderStageResponse is one workflow step inside the tracking view.
type OrderStageResponse struct {
	Name                 string
	Sequence             int
	Status               string
	RequiresConfirmation bool
	CompletedAt          *time.Time
}
