package ports

import (
	"context"

	"freight/internal/core/domain/model/order"
)

// OrderEventPublisher notifies external consumers about order lifecycle
// changes. Publishing is best effort: the order transition has already been
// committed when the publisher runs, and a delivery failure must not undo it.
type OrderEventPublisher interface {
	// PublishOrderChanged emits the order's current state after a lifecycle
	// change, such as creation, a stage transition or cancellation.
	PublishOrderChanged(ctx context.Context, aggregate *order.Order) error
}
