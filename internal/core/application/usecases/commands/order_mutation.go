package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
)

// maxTransitionRetries bounds how often a lifecycle command reloads the order
// after losing an optimistic-lock race before giving up.
const maxTransitionRetries = 3

// mutateOrder runs one order mutation under optimistic locking: load the
// aggregate, apply the mutation, persist with a version check. When the
// version check fails because a concurrent command got there first, the whole
// cycle repeats against the fresh state, up to maxTransitionRetries attempts.
// The retry re-applies the business rule, so a transition that became invalid
// in the meantime fails with the business error, not the conflict.
func mutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	mutate func(*order.Order) error,
) (*order.Order, error) {
	var lastErr error

	for attempt := 0; attempt < maxTransitionRetries; attempt++ {
		aggregate, err := mutateOrderOnce(ctx, uowFactory, orderID, mutate)
		if err == nil {
			return aggregate, nil
		}
		if !errors.Is(err, errs.ErrConcurrencyConflict) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

func mutateOrderOnce(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	mutate func(*order.Order) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = mutate(aggregate); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
