package fulfillment

import (
	"context"

	"github.com/parulcreation/projectshop/internal/core/port"
)

// RecallUnsent re-enqueues paid orders whose delivery never completed, so a
// restart or an exhausted retry budget does not strand them.
func RecallUnsent(ctx context.Context, repo port.Repository, dispatcher port.FulfillmentDispatcher) error {
	orders, err := repo.ListUnfulfilledOrders(ctx)
	if err != nil {
		return err
	}
	for _, order := range orders {
		dispatcher.Dispatch(order.Reference)
	}

	return nil
}
