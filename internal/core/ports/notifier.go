package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderNotifier publishes dispatch events to the live audience computed for
// each event type. Delivery is fire-and-forget: a disconnected target simply
// receives nothing, and a failed delivery never aborts the rest.
type OrderNotifier interface {
	// NotifyNewOrder announces a freshly placed order to admins and the
	// owning kitchen.
	NotifyNewOrder(ctx context.Context, o *order.Order)

	// NotifyOrderUpdate announces a status or assignment change to admins,
	// the owning kitchen, the bound courier, and the tracking customer.
	NotifyOrderUpdate(ctx context.Context, o *order.Order, message string)

	// NotifyPreparedOrder announces food ready with no courier bound to every
	// connected courier so they can race to claim.
	NotifyPreparedOrder(ctx context.Context, o *order.Order)

	// NotifyManualAssignmentRequired escalates a stalled order to all admins.
	NotifyManualAssignmentRequired(ctx context.Context, o *order.Order)

	// NotifySubscriptionUpdate announces that a recurring delivery was pushed
	// to a future date.
	NotifySubscriptionUpdate(ctx context.Context, o *order.Order, message string)
}

// EntityNotifier publishes entity and wallet events raised by external
// collaborators (catalog, payments) through the same real-time channel.
type EntityNotifier interface {
	// NotifyChefStatus announces a kitchen going online/offline to admins,
	// customers, browsers, and the kitchen itself.
	NotifyChefStatus(ctx context.Context, chefID string, snapshot any)

	// NotifyProductAvailability announces a product toggling availability to
	// the same audience as chef status changes.
	NotifyProductAvailability(ctx context.Context, chefID string, snapshot any)

	// NotifyWalletUpdate announces a balance change to the one customer or
	// browser connection scoped to the user.
	NotifyWalletUpdate(ctx context.Context, userID string, snapshot any)
}
