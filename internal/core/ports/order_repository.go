package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// The store is the arbiter of every race in the dispatch core: Claim is an
// atomic conditional write, and Update guards on the status the aggregate was
// read with, so concurrent actors can never land a stale write.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// applied only if the stored status still equals the status the aggregate
	// was loaded with; otherwise order.ErrInvalidTransition is returned and
	// nothing changes.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no row exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Claim performs the single conditional write resolving the
	// many-couriers-one-order race: set assigned_to where it is still null
	// and the status is claimable. Exactly one concurrent caller observes
	// true; everyone else observes false with no side effect.
	Claim(ctx context.Context, orderID, courierID kernel.UUID) (bool, error)

	// Assign binds a courier by administrator override, bypassing the
	// conditional claim check. The order must exist and not be retired.
	Assign(ctx context.Context, orderID, courierID kernel.UUID) error

	// GetAwaitingCourier retrieves all unassigned orders sitting in an
	// escalation-eligible state. Used to rebuild escalation timers after a
	// process restart.
	GetAwaitingCourier(ctx context.Context) ([]*order.Order, error)
}
