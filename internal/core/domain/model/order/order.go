package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrAlreadyClaimed is returned when a courier loses the claim race: the
	// order already has a deliverer bound. The caller should re-poll the
	// claimable order list rather than retry blindly.
	ErrAlreadyClaimed = errors.New("order is already claimed by another courier")

	// ErrNotClaimable is returned when an order is not in a claimable lifecycle
	// state. Distinct from ErrAlreadyClaimed so clients can tell "someone else
	// has this" from "this order cannot be acted on right now".
	ErrNotClaimable = errors.New("order is not in a claimable state")
)

// Order is the aggregate root tracked through preparation and delivery.
//
// Order follows these invariants:
//   - Identity, owning kitchen, and customer are immutable once routed
//   - Status transitions follow the legality table in Status
//   - A courier id is bound only through Claim or the admin override
//   - A pending order never has a courier bound
//   - Courier-bound statuses are unreachable without an assigned courier
//
// Claiming is deliberately decoupled from the lifecycle: binding a courier
// does not change the status. A claimed order stays preparing/prepared until
// the courier explicitly accepts or picks up, matching the real asynchrony
// between kitchen and courier readiness.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// chefID is the owning kitchen, immutable once the order is routed
	chefID kernel.UUID

	// customerID identifies the buying customer
	customerID kernel.UUID

	// courierID is the assigned courier (nil means unclaimed)
	courierID *kernel.UUID

	// status is the current state in the order lifecycle
	status Status

	// persistedStatus is the status read from storage; conditional updates
	// guard on it so stale in-memory copies can never overwrite newer state
	persistedStatus Status

	// paymentStatus tracks the payment side, orthogonal to status
	paymentStatus PaymentStatus

	// cancelReason is set when the order is cancelled
	cancelReason string

	approvedAt  *time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a freshly placed order in pending status with payment
// pending and no courier bound.
func NewOrder(id, chefID, customerID kernel.UUID) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		chefID.Validate(),
		customerID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:              id,
		chefID:          chefID,
		customerID:      customerID,
		status:          Pending,
		persistedStatus: Pending,
		paymentStatus:   PaymentPending,
		isConstructed:   true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence. All invariants are
// re-checked so corrupt rows surface as errors instead of invalid aggregates.
func RestoreOrder(
	id, chefID, customerID kernel.UUID,
	status Status,
	paymentStatus PaymentStatus,
	courierID *kernel.UUID,
	cancelReason string,
	approvedAt, assignedAt, pickedUpAt, deliveredAt *time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		chefID.Validate(),
		customerID.Validate(),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		if status == Pending {
			return nil, NewInvalidTransitionError(Pending, status)
		}
	}
	if status.CourierBound() && courierID == nil {
		return nil, NewInvalidTransitionError(status, status)
	}

	return &Order{
		id:              id,
		chefID:          chefID,
		customerID:      customerID,
		courierID:       courierID,
		status:          status,
		persistedStatus: status,
		paymentStatus:   paymentStatus,
		cancelReason:    cancelReason,
		approvedAt:      approvedAt,
		assignedAt:      assignedAt,
		pickedUpAt:      pickedUpAt,
		deliveredAt:     deliveredAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// ChefID returns the owning kitchen's identifier.
func (o *Order) ChefID() kernel.UUID { return o.chefID }

// CustomerID returns the buying customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// Courier returns the assigned courier's id, or nil when unclaimed.
func (o *Order) Courier() *kernel.UUID { return o.courierID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PersistedStatus returns the status as last read from storage. Repositories
// use it as the optimistic guard on conditional updates.
func (o *Order) PersistedStatus() Status { return o.persistedStatus }

// PaymentStatus returns the payment side of the order.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// CancelReason returns the reason recorded on cancellation, if any.
func (o *Order) CancelReason() string { return o.cancelReason }

// ApprovedAt returns when payment was confirmed, if it was.
func (o *Order) ApprovedAt() *time.Time { return o.approvedAt }

// AssignedAt returns when a courier was bound, if one was.
func (o *Order) AssignedAt() *time.Time { return o.assignedAt }

// PickedUpAt returns when the courier picked the order up, if they did.
func (o *Order) PickedUpAt() *time.Time { return o.pickedUpAt }

// DeliveredAt returns when the order was delivered, if it was.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// Claimable reports whether a courier may claim this order right now:
// claimable lifecycle state and no courier bound.
func (o *Order) Claimable() bool {
	return o.status.Claimable() && o.courierID == nil
}

// AwaitingCourier reports whether the order is eligible for escalation:
// the kitchen has it (or finished it) and no courier has responded.
func (o *Order) AwaitingCourier() bool {
	return o.status.AwaitingCourier() && o.courierID == nil
}

// TransitionTo moves the order to target when the legality table allows it.
// Courier-bound targets additionally require an assigned courier. On an
// illegal request the error is returned and the order is untouched.
func (o *Order) TransitionTo(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	if newStatus.CourierBound() && o.courierID == nil {
		return NewInvalidTransitionError(o.status, newStatus)
	}

	o.status = newStatus
	now := time.Now().UTC()
	switch newStatus {
	case Confirmed:
		o.approvedAt = &now
	case OutForDelivery:
		o.pickedUpAt = &now
	case Delivered:
		o.deliveredAt = &now
	}
	return nil
}

// ConfirmPayment records the gateway's confirmation and advances the order
// from pending to confirmed.
func (o *Order) ConfirmPayment() error {
	if err := o.TransitionTo(Confirmed); err != nil {
		return err
	}
	o.paymentStatus = PaymentConfirmed
	return nil
}

// Claim binds the courier as the deliverer of this order without touching
// the lifecycle status. The repository performs the authoritative conditional
// write; this method mirrors it on the aggregate and enforces claimability.
func (o *Order) Claim(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil {
		return ErrAlreadyClaimed
	}
	if !o.status.Claimable() {
		return ErrNotClaimable
	}

	now := time.Now().UTC()
	o.courierID = &courierID
	o.assignedAt = &now
	return nil
}

// AssignOverride binds (or rebinds) a courier by administrator decision,
// bypassing the claim check. Rejected only for retired orders.
func (o *Order) AssignOverride(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.status.Terminal() {
		return NewInvalidTransitionError(o.status, o.status)
	}

	now := time.Now().UTC()
	o.courierID = &courierID
	o.assignedAt = &now
	return nil
}

// Cancel moves the order to the terminal cancelled state with a reason.
func (o *Order) Cancel(reason string) error {
	if err := o.TransitionTo(Cancelled); err != nil {
		return err
	}
	o.cancelReason = reason
	return nil
}

// Reschedule moves a recurring delivery to the terminal rescheduled state;
// the recurrence scheduler places a fresh order for the future date.
func (o *Order) Reschedule() error {
	return o.TransitionTo(Rescheduled)
}
