package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow from placement through delivery.
//
// Main path:
//
//	pending -> confirmed -> accepted_by_chef -> preparing -> prepared
//	        -> accepted_by_delivery -> out_for_delivery -> delivered -> completed
//
// Chef acceptance may auto-advance straight to preparing, so
// confirmed -> preparing is also legal. Every status before out_for_delivery
// may branch to the terminal cancelled and rescheduled states.
//
// Status is a value object; the transition table below is the single
// authoritative encoding of legality.
type Status string

const (
	// Pending is the initial status: the order is placed but payment is not
	// yet confirmed.
	Pending Status = "pending"

	// Confirmed means payment went through; the order is waiting for the
	// kitchen to accept it.
	Confirmed Status = "confirmed"

	// AcceptedByChef means the kitchen has taken the order.
	AcceptedByChef Status = "accepted_by_chef"

	// Preparing means the kitchen is cooking.
	Preparing Status = "preparing"

	// Prepared means the food is ready for pickup.
	Prepared Status = "prepared"

	// AcceptedByDelivery means the bound courier has explicitly accepted the
	// delivery. Requires a courier to be assigned.
	AcceptedByDelivery Status = "accepted_by_delivery"

	// OutForDelivery means the courier has picked the order up.
	OutForDelivery Status = "out_for_delivery"

	// Delivered means the courier confirmed the handover to the customer.
	Delivered Status = "delivered"

	// Completed is the final state of a successfully delivered order.
	Completed Status = "completed"

	// Cancelled is a terminal branch reachable from any pre-pickup state.
	Cancelled Status = "cancelled"

	// Rescheduled is a terminal branch used when a recurring delivery is
	// pushed to a future date; the recurrence scheduler creates a fresh order.
	Rescheduled Status = "rescheduled"
)

// ErrInvalidTransition is the sentinel every illegal transition unwraps to.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports an attempted move that is not in the
// legality table. The stored order is untouched when it is returned.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// transitions is the authoritative legality table. A requested move is legal
// iff the target appears in the row of the current status. Terminal statuses
// have no row.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:            {Confirmed, Cancelled, Rescheduled},
		Confirmed:          {AcceptedByChef, Preparing, Cancelled, Rescheduled},
		AcceptedByChef:     {Preparing, AcceptedByDelivery, OutForDelivery, Cancelled, Rescheduled},
		Preparing:          {Prepared, AcceptedByDelivery, OutForDelivery, Cancelled, Rescheduled},
		Prepared:           {AcceptedByDelivery, OutForDelivery, Cancelled, Rescheduled},
		AcceptedByDelivery: {OutForDelivery, Cancelled, Rescheduled},
		OutForDelivery:     {Delivered},
		Delivered:          {Completed},
	}
}

// AllStatuses returns every known lifecycle state. Useful for exhaustive
// validation and tests over the legality table.
func AllStatuses() []Status {
	return []Status{
		Pending, Confirmed, AcceptedByChef, Preparing, Prepared,
		AcceptedByDelivery, OutForDelivery, Delivered, Completed,
		Cancelled, Rescheduled,
	}
}

func validStatuses() map[Status]struct{} {
	valid := make(map[Status]struct{})
	for _, s := range AllStatuses() {
		valid[s] = struct{}{}
	}
	return valid
}

// Validate checks if the Status value is one of the known lifecycle states.
// Used when reconstructing orders from persistence or parsing external input.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether moving to target is present in the
// legality table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status when the move is legal, or an
// InvalidTransitionError otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(target) {
		return "", NewInvalidTransitionError(s, target)
	}
	return target, nil
}

// Claimable reports whether a courier may race to claim an order in this
// status. Assignment state is checked separately by the aggregate.
func (s Status) Claimable() bool {
	switch s {
	case Confirmed, AcceptedByChef, Preparing, Prepared:
		return true
	default:
		return false
	}
}

// AwaitingCourier reports whether an unassigned order in this status is
// eligible for escalation: the kitchen is working (or done) and no courier
// has responded yet.
func (s Status) AwaitingCourier() bool {
	switch s {
	case AcceptedByChef, Preparing, Prepared:
		return true
	default:
		return false
	}
}

// ClaimableStatuses lists every status in which an unassigned order may be
// claimed. Repositories use it to build the conditional claim predicate.
func ClaimableStatuses() []Status {
	return []Status{Confirmed, AcceptedByChef, Preparing, Prepared}
}

// AwaitingCourierStatuses lists every status eligible for escalation when no
// courier is bound.
func AwaitingCourierStatuses() []Status {
	return []Status{AcceptedByChef, Preparing, Prepared}
}

// TerminalStatuses lists the retired states.
func TerminalStatuses() []Status {
	return []Status{Completed, Cancelled, Rescheduled}
}

// CourierBound reports whether the status describes work a courier is
// actively performing. Entering one of these states requires an assigned
// courier.
func (s Status) CourierBound() bool {
	switch s {
	case AcceptedByDelivery, OutForDelivery, Delivered, Completed:
		return true
	default:
		return false
	}
}

// Terminal reports whether the order is logically retired: no further
// transitions are accepted.
func (s Status) Terminal() bool {
	switch s {
	case Completed, Cancelled, Rescheduled:
		return true
	default:
		return false
	}
}
