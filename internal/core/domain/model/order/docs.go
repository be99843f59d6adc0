// Package order provides domain entities and business logic for order
// lifecycle management in the dispatch system. It implements the Order
// aggregate root with validated state transitions and courier binding.
//
// The package includes:
//   - Order: the aggregate root managing identity, lifecycle, and assignment
//   - Status: a state machine encoding the authoritative transition table
//   - PaymentStatus: the orthogonal payment state reported by the gateway
//
// Key business rules:
//   - Transitions not present in the legality table are rejected with an
//     InvalidTransitionError and no side effect
//   - Claiming binds a courier without changing the lifecycle status
//   - Courier-bound statuses are unreachable without an assigned courier
//   - cancelled and rescheduled are terminal branches reachable from any
//     state before out_for_delivery
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
