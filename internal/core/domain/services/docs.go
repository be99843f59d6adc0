// Package services provides domain services that implement business decisions
// spanning multiple domain concepts in the dispatch system.
//
// The package includes:
//   - AudienceResolver: computes, for every event the core raises, exactly
//     which roles and role-scoped connections must be notified
//
// Domain services here are pure functions over domain state; delivery
// mechanics (registries, transports) live in the adapters.
package services
