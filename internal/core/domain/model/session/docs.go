// Package session provides the value objects of the real-time channel: actor
// roles, the role-scoped identities connections are addressed by, and the
// message envelope pushed to connections.
//
// The package includes:
//   - Role: the five actor roles (admin, chef, delivery, customer, browser)
//   - Key: a role-scoped identity, used as the connection registry key
//   - Envelope: the wire format of every broadcast message
//
// Key business rules:
//   - Every role except browser must authenticate during the handshake
//   - One live connection exists per role-scoped identity; reconnecting
//     replaces the previous connection rather than duplicating it
package session
