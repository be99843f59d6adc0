package ports

import (
	"dispatch/internal/core/domain/model/session"
)

// Connection is one live real-time attachment of an actor. Ownership is
// exclusive to the registry; nothing else iterates connections.
type Connection interface {
	// Key returns the role-scoped identity this connection is addressed by.
	Key() session.Key

	// Send delivers one envelope, fire-and-forget. A slow or dead peer must
	// not block the caller; implementations buffer and drop instead.
	Send(envelope session.Envelope)

	// Close releases the underlying transport. Safe to call more than once.
	Close()
}

// ConnectionRegistry tracks every live connection keyed by role-scoped
// identity. It is pure bookkeeping: no transition logic, no audience rules.
//
// Registering a connection whose key is already present replaces the previous
// connection (reconnect semantics, last writer wins) so a broadcast never
// delivers twice to the same identity. All methods are safe for concurrent
// use from independent actors.
type ConnectionRegistry interface {
	// Register inserts the connection, replacing and closing any prior
	// connection with the same key.
	Register(conn Connection)

	// Unregister removes the connection on disconnect or transport error.
	// Idempotent; a no-op when the stored connection for the key is a newer
	// replacement.
	Unregister(conn Connection)

	// FindByRole returns a snapshot of every live connection with the role.
	FindByRole(role session.Role) []Connection

	// FindByRoleAndScope returns the single connection addressed by the
	// role-scoped identity, or false when it is not connected.
	FindByRoleAndScope(role session.Role, scope string) (Connection, bool)
}
