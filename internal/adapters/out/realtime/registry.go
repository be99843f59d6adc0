// Package realtime implements the live-notification side of dispatch: a
// registry of connections keyed by role-scoped identity, and a router that
// turns domain events into envelopes delivered to the audience each event
// type defines.
package realtime

import (
	"sync"

	"dispatch/internal/core/domain/model/session"
	"dispatch/internal/core/ports"
)

// InMemoryRegistry tracks live connections in two indexes: by full key for
// scoped delivery, and by role for role-wide broadcasts. The role index keeps
// broadcasts from scanning unrelated connections.
type InMemoryRegistry struct {
	mu     sync.RWMutex
	byKey  map[session.Key]ports.Connection
	byRole map[session.Role]map[session.Key]ports.Connection
}

// NewInMemoryRegistry creates an empty connection registry.
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		byKey:  make(map[session.Key]ports.Connection),
		byRole: make(map[session.Role]map[session.Key]ports.Connection),
	}
}

// Register inserts the connection. A prior connection with the same key is
// closed and replaced, so a reconnecting actor never receives duplicates
// through a half-dead previous socket.
func (r *InMemoryRegistry) Register(conn ports.Connection) {
	key := conn.Key()

	r.mu.Lock()
	prior, had := r.byKey[key]
	r.byKey[key] = conn

	roleIndex, ok := r.byRole[key.Role]
	if !ok {
		roleIndex = make(map[session.Key]ports.Connection)
		r.byRole[key.Role] = roleIndex
	}
	roleIndex[key] = conn
	r.mu.Unlock()

	if had {
		prior.Close()
	}
}

// Unregister removes the connection. When the stored connection for the key
// is a newer replacement this is a no-op, so a late disconnect of the old
// socket cannot evict its successor.
func (r *InMemoryRegistry) Unregister(conn ports.Connection) {
	key := conn.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byKey[key]
	if !ok || stored != conn {
		return
	}

	delete(r.byKey, key)
	if roleIndex, has := r.byRole[key.Role]; has {
		delete(roleIndex, key)
		if len(roleIndex) == 0 {
			delete(r.byRole, key.Role)
		}
	}
}

// FindByRole returns a snapshot of every live connection with the role.
func (r *InMemoryRegistry) FindByRole(role session.Role) []ports.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roleIndex := r.byRole[role]
	conns := make([]ports.Connection, 0, len(roleIndex))
	for _, conn := range roleIndex {
		conns = append(conns, conn)
	}
	return conns
}

// FindByRoleAndScope returns the single connection addressed by the
// role-scoped identity.
func (r *InMemoryRegistry) FindByRoleAndScope(role session.Role, scope string) (ports.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.byKey[session.Key{Role: role, Scope: scope}]
	return conn, ok
}
