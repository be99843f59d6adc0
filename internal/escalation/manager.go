// Package escalation watches unassigned orders and raises a manual-assignment
// alert to administrators when no courier claims the work within the
// configured window.
package escalation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderSource re-reads orders at fire time so a timer that went stale while
// queued never escalates work a courier already took.
type OrderSource interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetAwaitingCourier(ctx context.Context) ([]*order.Order, error)
}

// AdminNotifier raises the manual-assignment alert to administrators.
type AdminNotifier interface {
	NotifyManualAssignmentRequired(ctx context.Context, o *order.Order)
}

// Manager arms one timer per order that is awaiting a courier and fires a
// manual-assignment alert when the window elapses.
//
// Lifecycle of a stall episode:
//   - an order enters an awaiting status unassigned: a timer is armed
//   - a courier claims or an admin assigns before it fires: the timer is
//     cancelled and nothing happens
//   - the timer fires and the order is still unassigned: administrators are
//     alerted exactly once, and no further timer is armed until the order's
//     assignment state changes again
//
// Observe is the single entry point; it is driven by every committed order
// broadcast, so the manager never sees uncommitted state. At fire time the
// order is re-read from storage because the timer may have been queued behind
// a claim that already landed.
type Manager struct {
	source   OrderSource
	notifier AdminNotifier
	timeout  time.Duration
	log      *slog.Logger

	mu        sync.Mutex
	timers    map[kernel.UUID]*time.Timer
	escalated map[kernel.UUID]bool
	stopped   bool
}

// NewManager creates a manager that escalates after the given window.
func NewManager(source OrderSource, notifier AdminNotifier, timeout time.Duration, log *slog.Logger) *Manager {
	return &Manager{
		source:    source,
		notifier:  notifier,
		timeout:   timeout,
		log:       log.With("component", "escalation_manager"),
		timers:    make(map[kernel.UUID]*time.Timer),
		escalated: make(map[kernel.UUID]bool),
	}
}

// Observe reconciles the timer state with the order's committed state: arms a
// timer for unassigned awaiting work, cancels it once a courier responds or
// the order leaves the awaiting statuses.
func (m *Manager) Observe(o *order.Order) {
	id := o.ID()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return
	}

	if !o.AwaitingCourier() {
		m.cancelLocked(id)
		delete(m.escalated, id)
		return
	}

	if m.escalated[id] {
		return
	}
	if _, armed := m.timers[id]; armed {
		return
	}

	m.timers[id] = time.AfterFunc(m.timeout, func() {
		m.fire(id)
	})
}

// Cancel drops any pending timer and escalation mark for the order.
func (m *Manager) Cancel(id kernel.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelLocked(id)
	delete(m.escalated, id)
}

// Sweep re-arms timers for every order currently awaiting a courier. Run on
// startup and periodically so timers lost to a restart still fire.
func (m *Manager) Sweep(ctx context.Context) error {
	orders, err := m.source.GetAwaitingCourier(ctx)
	if err != nil {
		return err
	}

	for _, o := range orders {
		m.Observe(o)
	}

	m.log.Info("escalation sweep completed", "awaiting", len(orders))
	return nil
}

// Stop cancels every pending timer. The manager accepts no new work after.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopped = true
	for id, timer := range m.timers {
		timer.Stop()
		delete(m.timers, id)
	}
}

func (m *Manager) cancelLocked(id kernel.UUID) {
	if timer, ok := m.timers[id]; ok {
		timer.Stop()
		delete(m.timers, id)
	}
}

// fire runs in the timer goroutine when the window elapses. The order is
// re-read so a claim that landed while the timer was queued wins quietly.
func (m *Manager) fire(id kernel.UUID) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	delete(m.timers, id)
	m.mu.Unlock()

	ctx := context.Background()
	subject, err := m.source.Get(ctx, id)
	if err != nil {
		m.log.Warn("escalation re-read failed", "order_id", id.String(), "error", err)
		return
	}

	if !subject.AwaitingCourier() {
		return
	}

	m.mu.Lock()
	if m.stopped || m.escalated[id] {
		m.mu.Unlock()
		return
	}
	m.escalated[id] = true
	m.mu.Unlock()

	m.log.Info("order escalated to manual assignment", "order_id", id.String())
	m.notifier.NotifyManualAssignmentRequired(ctx, subject)
}
