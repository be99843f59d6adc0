package realtime

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/session"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// EscalationObserver watches committed order changes and decides whether an
// unassigned-order timer must be armed or cancelled.
type EscalationObserver interface {
	Observe(o *order.Order)
}

// Router implements ports.OrderNotifier and ports.EntityNotifier on top of
// the connection registry. For every event it asks the audience resolver who
// must hear, dedupes role and key overlap, and delivers fire-and-forget.
//
// The router is also where the escalation manager learns about committed
// order changes: every order broadcast passes through Observe, which arms a
// timer for freshly unassigned work and cancels it once a courier responds.
type Router struct {
	registry   ports.ConnectionRegistry
	resolver   services.AudienceResolver
	escalation EscalationObserver
	log        *slog.Logger
}

// NewRouter creates a router delivering through the given registry.
func NewRouter(registry ports.ConnectionRegistry, resolver services.AudienceResolver, log *slog.Logger) *Router {
	return &Router{
		registry: registry,
		resolver: resolver,
		log:      log.With("component", "realtime_router"),
	}
}

// BindEscalation attaches the escalation manager. Set once during
// composition, before any traffic flows; nil means no escalation.
func (r *Router) BindEscalation(observer EscalationObserver) {
	r.escalation = observer
}

// NotifyNewOrder announces a freshly placed order to admins and the owning
// kitchen.
func (r *Router) NotifyNewOrder(_ context.Context, o *order.Order) {
	r.deliver(r.resolver.NewOrder(o), session.NewEnvelope(session.EventNewOrder, orderSnapshotOf(o), ""))
	r.observe(o)
}

// NotifyOrderUpdate announces a status or assignment change to the order's
// audience.
func (r *Router) NotifyOrderUpdate(_ context.Context, o *order.Order, message string) {
	r.deliver(r.resolver.OrderUpdate(o), session.NewEnvelope(session.EventOrderUpdate, orderSnapshotOf(o), message))
	r.observe(o)
}

// NotifyPreparedOrder announces unclaimed ready food to every connected
// courier.
func (r *Router) NotifyPreparedOrder(_ context.Context, o *order.Order) {
	r.deliver(r.resolver.PreparedOrder(o), session.NewEnvelope(session.EventNewPreparedOrder, orderSnapshotOf(o), ""))
	r.observe(o)
}

// NotifyManualAssignmentRequired escalates a stalled order to all admins.
// Deliberately not observed: the escalation manager raised it.
func (r *Router) NotifyManualAssignmentRequired(_ context.Context, o *order.Order) {
	r.deliver(
		r.resolver.ManualAssignmentRequired(o),
		session.NewEnvelope(session.EventManualAssignmentRequired, orderSnapshotOf(o), "no courier responded in time"),
	)
}

// NotifySubscriptionUpdate announces a recurring delivery pushed to a future
// date.
func (r *Router) NotifySubscriptionUpdate(_ context.Context, o *order.Order, message string) {
	r.deliver(r.resolver.OrderUpdate(o), session.NewEnvelope(session.EventSubscriptionUpdate, orderSnapshotOf(o), message))
	r.observe(o)
}

// NotifyChefStatus announces a kitchen going online or offline.
func (r *Router) NotifyChefStatus(_ context.Context, chefID string, snapshot any) {
	r.deliver(r.resolver.EntityStatus(chefID), session.NewEnvelope(session.EventChefStatusUpdate, snapshot, ""))
}

// NotifyProductAvailability announces a product toggling availability.
func (r *Router) NotifyProductAvailability(_ context.Context, chefID string, snapshot any) {
	r.deliver(r.resolver.EntityStatus(chefID), session.NewEnvelope(session.EventProductAvailability, snapshot, ""))
}

// NotifyWalletUpdate announces a balance change to the one user it concerns.
func (r *Router) NotifyWalletUpdate(_ context.Context, userID string, snapshot any) {
	r.deliver(r.resolver.WalletUpdate(userID), session.NewEnvelope(session.EventWalletUpdated, snapshot, ""))
}

func (r *Router) observe(o *order.Order) {
	if r.escalation != nil {
		r.escalation.Observe(o)
	}
}

// deliver fans the envelope out to every connection the audience names,
// exactly once per identity even when a key also matches a broadcast role.
func (r *Router) deliver(audience services.Audience, envelope session.Envelope) {
	targets := make(map[session.Key]ports.Connection)

	for _, role := range audience.Roles {
		for _, conn := range r.registry.FindByRole(role) {
			targets[conn.Key()] = conn
		}
	}
	for _, key := range audience.Keys {
		if conn, ok := r.registry.FindByRoleAndScope(key.Role, key.Scope); ok {
			targets[key] = conn
		}
	}

	for _, conn := range targets {
		conn.Send(envelope)
	}

	r.log.Debug("event delivered",
		"type", string(envelope.Type),
		"targets", len(targets),
	)
}

// orderSnapshot is the wire form of an order inside event envelopes.
type orderSnapshot struct {
	ID            string  `json:"id"`
	ChefID        string  `json:"chef_id"`
	CustomerID    string  `json:"customer_id"`
	CourierID     *string `json:"courier_id,omitempty"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	CancelReason  string  `json:"cancel_reason,omitempty"`
}

func orderSnapshotOf(o *order.Order) orderSnapshot {
	var courierID *string
	if id := o.Courier(); id != nil {
		s := id.String()
		courierID = &s
	}

	return orderSnapshot{
		ID:            o.ID().String(),
		ChefID:        o.ChefID().String(),
		CustomerID:    o.CustomerID().String(),
		CourierID:     courierID,
		Status:        o.Status().String(),
		PaymentStatus: string(o.PaymentStatus()),
		CancelReason:  o.CancelReason(),
	}
}
