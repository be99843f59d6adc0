package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetClaimableOrdersQueryIsNotConstructed = errors.New(
	"GetClaimableOrdersQuery must be created via NewGetClaimableOrdersQuery constructor",
)

// GetClaimableOrdersQuery retrieves every order a courier may claim right
// now: claimable lifecycle status and no courier bound. Couriers poll this
// list and race to claim; losing the race is expected and the client simply
// refreshes.
//
// Example:
//
//	query := NewGetClaimableOrdersQuery()
//	handler := NewGetClaimableOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get claimable orders: %w", err)
//	}
type GetClaimableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetClaimableOrdersQuery creates a query for the claimable order list.
func NewGetClaimableOrdersQuery() GetClaimableOrdersQuery {
	return GetClaimableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetClaimableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetClaimableOrdersQueryIsNotConstructed)
}

// GetClaimableOrdersQueryResponse is one row of the claimable order list.
type GetClaimableOrdersQueryResponse struct {
	ID        kernel.UUID
	ChefID    kernel.UUID
	Status    order.Status
	CreatedAt time.Time
}
