package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetClaimableOrdersQueryHandler reads the claimable order list straight from
// the database. This is the read side of claim arbitration: the list is a
// snapshot and may be stale the moment it is returned, which is why the claim
// itself is a conditional write and not a check against this list.
type GetClaimableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetClaimableOrdersQueryHandler creates a handler for claimable order queries.
func NewGetClaimableOrdersQueryHandler(db *gorm.DB) GetClaimableOrdersQueryHandler {
	return GetClaimableOrdersQueryHandler{db: db}
}

// Handle returns unassigned orders in claimable statuses, oldest first.
func (h GetClaimableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetClaimableOrdersQuery,
) ([]GetClaimableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	claimable := make([]string, 0)
	for _, s := range order.ClaimableStatuses() {
		claimable = append(claimable, s.String())
	}

	orders := make([]GetClaimableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			chef_id,
			status,
			created_at
		FROM orders
		WHERE assigned_to IS NULL AND status IN ?
		ORDER BY created_at
	`, claimable).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetClaimableOrdersQueryResponse
		var id, chefID uuid.UUID
		var status string

		err = rows.Scan(
			&id,
			&chefID,
			&status,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		kitchenID, idErr := kernel.UUIDFromBytes(chefID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ChefID = kitchenID

		resp.Status = order.Status(status)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
