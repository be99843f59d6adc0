package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves non-terminal orders from the database
// for the administrator workload view.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle returns every order outside the terminal states, oldest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	terminal := make([]string, 0)
	for _, s := range order.TerminalStatuses() {
		terminal = append(terminal, s.String())
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			chef_id,
			customer_id,
			assigned_to,
			status,
			created_at
		FROM orders
		WHERE status NOT IN ?
		ORDER BY created_at
	`, terminal).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id, chefID, customerID uuid.UUID
		var assignedTo *uuid.UUID
		var status string

		err = rows.Scan(
			&id,
			&chefID,
			&customerID,
			&assignedTo,
			&status,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		resp.ChefID, err = kernel.UUIDFromBytes(chefID[:])
		if err != nil {
			return nil, err
		}

		resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:])
		if err != nil {
			return nil, err
		}

		if assignedTo != nil {
			courierID, idErr := kernel.UUIDFromBytes((*assignedTo)[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.CourierID = &courierID
		}

		resp.Status = order.Status(status)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
