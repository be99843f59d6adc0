// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// rows, and carries the conditional writes that make claim arbitration and
// stale-update protection work at the storage level.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and assignment are indexed because the claimable listing, the claim
// predicate, and the escalation sweep all filter on them.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ChefID        uuid.UUID  `gorm:"type:uuid;index"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index"`
	AssignedTo    *uuid.UUID `gorm:"type:uuid;index"`
	Status        string     `gorm:"type:varchar(32);index"`
	PaymentStatus string     `gorm:"type:varchar(16)"`
	CancelReason  string
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	ApprovedAt    *time.Time
	AssignedAt    *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var assignedTo *uuid.UUID
	if id := o.Courier(); id != nil {
		raw := id.Bytes()
		assignedTo = &raw
	}

	return OrderDTO{
		ID:            o.ID().Bytes(),
		ChefID:        o.ChefID().Bytes(),
		CustomerID:    o.CustomerID().Bytes(),
		AssignedTo:    assignedTo,
		Status:        o.Status().String(),
		PaymentStatus: string(o.PaymentStatus()),
		CancelReason:  o.CancelReason(),
		ApprovedAt:    o.ApprovedAt(),
		AssignedAt:    o.AssignedAt(),
		PickedUpAt:    o.PickedUpAt(),
		DeliveredAt:   o.DeliveredAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including assignment using RestoreOrder,
// so corrupt rows are rejected rather than materialized.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	chefID, err := kernel.UUIDFromBytes(dto.ChefID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.AssignedTo != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.AssignedTo)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	return order.RestoreOrder(
		id, chefID, customerID,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		courierID,
		dto.CancelReason,
		dto.ApprovedAt, dto.AssignedAt, dto.PickedUpAt, dto.DeliveredAt,
	)
}
