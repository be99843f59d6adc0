package orderrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. The write is conditional on the status the
// aggregate was loaded with, so a copy that went stale between read and write
// touches zero rows and the caller sees order.ErrInvalidTransition instead of
// silently overwriting newer state.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, aggregate.PersistedStatus().String()).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return order.NewInvalidTransitionError(aggregate.PersistedStatus(), aggregate.Status())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Claim atomically binds the courier to the order. The predicate requires the
// row to be unassigned and in a claimable status at the moment of the write,
// which is what makes concurrent claims settle to exactly one winner: the
// database serializes the updates and every loser matches zero rows.
func (r *GormOrderRepository) Claim(ctx context.Context, orderID, courierID kernel.UUID) (bool, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return false, err
	}

	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND assigned_to IS NULL AND status IN ?", orderID.Bytes(), statusNames(order.ClaimableStatuses())).
		Updates(map[string]any{
			"assigned_to": courierID.Bytes(),
			"assigned_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// Assign binds the courier unconditionally. This is the administrator
// override: it rebinds even when another courier already holds the order.
func (r *GormOrderRepository) Assign(ctx context.Context, orderID, courierID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return err
	}

	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", orderID.Bytes()).
		Updates(map[string]any{
			"assigned_to": courierID.Bytes(),
			"assigned_at": now,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", orderID.String())
	}

	return nil
}

// GetAwaitingCourier retrieves every unassigned order in a status eligible
// for escalation. Used on startup to re-arm timers lost to a restart.
func (r *GormOrderRepository) GetAwaitingCourier(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("assigned_to IS NULL AND status IN ?", statusNames(order.AwaitingCourierStatuses())).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func statusNames(statuses []order.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
