package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-delivery-app/models"

	"gorm.io/gorm"
)

type OrderStore struct {
	db        *gorm.DB
	newNumber func(time.Time) string
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db, newNumber: models.NewOrderNumber}
}

// FindByNumber returns (nil, nil) when no order carries number.
func (s *OrderStore) FindByNumber(ctx context.Context, number string) (*models.Order, error) {
	return s.first(ctx, "order_number = ?", number)
}

// FindByID returns (nil, nil) when the order does not exist.
func (s *OrderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *OrderStore) first(ctx context.Context, query string, arg any) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").Where(query, arg).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

// Create stores order with its items and the initial history row. When the
// number is generated here and collides with an existing order, a new one is
// drawn once before giving up.
func (s *OrderStore) Create(ctx context.Context, order *models.Order, changedBy string) error {
	generated := order.OrderNumber == ""
	if generated {
		order.OrderNumber = s.newNumber(time.Now())
	}
	if order.Status == "" {
		order.Status = models.StatusPending
	}
	err := s.create(ctx, order, changedBy)
	if generated && errors.Is(err, gorm.ErrDuplicatedKey) {
		order.OrderNumber = s.newNumber(time.Now())
		err = s.create(ctx, order, changedBy)
	}
	return err
}

func (s *OrderStore) create(ctx context.Context, order *models.Order, changedBy string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  order.Status,
			ChangedBy: changedBy,
			Note:      "Order placed by customer",
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("record order history: %w", err)
		}
		return nil
	})
}

// StatusChange describes one transition to persist.
type StatusChange struct {
	To        models.OrderStatus
	ChangedBy string
	Note      string
	DriverID  *string
}

// UpdateStatus applies change to order and appends the history row in one transaction.
// The status is only written if the stored status still equals order.Status.
func (s *OrderStore) UpdateStatus(ctx context.Context, order *models.Order, change StatusChange) error {
	from := order.Status
	updates := map[string]any{"status": change.To}
	now := time.Now()
	switch change.To {
	case models.StatusDelivered:
		updates["delivered_at"] = now
	case models.StatusCancelled:
		updates["cancelled_at"] = now
	}
	if change.DriverID != nil {
		updates["driver_id"] = *change.DriverID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, from).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("update order status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrStaleOrder
		}
		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   change.To,
			ChangedBy:  change.ChangedBy,
			Note:       change.Note,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("record order history: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	order.Status = change.To
	if change.DriverID != nil {
		order.DriverID = change.DriverID
	}
	switch change.To {
	case models.StatusDelivered:
		order.DeliveredAt = &now
	case models.StatusCancelled:
		order.CancelledAt = &now
	}
	return nil
}

// ErrStaleOrder means the order changed status between read and write.
var ErrStaleOrder = errors.New("order status changed concurrently")
