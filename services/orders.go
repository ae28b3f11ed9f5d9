package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-delivery-app/apperror"
	"food-delivery-app/logger"
	"food-delivery-app/models"
	"food-delivery-app/realtime"
	"food-delivery-app/statemachine"
	"food-delivery-app/store"

	"gorm.io/gorm"
)

// DeliveryFee is charged once per order.
const DeliveryFee = 2.5

// Actor is the authenticated caller moving an order.
type Actor struct {
	UserID string
	Role   string
}

type OrderLine struct {
	MenuItemID string
	Quantity   int
}

type PlaceOrderInput struct {
	RestaurantID    string
	DeliveryAddress string
	Notes           string
	Items           []OrderLine
}

type OrderService struct {
	db            *gorm.DB
	orders        OrderRepository
	locations     LocationRepository
	notifications *NotificationService
	pub           realtime.Publisher
}

func NewOrderService(db *gorm.DB, orders OrderRepository, locations LocationRepository, notifications *NotificationService, pub realtime.Publisher) *OrderService {
	return &OrderService{db: db, orders: orders, locations: locations, notifications: notifications, pub: pub}
}

// Place validates the basket against an open restaurant, snapshots prices and
// stores the order in pending state.
func (s *OrderService) Place(ctx context.Context, customerID string, in PlaceOrderInput) (*models.Order, error) {
	if in.RestaurantID == "" || strings.TrimSpace(in.DeliveryAddress) == "" || len(in.Items) == 0 {
		return nil, apperror.Validation("Restaurant, delivery address and at least one item are required")
	}

	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).Where("id = ?", in.RestaurantID).First(&restaurant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Restaurant not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !restaurant.IsOpen {
		return nil, apperror.Validation("Restaurant is currently closed")
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		if line.Quantity < 1 {
			return nil, apperror.Validation("Quantity must be at least 1")
		}
		var menuItem models.MenuItem
		err := s.db.WithContext(ctx).Where("id = ?", line.MenuItemID).First(&menuItem).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Validation("Menu item not found: " + line.MenuItemID)
		}
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if menuItem.RestaurantID != restaurant.ID {
			return nil, apperror.Validation("Menu item does not belong to this restaurant")
		}
		if !menuItem.IsAvailable {
			return nil, apperror.Validation("Menu item '" + menuItem.Name + "' is not available")
		}
		subtotal += menuItem.Price * float64(line.Quantity)
		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   line.Quantity,
			Price:      menuItem.Price,
			Name:       menuItem.Name,
		})
	}

	order := &models.Order{
		CustomerID:      customerID,
		RestaurantID:    restaurant.ID,
		Status:          models.StatusPending,
		Subtotal:        subtotal,
		DeliveryFee:     DeliveryFee,
		Total:           subtotal + DeliveryFee,
		DeliveryAddress: in.DeliveryAddress,
		Notes:           in.Notes,
		// base 30 min + 5 per line
		EstimatedTime: 30 + 5*len(items),
		Items:         items,
	}
	if err := s.orders.Create(ctx, order, customerID); err != nil {
		return nil, apperror.Internal(err)
	}
	logger.Action("orders", "place").
		WithField("orderNumber", order.OrderNumber).
		WithField("restaurantId", restaurant.ID).
		Info("order placed")

	s.notify(ctx, restaurant.OwnerID, models.NewOrderPayload{
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
		ItemCount:   len(items),
	})
	realtime.BestEffort(ctx, s.pub, realtime.Event{
		Channel: realtime.RestaurantChannel(restaurant.ID),
		Payload: realtime.OrderCreated{OrderNumber: order.OrderNumber, Total: order.Total},
	})
	return order, nil
}

// Get returns the order if actor may see it.
func (s *OrderService) Get(ctx context.Context, number string, actor Actor) (*models.Order, error) {
	order, err := s.load(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, order, actor, ""); err != nil {
		return nil, err
	}
	return order, nil
}

// Transition moves an order on behalf of a customer, restaurant or driver.
func (s *OrderService) Transition(ctx context.Context, number string, to models.OrderStatus, actor Actor, note string) (*models.Order, error) {
	order, err := s.load(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, order, actor, to); err != nil {
		return nil, err
	}
	if err := statemachine.CanTransition(order.Status, to, actor.Role); err != nil {
		return nil, apperror.InvalidTransition(err)
	}

	change := store.StatusChange{To: to, ChangedBy: actor.UserID, Note: note}
	if to == models.StatusPickedUp {
		change.DriverID = &actor.UserID
	}
	if err := s.apply(ctx, order, change); err != nil {
		return nil, err
	}
	return order, nil
}

// Force is the admin override. It may cancel or advance any live order but
// never moves one backwards.
func (s *OrderService) Force(ctx context.Context, number string, to models.OrderStatus, adminID, reason string) (*models.Order, error) {
	order, err := s.load(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanForce(order.Status, to); err != nil {
		return nil, apperror.InvalidTransition(err)
	}
	change := store.StatusChange{To: to, ChangedBy: adminID, Note: "[ADMIN OVERRIDE] " + reason}
	if err := s.apply(ctx, order, change); err != nil {
		return nil, err
	}
	logger.Action("orders", "force").
		WithField("orderNumber", order.OrderNumber).
		WithField("status", to).
		Warn("order status overridden by admin")
	return order, nil
}

func (s *OrderService) load(ctx context.Context, number string) (*models.Order, error) {
	order, err := s.orders.FindByNumber(ctx, number)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if order == nil {
		return nil, apperror.NotFound("Order not found")
	}
	return order, nil
}

func (s *OrderService) authorize(ctx context.Context, order *models.Order, actor Actor, to models.OrderStatus) error {
	switch actor.Role {
	case statemachine.ActorAdmin:
		return nil
	case statemachine.ActorCustomer:
		if order.CustomerID != actor.UserID {
			return apperror.Forbidden("This order does not belong to you")
		}
	case statemachine.ActorRestaurant:
		var owners []string
		err := s.db.WithContext(ctx).Model(&models.Restaurant{}).
			Where("id = ?", order.RestaurantID).
			Pluck("owner_id", &owners).Error
		if err != nil {
			return apperror.Internal(err)
		}
		if len(owners) == 0 || owners[0] != actor.UserID {
			return apperror.Forbidden("This order does not belong to your restaurant")
		}
	case statemachine.ActorDriver:
		if to == models.StatusPickedUp && !order.HasDriver() {
			return nil
		}
		if to == models.StatusPickedUp {
			return apperror.Conflict("Order has already been picked up by another driver")
		}
		if !order.HasDriver() || *order.DriverID != actor.UserID {
			return apperror.Forbidden("You are not the assigned driver for this order")
		}
	default:
		return apperror.Forbidden("Insufficient permissions")
	}
	return nil
}

// apply persists change and runs the follow-up effects: driver bookkeeping,
// customer notification and the status-updated event.
func (s *OrderService) apply(ctx context.Context, order *models.Order, change store.StatusChange) error {
	from := order.Status
	if err := s.orders.UpdateStatus(ctx, order, change); err != nil {
		if errors.Is(err, store.ErrStaleOrder) {
			return apperror.Conflict("Order was updated by someone else, reload and retry")
		}
		return apperror.Internal(err)
	}

	if order.HasDriver() {
		driverID := *order.DriverID
		var err error
		switch change.To {
		case models.StatusPickedUp:
			_, err = s.locations.SetCurrentOrder(ctx, driverID, &order.ID)
		case models.StatusDelivered, models.StatusCancelled:
			_, err = s.locations.SetCurrentOrder(ctx, driverID, nil)
		}
		if err != nil {
			logger.Failure("orders", "driver-current-order", err).
				WithField("driverId", driverID).
				Warn("driver location not updated")
		}
	}

	s.notify(ctx, order.CustomerID, models.OrderStatusPayload{
		OrderNumber:    order.OrderNumber,
		Status:         order.Status,
		PreviousStatus: from,
	})
	if change.To == models.StatusPickedUp && order.HasDriver() {
		s.notify(ctx, order.CustomerID, models.DriverAssignedPayload{
			OrderNumber: order.OrderNumber,
			DriverID:    *order.DriverID,
			DriverName:  s.userName(ctx, *order.DriverID),
		})
	}

	ev := realtime.StatusUpdated{OrderNumber: order.OrderNumber, Status: order.Status, PreviousStatus: from}
	realtime.BestEffort(ctx, s.pub, realtime.Event{Channel: realtime.OrderChannel(order.OrderNumber), Payload: ev})
	realtime.BestEffort(ctx, s.pub, realtime.Event{Channel: realtime.RestaurantChannel(order.RestaurantID), Payload: ev})
	return nil
}

func (s *OrderService) notify(ctx context.Context, userID string, p models.NotificationPayload) {
	if s.notifications == nil || userID == "" {
		return
	}
	if _, err := s.notifications.Notify(ctx, userID, p); err != nil {
		logger.Failure("orders", "notify", err).
			WithField("userId", userID).
			WithField("type", p.Kind()).
			Warn("notification not stored")
	}
}

func (s *OrderService) userName(ctx context.Context, id string) string {
	var names []string
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Pluck("name", &names).Error; err != nil {
		logger.Failure("orders", "user-name", fmt.Errorf("lookup %s: %w", id, err)).Warn("driver name unavailable")
	}
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
