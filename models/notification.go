package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationOrderStatus    NotificationType = "order_status"
	NotificationDriverAssigned NotificationType = "driver_assigned"
	NotificationNewOrder       NotificationType = "new_order"
	NotificationPromotion      NotificationType = "promotion"
)

// NotificationPayload is implemented by one struct per notification type.
type NotificationPayload interface {
	Kind() NotificationType
	Validate() error
}

type OrderStatusPayload struct {
	OrderNumber    string      `json:"orderNumber"`
	Status         OrderStatus `json:"status"`
	PreviousStatus OrderStatus `json:"previousStatus"`
}

func (OrderStatusPayload) Kind() NotificationType { return NotificationOrderStatus }

func (p OrderStatusPayload) Validate() error {
	if p.OrderNumber == "" {
		return errors.New("orderNumber is required")
	}
	if !p.Status.Valid() {
		return fmt.Errorf("unknown status %q", p.Status)
	}
	return nil
}

type DriverAssignedPayload struct {
	OrderNumber string `json:"orderNumber"`
	DriverID    string `json:"driverId"`
	DriverName  string `json:"driverName"`
}

func (DriverAssignedPayload) Kind() NotificationType { return NotificationDriverAssigned }

func (p DriverAssignedPayload) Validate() error {
	if p.OrderNumber == "" || p.DriverID == "" {
		return errors.New("orderNumber and driverId are required")
	}
	return nil
}

type NewOrderPayload struct {
	OrderNumber string  `json:"orderNumber"`
	Total       float64 `json:"total"`
	ItemCount   int     `json:"itemCount"`
}

func (NewOrderPayload) Kind() NotificationType { return NotificationNewOrder }

func (p NewOrderPayload) Validate() error {
	if p.OrderNumber == "" {
		return errors.New("orderNumber is required")
	}
	if p.ItemCount < 1 {
		return errors.New("itemCount must be at least 1")
	}
	return nil
}

type PromotionPayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (PromotionPayload) Kind() NotificationType { return NotificationPromotion }

func (p PromotionPayload) Validate() error {
	if p.Title == "" || p.Message == "" {
		return errors.New("title and message are required")
	}
	return nil
}

type Notification struct {
	Base
	UserID  string           `json:"userId" gorm:"index;not null"`
	Type    NotificationType `json:"type" gorm:"not null"`
	Payload datatypes.JSON   `json:"payload"`
	IsRead  bool             `json:"isRead" gorm:"default:false"`
}

// NewNotification validates p and stores it under its own type tag.
func NewNotification(userID string, p NotificationPayload) (*Notification, error) {
	if userID == "" {
		return nil, errors.New("notification needs a recipient")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", p.Kind(), err)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return &Notification{UserID: userID, Type: p.Kind(), Payload: datatypes.JSON(raw)}, nil
}

// Decode returns the typed payload selected by n.Type.
func (n *Notification) Decode() (NotificationPayload, error) {
	var p NotificationPayload
	switch n.Type {
	case NotificationOrderStatus:
		p = &OrderStatusPayload{}
	case NotificationDriverAssigned:
		p = &DriverAssignedPayload{}
	case NotificationNewOrder:
		p = &NewOrderPayload{}
	case NotificationPromotion:
		p = &PromotionPayload{}
	default:
		return nil, fmt.Errorf("unknown notification type %q", n.Type)
	}
	if err := json.Unmarshal(n.Payload, p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", n.Type, err)
	}
	return p, nil
}
