package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents all possible states of a food delivery order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusOnTheWay  OrderStatus = "on_the_way"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// StatusSequence is the forward order of the lifecycle. Cancelled sits outside it.
var StatusSequence = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusPickedUp,
	StatusOnTheWay,
	StatusDelivered,
}

// Rank is the position of s in StatusSequence, or -1 for cancelled and unknown values.
func (s OrderStatus) Rank() int {
	for i, st := range StatusSequence {
		if st == s {
			return i
		}
	}
	return -1
}

func (s OrderStatus) Valid() bool {
	return s == StatusCancelled || s.Rank() >= 0
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type Order struct {
	Base
	OrderNumber     string               `json:"orderNumber" gorm:"uniqueIndex;not null"`
	CustomerID      string               `json:"customerId" gorm:"index;not null"`
	Customer        *User                `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID    string               `json:"restaurantId" gorm:"index;not null"`
	Restaurant      *Restaurant          `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	DriverID        *string              `json:"driverId" gorm:"index"`
	Driver          *User                `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Status          OrderStatus          `json:"status" gorm:"not null;default:'pending'"`
	Subtotal        float64              `json:"subtotal"`
	DeliveryFee     float64              `json:"deliveryFee"`
	Total           float64              `json:"total"`
	DeliveryAddress string               `json:"deliveryAddress" gorm:"not null"`
	Notes           string               `json:"notes"`
	EstimatedTime   int                  `json:"estimatedTime"` // minutes
	Items           []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory   []OrderStatusHistory `json:"statusHistory,omitempty" gorm:"foreignKey:OrderID"`
	DeliveredAt     *time.Time           `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time           `json:"cancelledAt,omitempty"`
}

// HasDriver reports whether a driver is assigned.
func (o *Order) HasDriver() bool {
	return o.DriverID != nil && *o.DriverID != ""
}

type OrderItem struct {
	Base
	OrderID    string  `json:"orderId" gorm:"index;not null"`
	MenuItemID string  `json:"menuItemId" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	Name       string  `json:"name"`                  // snapshot name
}

// OrderStatusHistory is the audit trail of every status change.
type OrderStatusHistory struct {
	Base
	OrderID    string      `json:"orderId" gorm:"index;not null"`
	FromStatus OrderStatus `json:"fromStatus"`
	ToStatus   OrderStatus `json:"toStatus" gorm:"not null"`
	ChangedBy  string      `json:"changedBy"`
	Note       string      `json:"note"`
}

// NewOrderNumber builds a human-readable number like ORD-20261018-3F9A1C.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), suffix)
}
