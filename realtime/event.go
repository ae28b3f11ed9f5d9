// Package realtime pushes order and driver updates to subscribers.
package realtime

import (
	"strings"

	"food-delivery-app/models"
)

const channelPrefix = "private-"

// Channel kinds.
const (
	KindOrder      = "order"
	KindDriver     = "driver"
	KindRestaurant = "restaurant"
	KindUser       = "user"
)

func OrderChannel(orderNumber string) string { return channelPrefix + KindOrder + "-" + orderNumber }
func DriverChannel(driverID string) string   { return channelPrefix + KindDriver + "-" + driverID }
func RestaurantChannel(id string) string     { return channelPrefix + KindRestaurant + "-" + id }
func UserChannel(userID string) string       { return channelPrefix + KindUser + "-" + userID }

// ParseChannel splits "private-order-ORD-1" into ("order", "ORD-1").
func ParseChannel(name string) (kind, id string, ok bool) {
	rest, found := strings.CutPrefix(name, channelPrefix)
	if !found {
		return "", "", false
	}
	kind, id, found = strings.Cut(rest, "-")
	if !found || id == "" {
		return "", "", false
	}
	switch kind {
	case KindOrder, KindDriver, KindRestaurant, KindUser:
		return kind, id, true
	}
	return "", "", false
}

// Payload is implemented by one struct per event.
type Payload interface {
	EventName() string
}

type StatusUpdated struct {
	OrderNumber    string             `json:"orderNumber"`
	Status         models.OrderStatus `json:"status"`
	PreviousStatus models.OrderStatus `json:"previousStatus"`
}

func (StatusUpdated) EventName() string { return "status-updated" }

type DriverLocationUpdated struct {
	DriverID    string   `json:"driverId"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Heading     *float64 `json:"heading"`
	Speed       *float64 `json:"speed"`
	OrderNumber string   `json:"orderNumber,omitempty"`
}

func (DriverLocationUpdated) EventName() string { return "driver-location" }

type AvailabilityUpdated struct {
	DriverID    string `json:"driverId"`
	IsAvailable bool   `json:"isAvailable"`
}

func (AvailabilityUpdated) EventName() string { return "availability-updated" }

type OrderCreated struct {
	OrderNumber string  `json:"orderNumber"`
	Total       float64 `json:"total"`
}

func (OrderCreated) EventName() string { return "order-created" }

type NotificationCreated struct {
	ID   string                  `json:"id"`
	Type models.NotificationType `json:"type"`
}

func (NotificationCreated) EventName() string { return "notification" }

// Event is one payload addressed to one channel.
type Event struct {
	Channel string
	Payload Payload
}

func (e Event) Name() string { return e.Payload.EventName() }

// Message is the wire shape used by the hub and the AMQP publisher.
type Message struct {
	Channel string  `json:"channel"`
	Event   string  `json:"event"`
	Data    Payload `json:"data"`
}

func (e Event) Message() Message {
	return Message{Channel: e.Channel, Event: e.Name(), Data: e.Payload}
}
