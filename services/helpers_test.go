package services

import (
	"context"
	"sync"
	"testing"

	"food-delivery-app/realtime"
	"food-delivery-app/store"
	"food-delivery-app/testutil"

	"gorm.io/gorm"
)

// recorder is a realtime.Publisher that keeps every event.
type recorder struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (r *recorder) Publish(_ context.Context, ev realtime.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) on(channel string) []realtime.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []realtime.Event
	for _, ev := range r.events {
		if ev.Channel == channel {
			out = append(out, ev)
		}
	}
	return out
}

type fixture struct {
	db            *gorm.DB
	pub           *recorder
	orders        *store.OrderStore
	locations     *store.LocationStore
	notifications *NotificationService
	orderSvc      *OrderService
	driverSvc     *DriverService
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	f := &fixture{
		db:        db,
		pub:       &recorder{},
		orders:    store.NewOrderStore(db),
		locations: store.NewLocationStore(db),
	}
	f.notifications = NewNotificationService(db, f.pub)
	f.orderSvc = NewOrderService(db, f.orders, f.locations, f.notifications, f.pub)
	f.driverSvc = NewDriverService(f.locations, f.orders, f.pub)
	return f
}

func boolPtr(b bool) *bool { return &b }
