package realtime

import (
	"context"
	"errors"

	"food-delivery-app/logger"
)

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Fanout publishes to every member and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BestEffort publishes ev and only logs a failure; realtime delivery never fails a request.
func BestEffort(ctx context.Context, p Publisher, ev Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		logger.Failure("realtime", "publish", err).
			WithField("channel", ev.Channel).
			WithField("event", ev.Name()).
			Warn("event not delivered")
	}
}
