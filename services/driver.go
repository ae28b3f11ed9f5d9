package services

import (
	"context"
	"strings"

	"food-delivery-app/apperror"
	"food-delivery-app/logger"
	"food-delivery-app/models"
	"food-delivery-app/realtime"
)

type DriverService struct {
	locations LocationRepository
	orders    OrderRepository
	pub       realtime.Publisher
}

func NewDriverService(locations LocationRepository, orders OrderRepository, pub realtime.Publisher) *DriverService {
	return &DriverService{locations: locations, orders: orders, pub: pub}
}

// SetAvailability upserts only the availability flag of the driver's record.
// isAvailable is a pointer so that a missing field can be told apart from false.
func (s *DriverService) SetAvailability(ctx context.Context, driverID string, isAvailable *bool) (*models.DriverLocation, error) {
	if strings.TrimSpace(driverID) == "" || isAvailable == nil {
		return nil, apperror.Validation("Driver ID and availability status are required")
	}

	loc, err := s.locations.SetAvailability(ctx, driverID, *isAvailable)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	logger.Action("driver", "set-availability").
		WithField("driverId", driverID).
		WithField("isAvailable", loc.IsAvailable).
		Info("driver availability updated")

	realtime.BestEffort(ctx, s.pub, realtime.Event{
		Channel: realtime.DriverChannel(driverID),
		Payload: realtime.AvailabilityUpdated{DriverID: driverID, IsAvailable: loc.IsAvailable},
	})
	return loc, nil
}

// UpdateLocation stores a position ping and pushes it to the driver's channel
// and, while the driver is on a delivery, to that order's channel.
func (s *DriverService) UpdateLocation(ctx context.Context, driverID string, pos models.Position) (*models.DriverLocation, error) {
	if strings.TrimSpace(driverID) == "" {
		return nil, apperror.Validation("Driver ID is required")
	}
	if err := pos.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	loc, err := s.locations.UpdatePosition(ctx, driverID, pos)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	payload := realtime.DriverLocationUpdated{
		DriverID:  driverID,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Heading:   loc.Heading,
		Speed:     loc.Speed,
	}
	if loc.CurrentOrderID != nil {
		order, err := s.orders.FindByID(ctx, *loc.CurrentOrderID)
		if err != nil {
			logger.Failure("driver", "update-location", err).Warn("could not resolve current order")
		} else if order != nil {
			payload.OrderNumber = order.OrderNumber
			realtime.BestEffort(ctx, s.pub, realtime.Event{Channel: realtime.OrderChannel(order.OrderNumber), Payload: payload})
		}
	}
	realtime.BestEffort(ctx, s.pub, realtime.Event{Channel: realtime.DriverChannel(driverID), Payload: payload})
	return loc, nil
}

func (s *DriverService) Location(ctx context.Context, driverID string) (*models.DriverLocation, error) {
	loc, err := s.locations.FindByDriver(ctx, driverID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if loc == nil {
		return nil, apperror.NotFound("Driver location not found")
	}
	return loc, nil
}
