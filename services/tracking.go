package services

import (
	"context"
	"strings"

	"food-delivery-app/apperror"
	"food-delivery-app/models"
)

// TrackingResult is the customer-facing view of one order. Restaurant and
// DriverLocation are nil when the referenced record is missing.
type TrackingResult struct {
	Order          *models.Order             `json:"order"`
	Restaurant     *models.RestaurantSummary `json:"restaurant"`
	DriverLocation *models.DriverLocation    `json:"driverLocation"`
}

type TrackingService struct {
	orders      OrderFinder
	restaurants RestaurantFinder
	locations   LocationReader
}

func NewTrackingService(orders OrderFinder, restaurants RestaurantFinder, locations LocationReader) *TrackingService {
	return &TrackingService{orders: orders, restaurants: restaurants, locations: locations}
}

// Track joins the order, its restaurant and the assigned driver's location.
func (s *TrackingService) Track(ctx context.Context, orderNumber string) (*TrackingResult, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, apperror.Validation("Order number is required")
	}

	order, err := s.orders.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if order == nil {
		return nil, apperror.NotFound("Order not found")
	}

	result := &TrackingResult{Order: order}

	result.Restaurant, err = s.restaurants.FindSummary(ctx, order.RestaurantID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if order.HasDriver() {
		result.DriverLocation, err = s.locations.FindByDriver(ctx, *order.DriverID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
	}
	return result, nil
}
