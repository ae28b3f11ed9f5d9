// Package services holds the order tracking, driver, order lifecycle,
// notification and analytics logic shared by the HTTP handlers.
package services

import (
	"context"

	"food-delivery-app/models"
	"food-delivery-app/store"
)

//go:generate mockgen -destination=mock_ports_test.go -package=services . OrderFinder,RestaurantFinder,LocationReader

type OrderFinder interface {
	// FindByNumber returns (nil, nil) when the order does not exist.
	FindByNumber(ctx context.Context, number string) (*models.Order, error)
}

type RestaurantFinder interface {
	FindSummary(ctx context.Context, id string) (*models.RestaurantSummary, error)
}

type LocationReader interface {
	FindByDriver(ctx context.Context, driverID string) (*models.DriverLocation, error)
}

// LocationRepository is implemented by store.LocationStore and mongostore.LocationStore.
type LocationRepository interface {
	LocationReader
	SetAvailability(ctx context.Context, driverID string, available bool) (*models.DriverLocation, error)
	UpdatePosition(ctx context.Context, driverID string, pos models.Position) (*models.DriverLocation, error)
	SetCurrentOrder(ctx context.Context, driverID string, orderID *string) (*models.DriverLocation, error)
	CountAvailable(ctx context.Context) (int64, error)
}

type OrderRepository interface {
	OrderFinder
	FindByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order, changedBy string) error
	UpdateStatus(ctx context.Context, order *models.Order, change store.StatusChange) error
}
