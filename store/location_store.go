package store

import (
	"context"
	"errors"
	"fmt"

	"food-delivery-app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LocationStore keeps one DriverLocation row per driver. Every write is an
// INSERT ... ON CONFLICT (driver_id) so concurrent first writes for the same
// driver cannot create two rows.
type LocationStore struct {
	db *gorm.DB
}

func NewLocationStore(db *gorm.DB) *LocationStore {
	return &LocationStore{db: db}
}

// FindByDriver returns (nil, nil) when the driver has no record.
func (s *LocationStore) FindByDriver(ctx context.Context, driverID string) (*models.DriverLocation, error) {
	var loc models.DriverLocation
	err := s.db.WithContext(ctx).Where("driver_id = ?", driverID).First(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find driver location: %w", err)
	}
	return &loc, nil
}

// SetAvailability touches only is_available on an existing record; a new record
// takes default coordinates.
func (s *LocationStore) SetAvailability(ctx context.Context, driverID string, available bool) (*models.DriverLocation, error) {
	loc := models.DriverLocation{DriverID: driverID, IsAvailable: available}
	return s.upsert(ctx, &loc, "is_available")
}

// UpdatePosition replaces coordinates, heading and speed, keeping availability.
func (s *LocationStore) UpdatePosition(ctx context.Context, driverID string, pos models.Position) (*models.DriverLocation, error) {
	loc := models.DriverLocation{
		DriverID:  driverID,
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Heading:   pos.Heading,
		Speed:     pos.Speed,
	}
	return s.upsert(ctx, &loc, "latitude", "longitude", "heading", "speed")
}

// SetCurrentOrder records (or clears, with nil) the order the driver is fulfilling.
func (s *LocationStore) SetCurrentOrder(ctx context.Context, driverID string, orderID *string) (*models.DriverLocation, error) {
	loc := models.DriverLocation{DriverID: driverID, CurrentOrderID: orderID}
	return s.upsert(ctx, &loc, "current_order_id")
}

// CountAvailable counts drivers currently flagged available.
func (s *LocationStore) CountAvailable(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.DriverLocation{}).Where("is_available = ?", true).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count available drivers: %w", err)
	}
	return n, nil
}

func (s *LocationStore) upsert(ctx context.Context, loc *models.DriverLocation, columns ...string) (*models.DriverLocation, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "driver_id"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "updated_at")),
	}).Create(loc).Error
	if err != nil {
		return nil, fmt.Errorf("upsert driver location: %w", err)
	}
	// On conflict the generated ID was discarded, so read back the stored row.
	stored, err := s.FindByDriver(ctx, loc.DriverID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("upsert driver location: record for %s vanished", loc.DriverID)
	}
	return stored, nil
}
