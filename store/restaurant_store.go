package store

import (
	"context"
	"errors"
	"fmt"

	"food-delivery-app/models"

	"gorm.io/gorm"
)

type RestaurantStore struct {
	db *gorm.DB
}

func NewRestaurantStore(db *gorm.DB) *RestaurantStore {
	return &RestaurantStore{db: db}
}

// FindSummary loads only the name and address of a restaurant; (nil, nil) when absent.
func (s *RestaurantStore) FindSummary(ctx context.Context, id string) (*models.RestaurantSummary, error) {
	var summary models.RestaurantSummary
	err := s.db.WithContext(ctx).Model(&models.Restaurant{}).
		Select("id", "name", "address").
		Where("id = ?", id).
		Take(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return &summary, nil
}

// FindByOwner returns (nil, nil) when owner has no restaurant yet.
func (s *RestaurantStore) FindByOwner(ctx context.Context, ownerID string) (*models.Restaurant, error) {
	var r models.Restaurant
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return &r, nil
}
