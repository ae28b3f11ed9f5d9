package main

import (
	"errors"

	"food-delivery-app/logger"
	"food-delivery-app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const demoPassword = "password123"

// seedDemo inserts one user per role plus a restaurant with a small menu.
// It does nothing when the demo admin already exists.
func seedDemo(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.User{}).Where("email = ?", "admin@demo.local").Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		logger.Info.Info("Demo data already present")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users := map[models.UserRole]*models.User{}
		for _, role := range []models.UserRole{models.RoleCustomer, models.RoleRestaurant, models.RoleDriver, models.RoleAdmin} {
			u := &models.User{
				Name:         "Demo " + string(role),
				Email:        string(role) + "@demo.local",
				PasswordHash: string(hash),
				Role:         role,
			}
			if err := tx.Create(u).Error; err != nil {
				return err
			}
			users[role] = u
		}

		owner := users[models.RoleRestaurant]
		if owner == nil {
			return errors.New("restaurant owner missing")
		}
		restaurant := &models.Restaurant{
			OwnerID:     owner.ID,
			Name:        "Spice Route",
			Cuisine:     "indian",
			Address:     "12 Market Road",
			Description: "Curries and breads",
			IsOpen:      true,
		}
		if err := tx.Create(restaurant).Error; err != nil {
			return err
		}
		menu := []models.MenuItem{
			{RestaurantID: restaurant.ID, Name: "Paneer Tikka", Price: 8.5, Category: "starters", IsVeg: true, IsAvailable: true},
			{RestaurantID: restaurant.ID, Name: "Butter Chicken", Price: 12, Category: "mains", IsAvailable: true},
			{RestaurantID: restaurant.ID, Name: "Garlic Naan", Price: 2.5, Category: "breads", IsVeg: true, IsAvailable: true},
		}
		if err := tx.Create(&menu).Error; err != nil {
			return err
		}
		logger.Info.Infof("Seeded demo users (password %q) and restaurant %s", demoPassword, restaurant.Name)
		return nil
	})
}
