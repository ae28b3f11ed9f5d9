// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"food-delivery-app/config"
	"food-delivery-app/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewDB returns a migrated sqlite database in a per-test temp directory.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := config.Open(&config.Config{
		DBDriver:    "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Break closes the underlying connection pool so every later query fails.
func Break(t testing.TB, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t testing.TB, db *gorm.DB, name string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Name: name, Email: name + "@example.com", PasswordHash: string(hash), Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateRestaurant inserts an open restaurant with one available menu item.
func CreateRestaurant(t testing.TB, db *gorm.DB, owner *models.User) (*models.Restaurant, *models.MenuItem) {
	t.Helper()
	r := &models.Restaurant{OwnerID: owner.ID, Name: "Pasta Place", Address: "1 Main St", Cuisine: "italian", IsOpen: true}
	require.NoError(t, db.Create(r).Error)
	item := &models.MenuItem{RestaurantID: r.ID, Name: "Carbonara", Price: 12.5, IsAvailable: true}
	require.NoError(t, db.Create(item).Error)
	return r, item
}

// CreateOrder inserts an order in the given status.
func CreateOrder(t testing.TB, db *gorm.DB, customerID, restaurantID string, status models.OrderStatus, driverID *string) *models.Order {
	t.Helper()
	o := &models.Order{
		OrderNumber:     models.NewOrderNumber(time.Now()),
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		DriverID:        driverID,
		Status:          status,
		Subtotal:        25,
		Total:           25,
		DeliveryAddress: "42 Side St",
		Items: []models.OrderItem{
			{MenuItemID: "menu-1", Name: "Carbonara", Price: 12.5, Quantity: 2},
		},
	}
	require.NoError(t, db.Create(o).Error)
	return o
}
