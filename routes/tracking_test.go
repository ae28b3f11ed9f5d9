package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"food-delivery-app/models"
	"food-delivery-app/store"
	"food-delivery-app/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackingData struct {
	Order          *models.Order             `json:"order"`
	Restaurant     *models.RestaurantSummary `json:"restaurant"`
	DriverLocation *models.DriverLocation    `json:"driverLocation"`
}

func TestTrackOrder(t *testing.T) {
	h := newHarness(t)
	customer := testutil.CreateUser(t, h.db, "carol", models.RoleCustomer)
	owner := testutil.CreateUser(t, h.db, "oscar", models.RoleRestaurant)
	driver := testutil.CreateUser(t, h.db, "dave", models.RoleDriver)
	restaurant, _ := testutil.CreateRestaurant(t, h.db, owner)

	unassigned := testutil.CreateOrder(t, h.db, customer.ID, restaurant.ID, models.StatusPreparing, nil)
	noPing := testutil.CreateOrder(t, h.db, customer.ID, restaurant.ID, models.StatusPickedUp, &driver.ID)

	t.Run("order without driver", func(t *testing.T) {
		w := h.do(request{method: http.MethodGet, path: "/api/orders/track/" + unassigned.OrderNumber})
		require.Equal(t, http.StatusOK, w.Code)
		env := decode(t, w)
		assert.True(t, env.Success)

		var data trackingData
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.NotNil(t, data.Order)
		assert.Equal(t, unassigned.OrderNumber, data.Order.OrderNumber)
		require.NotNil(t, data.Restaurant)
		assert.Equal(t, "Pasta Place", data.Restaurant.Name)
		assert.Equal(t, "1 Main St", data.Restaurant.Address)
		assert.Nil(t, data.DriverLocation)
		assert.Contains(t, string(env.Data), `"driverLocation":null`)
	})

	t.Run("driver without location record", func(t *testing.T) {
		w := h.do(request{method: http.MethodGet, path: "/api/orders/track/" + noPing.OrderNumber})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"driverLocation":null`)
	})

	t.Run("driver with location", func(t *testing.T) {
		_, err := store.NewLocationStore(h.db).UpdatePosition(context.Background(), driver.ID, models.Position{Latitude: 12.97, Longitude: 77.59})
		require.NoError(t, err)

		w := h.do(request{method: http.MethodGet, path: "/api/orders/track/" + noPing.OrderNumber})
		require.Equal(t, http.StatusOK, w.Code)
		var data trackingData
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
		require.NotNil(t, data.DriverLocation)
		assert.InDelta(t, 12.97, data.DriverLocation.Latitude, 1e-9)
	})

	t.Run("unknown order", func(t *testing.T) {
		w := h.do(request{method: http.MethodGet, path: "/api/orders/track/ORD-00000000-000000"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decode(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, "Order not found", env.Error)
	})
}

func TestTrackOrderRestaurantGone(t *testing.T) {
	h := newHarness(t)
	customer := testutil.CreateUser(t, h.db, "carol", models.RoleCustomer)
	order := testutil.CreateOrder(t, h.db, customer.ID, "deleted-restaurant", models.StatusPending, nil)

	w := h.do(request{method: http.MethodGet, path: "/api/orders/track/" + order.OrderNumber})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"restaurant":null`)
}

func TestTrackOrderStoreFault(t *testing.T) {
	h := newHarness(t)
	testutil.Break(t, h.db)

	w := h.do(request{method: http.MethodGet, path: "/api/orders/track/ORD-1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}
