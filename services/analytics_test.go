package services

import (
	"context"
	"testing"
	"time"

	"food-delivery-app/models"
	"food-delivery-app/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache is an in-memory cache.Cache that keeps values as-is.
type mapCache struct {
	values map[string]any
	sets   int
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	*(dst.(*Analytics)) = *(v.(*Analytics))
	return true, nil
}

func (c *mapCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	c.values[key] = v
	c.sets++
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func TestAnalyticsSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := testutil.CreateUser(t, f.db, "carol", models.RoleCustomer)
	owner := testutil.CreateUser(t, f.db, "oscar", models.RoleRestaurant)
	restaurant, _ := testutil.CreateRestaurant(t, f.db, owner)

	testutil.CreateOrder(t, f.db, customer.ID, restaurant.ID, models.StatusDelivered, nil)
	testutil.CreateOrder(t, f.db, customer.ID, restaurant.ID, models.StatusDelivered, nil)
	testutil.CreateOrder(t, f.db, customer.ID, restaurant.ID, models.StatusPending, nil)
	testutil.CreateOrder(t, f.db, customer.ID, restaurant.ID, models.StatusCancelled, nil)

	_, err := f.locations.SetAvailability(ctx, "d1", true)
	require.NoError(t, err)
	_, err = f.locations.SetAvailability(ctx, "d2", false)
	require.NoError(t, err)

	c := &mapCache{values: map[string]any{}}
	svc := NewAnalyticsService(f.db, f.locations, c, time.Minute)

	a, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), a.TotalOrders)
	assert.Equal(t, int64(2), a.OrdersByStatus[models.StatusDelivered])
	assert.InDelta(t, 50.0, a.TotalRevenue, 1e-9)
	assert.InDelta(t, 25.0, a.AverageOrderValue, 1e-9)
	assert.Equal(t, int64(1), a.ActiveDrivers)

	require.Len(t, a.TopItems, 1)
	assert.Equal(t, "menu-1", a.TopItems[0].MenuItemID)
	assert.Equal(t, int64(6), a.TopItems[0].Quantity)
	assert.InDelta(t, 75.0, a.TopItems[0].Revenue, 1e-9)

	testutil.CreateOrder(t, f.db, customer.ID, restaurant.ID, models.StatusDelivered, nil)
	cached, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), cached.TotalOrders)
	assert.Equal(t, 1, c.sets)

	svc.Invalidate(ctx)
	fresh, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), fresh.TotalOrders)
}
