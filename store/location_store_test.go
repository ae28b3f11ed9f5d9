package store

import (
	"context"
	"sync"
	"testing"

	"food-delivery-app/models"
	"food-delivery-app/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countLocations(t *testing.T, s *LocationStore, driverID string) int64 {
	var n int64
	require.NoError(t, s.db.Model(&models.DriverLocation{}).Where("driver_id = ?", driverID).Count(&n).Error)
	return n
}

func TestSetAvailabilityCreatesThenMutatesInPlace(t *testing.T) {
	s := NewLocationStore(testutil.NewDB(t))
	ctx := context.Background()

	first, err := s.SetAvailability(ctx, "d1", true)
	require.NoError(t, err)
	assert.True(t, first.IsAvailable)
	assert.Zero(t, first.Latitude)
	assert.Zero(t, first.Longitude)
	assert.Nil(t, first.Heading)
	assert.Equal(t, int64(1), countLocations(t, s, "d1"))

	second, err := s.SetAvailability(ctx, "d1", false)
	require.NoError(t, err)
	assert.False(t, second.IsAvailable)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1), countLocations(t, s, "d1"))
}

func TestSetAvailabilityLeavesCoordinatesUntouched(t *testing.T) {
	s := NewLocationStore(testutil.NewDB(t))
	ctx := context.Background()
	heading := 270.0

	_, err := s.UpdatePosition(ctx, "d1", models.Position{Latitude: 40.7, Longitude: -74.0, Heading: &heading})
	require.NoError(t, err)

	loc, err := s.SetAvailability(ctx, "d1", true)
	require.NoError(t, err)
	assert.InDelta(t, 40.7, loc.Latitude, 1e-9)
	assert.InDelta(t, -74.0, loc.Longitude, 1e-9)
	require.NotNil(t, loc.Heading)
	assert.InDelta(t, 270.0, *loc.Heading, 1e-9)
	assert.True(t, loc.IsAvailable)
}

func TestUpdatePositionKeepsAvailability(t *testing.T) {
	s := NewLocationStore(testutil.NewDB(t))
	ctx := context.Background()

	_, err := s.SetAvailability(ctx, "d1", true)
	require.NoError(t, err)
	loc, err := s.UpdatePosition(ctx, "d1", models.Position{Latitude: 1, Longitude: 2})
	require.NoError(t, err)
	assert.True(t, loc.IsAvailable)
	assert.InDelta(t, 2.0, loc.Longitude, 1e-9)
}

func TestSetCurrentOrderSetsAndClears(t *testing.T) {
	s := NewLocationStore(testutil.NewDB(t))
	ctx := context.Background()
	orderID := "order-1"

	loc, err := s.SetCurrentOrder(ctx, "d1", &orderID)
	require.NoError(t, err)
	require.NotNil(t, loc.CurrentOrderID)
	assert.Equal(t, orderID, *loc.CurrentOrderID)

	loc, err = s.SetCurrentOrder(ctx, "d1", nil)
	require.NoError(t, err)
	assert.Nil(t, loc.CurrentOrderID)
}

func TestConcurrentUpsertsKeepOneRecord(t *testing.T) {
	s := NewLocationStore(testutil.NewDB(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(available bool) {
			defer wg.Done()
			_, _ = s.SetAvailability(ctx, "d1", available)
		}(i%2 == 0)
	}
	wg.Wait()
	assert.Equal(t, int64(1), countLocations(t, s, "d1"))
}

func TestFindByDriverAbsent(t *testing.T) {
	s := NewLocationStore(testutil.NewDB(t))
	loc, err := s.FindByDriver(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, loc)
}

func TestCountAvailable(t *testing.T) {
	s := NewLocationStore(testutil.NewDB(t))
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		_, err := s.SetAvailability(ctx, id, id != "b")
		require.NoError(t, err)
	}
	n, err := s.CountAvailable(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestLocationStoreFault(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewLocationStore(db)
	testutil.Break(t, db)

	_, err := s.SetAvailability(context.Background(), "d1", true)
	assert.ErrorContains(t, err, "upsert driver location")
}
