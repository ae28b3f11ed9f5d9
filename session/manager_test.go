package session

import (
	"context"
	"os"
	"testing"
	"time"

	"food-delivery-app/models"
	"food-delivery-app/testutil"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerLifecycleSQL(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "dana", models.RoleDriver)
	m := NewManager(NewSQLStore(db), time.Hour)
	ctx := context.Background()

	sess, err := m.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDriver, sess.Role)

	got, err := m.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.UserID)

	require.NoError(t, m.Destroy(ctx, sess.ID))
	got, err = m.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestManagerDropsExpiredSessions(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "erin", models.RoleCustomer)
	m := NewManager(NewSQLStore(db), time.Minute)
	ctx := context.Background()

	sess, err := m.Create(ctx, user)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	got, err := m.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var n int64
	require.NoError(t, db.Model(&models.Session{}).Where("id = ?", sess.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestResolveEmptyID(t *testing.T) {
	m := NewManager(NewSQLStore(testutil.NewDB(t)), time.Minute)
	got, err := m.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	t.Cleanup(func() { rdb.Close() })

	m := NewManager(NewRedisStore(rdb), time.Minute)
	ctx := context.Background()
	sess, err := m.Create(ctx, &models.User{Base: models.Base{ID: "u-1"}, Role: models.RoleAdmin})
	require.NoError(t, err)

	got, err := m.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.RoleAdmin, got.Role)

	require.NoError(t, m.Destroy(ctx, sess.ID))
	got, err = m.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
